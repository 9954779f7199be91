// Package faults defines the error taxonomy shared by every phase of a
// rename run.
//
// Each failure is tagged with one of the exported sentinel markers so callers
// can classify it with errors.Is without string matching. Every marker is
// fatal: a run stops at the first tagged error and never rolls back work that
// already touched the disk.
package faults
