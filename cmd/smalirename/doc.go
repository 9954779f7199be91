// Package main hosts the smalirename CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, builds the run logger,
// and hands the apktool output root to the workflow Runner. The check command
// reports preflight results and a structural scan without mutating anything;
// the config commands scaffold and validate the TOML file.
//
// Keep this package lean: behavior lives in the internal packages and is only
// surfaced here.
package main
