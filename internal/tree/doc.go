// Package tree walks the leaf directory, enforces the structural contract on
// every entry, and renames leaf files whose names contain unsafe identifier
// segments.
//
// Renaming happens in two steps. Plan traverses the whole tree in
// lexicographic depth-first order, validates every entry, resolves each
// unsafe segment through the run's mapping, and checks that no planned
// target would clobber an existing file or alias an existing class. Apply
// then performs the planned moves. A structural violation anywhere in the
// tree therefore aborts the run before any file is touched.
package tree
