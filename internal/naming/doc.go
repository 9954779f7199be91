// Package naming decides whether file names, directory names, and bare
// identifier segments are already safe.
//
// A plain name uses only ASCII letters, digits, and underscore. A leaf name is
// a separator-joined list of identifier segments (each starting with a letter)
// followed by the leaf extension, e.g. "Outer$Inner.smali". All predicates are
// pure and never fail.
package naming
