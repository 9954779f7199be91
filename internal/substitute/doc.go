// Package substitute rewrites file contents so every literal occurrence of
// an old identifier reads as its replacement.
//
// The frozen mapping is compiled into a single matcher: every key is quoted
// so it matches only as literal text, and alternatives are resolved
// leftmost-longest, so when two keys start at the same offset the longer one
// wins. Substitution is purely textual. Occurrences inside comments or string
// literals are replaced too.
package substitute
