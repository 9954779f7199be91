// Package workflow drives one rename run over an apktool output tree.
//
// A Runner checks the input layout, takes the per-root run lock, plans and
// applies leaf renames while building the mapping, and then rewrites every
// leaf file and the descriptor so references follow the new names. The
// mapping is frozen before substitution begins. The Runner stops at the first
// error and returns it unchanged; nothing is rolled back.
//
// Dry runs plan and count replacements without touching the tree.
package workflow
