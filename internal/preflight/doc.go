// Package preflight verifies the input contract of a rename run before any
// file is touched.
//
// These checks run in two contexts:
//   - The workflow runner calls Require before planning; the first failed
//     check aborts the run with a precondition error.
//   - The CLI "check" command calls CheckLayout and renders every result so
//     operators can see all problems at once.
package preflight
