package preflight

import (
	"smalirename/internal/config"
	"smalirename/internal/faults"
)

// Stage labels errors produced by this package.
const Stage = "preflight"

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Path   string
	Passed bool
	Detail string
}

// CheckLayout runs every layout check for root. Checks that depend on an
// earlier failure (the leaf directory when the root is missing) still run so
// the report is complete.
func CheckLayout(root string, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckDirectoryAccess("Root directory", root),
		CheckDirectoryAccess("Leaf directory", cfg.LeafDir(root)),
		CheckRegularFile("Descriptor file", cfg.DescriptorPath(root)),
	}
}

// Require runs CheckLayout and converts the first failure into a
// precondition error.
func Require(root string, cfg *config.Config) error {
	for _, result := range CheckLayout(root, cfg) {
		if !result.Passed {
			return faults.Wrap(faults.ErrPrecondition, Stage, result.Path, result.Name+": "+result.Detail, nil)
		}
	}
	return nil
}
