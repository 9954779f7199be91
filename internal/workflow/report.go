package workflow

import (
	"time"

	"smalirename/internal/mapping"
	"smalirename/internal/tree"
)

// Report summarizes a completed run.
type Report struct {
	RunID          string          `json:"run_id"`
	Root           string          `json:"root"`
	DryRun         bool            `json:"dry_run"`
	Files          int             `json:"files"`
	Directories    int             `json:"directories"`
	Mapping        []mapping.Entry `json:"mapping"`
	Renames        []tree.Rename   `json:"renames"`
	FilesRewritten int             `json:"files_rewritten"`
	Replacements   int             `json:"replacements"`
	Duration       time.Duration   `json:"duration_ns"`
}

// MappingSize returns the number of generated identifiers.
func (r *Report) MappingSize() int {
	if r == nil {
		return 0
	}
	return len(r.Mapping)
}

// Changed reports whether the run renamed or rewrote anything.
func (r *Report) Changed() bool {
	return r != nil && (len(r.Renames) > 0 || r.Replacements > 0)
}
