package tree

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"smalirename/internal/faults"
	"smalirename/internal/logging"
	"smalirename/internal/mapping"
	"smalirename/internal/naming"
)

// Stage labels errors and log lines produced by this package.
const Stage = "rename"

// Rename is one planned move of a leaf file within its directory.
type Rename struct {
	Dir     string `json:"dir"`
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

// OldPath returns the current path of the file.
func (r Rename) OldPath() string { return filepath.Join(r.Dir, r.OldName) }

// NewPath returns the path the file is moved to.
func (r Rename) NewPath() string { return filepath.Join(r.Dir, r.NewName) }

// Plan is the validated result of a traversal.
type Plan struct {
	Root        string
	Files       int
	Directories int
	Renames     []Rename
}

// Renamer validates a leaf tree and renames unsafe leaf files.
type Renamer struct {
	rules   naming.Rules
	mapping *mapping.Mapping
	logger  *slog.Logger

	// safeSegments holds, per directory, the identifier segments of files
	// that keep their names.
	safeSegments map[string]map[string]struct{}
}

// New constructs a Renamer that records replacements in m.
func New(rules naming.Rules, m *mapping.Mapping, logger *slog.Logger) *Renamer {
	return &Renamer{
		rules:   rules,
		mapping: m,
		logger:  logging.NewComponentLogger(logger, "tree"),
	}
}

// Plan traverses root, validates every entry, and computes the renames
// required to make every leaf name safe. The mapping is populated as a side
// effect. Nothing on disk is modified.
func (r *Renamer) Plan(root string) (*Plan, error) {
	r.safeSegments = make(map[string]map[string]struct{})
	plan := &Plan{Root: root}
	if err := r.walk(root, plan); err != nil {
		return nil, err
	}
	if err := r.checkConflicts(plan); err != nil {
		return nil, err
	}
	r.logger.Debug("leaf tree planned",
		logging.String(logging.FieldPath, root),
		logging.Int("files", plan.Files),
		logging.Int("directories", plan.Directories),
		logging.Int("renames", len(plan.Renames)),
	)
	return plan, nil
}

func (r *Renamer) walk(dir string, plan *Plan) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return faults.Wrap(faults.ErrIO, Stage, dir, "read directory", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)
		switch {
		case entry.IsDir():
			if !naming.IsValidPlainName(name) {
				return faults.Wrap(faults.ErrStructural, Stage, path,
					fmt.Sprintf("folder with invalid name (%s)", naming.DescribeForbidden(name)), nil)
			}
			plan.Directories++
			if err := r.walk(path, plan); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := r.visitFile(dir, name, plan); err != nil {
				return err
			}
		default:
			return faults.Wrap(faults.ErrStructural, Stage, path,
				fmt.Sprintf("unsupported entry type %s", entry.Type()), nil)
		}
	}
	return nil
}

func (r *Renamer) visitFile(dir, name string, plan *Plan) error {
	path := filepath.Join(dir, name)
	if !r.rules.HasExtension(name) {
		return faults.Wrap(faults.ErrStructural, Stage, path,
			fmt.Sprintf("only %s files allowed", r.rules.Extension), nil)
	}
	if !utf8.ValidString(name) {
		return faults.Wrap(faults.ErrStructural, Stage, path, "file name is not valid UTF-8 text", nil)
	}
	plan.Files++

	segments := r.rules.SplitStem(r.rules.Stem(name))
	if r.rules.IsValidLeafName(name) {
		for _, segment := range segments {
			r.markSafe(dir, segment)
		}
		return nil
	}

	sanitized := make([]string, len(segments))
	for i, segment := range segments {
		sanitized[i] = r.mapping.Resolve(segment)
		if sanitized[i] == segment {
			r.markSafe(dir, segment)
		}
	}
	newName := r.rules.JoinStem(sanitized) + r.rules.Extension
	if newName == name {
		return nil
	}
	plan.Renames = append(plan.Renames, Rename{Dir: dir, OldName: name, NewName: newName})
	return nil
}

func (r *Renamer) markSafe(dir, segment string) {
	if segment == "" {
		return
	}
	set := r.safeSegments[dir]
	if set == nil {
		set = make(map[string]struct{})
		r.safeSegments[dir] = set
	}
	set[segment] = struct{}{}
}

// checkConflicts rejects plans that would overwrite a file, move two files
// onto one path, or give a renamed class the name of a class that already
// exists in the same directory. Classes in other directories live in other
// packages and cannot collide.
func (r *Renamer) checkConflicts(plan *Plan) error {
	for _, rn := range plan.Renames {
		oldSegments := r.rules.SplitStem(r.rules.Stem(rn.OldName))
		newSegments := r.rules.SplitStem(r.rules.Stem(rn.NewName))
		for i, generated := range newSegments {
			if generated == oldSegments[i] {
				continue
			}
			if _, taken := r.safeSegments[rn.Dir][generated]; taken {
				return faults.Wrap(faults.ErrConflict, Stage, rn.OldPath(),
					fmt.Sprintf("generated identifier %s for %q already names a class in this directory", generated, oldSegments[i]), nil)
			}
		}
	}

	targets := make(map[string]string, len(plan.Renames))
	for _, rn := range plan.Renames {
		target := rn.NewPath()
		if prev, dup := targets[target]; dup {
			return faults.Wrap(faults.ErrConflict, Stage, target,
				fmt.Sprintf("both %q and %q would be renamed here", prev, rn.OldName), nil)
		}
		targets[target] = rn.OldName
		if _, err := os.Lstat(target); err == nil {
			return faults.Wrap(faults.ErrConflict, Stage, target,
				fmt.Sprintf("target of %q already exists", rn.OldName), nil)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return faults.Wrap(faults.ErrIO, Stage, target, "stat rename target", err)
		}
	}
	return nil
}

// Apply performs the planned renames in order and returns how many were
// applied. It stops at the first failure; earlier renames stay in place.
func (r *Renamer) Apply(plan *Plan) (int, error) {
	applied := 0
	for _, rn := range plan.Renames {
		if err := os.Rename(rn.OldPath(), rn.NewPath()); err != nil {
			return applied, faults.Wrap(faults.ErrIO, Stage, rn.OldPath(), "rename to "+rn.NewName, err)
		}
		applied++
		r.logger.Debug("leaf renamed",
			logging.String(logging.FieldPath, rn.Dir),
			logging.String("from", rn.OldName),
			logging.String("to", rn.NewName),
		)
	}
	return applied, nil
}

// LeafFiles lists every regular file under root in lexicographic depth-first
// order.
func LeafFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, faults.Wrap(faults.ErrIO, Stage, root, "list leaf files", err)
	}
	return files, nil
}
