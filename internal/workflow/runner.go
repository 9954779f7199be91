package workflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"smalirename/internal/config"
	"smalirename/internal/faults"
	"smalirename/internal/logging"
	"smalirename/internal/mapping"
	"smalirename/internal/naming"
	"smalirename/internal/preflight"
	"smalirename/internal/runlock"
	"smalirename/internal/substitute"
	"smalirename/internal/tree"
)

// Runner executes a single rename run for one root.
type Runner struct {
	cfg  *config.Config
	root string
	base *slog.Logger

	dryRun   bool
	newRunID func() string
}

// Option configures optional Runner behavior.
type Option func(*Runner)

// WithDryRun plans the run and counts replacements without mutating the tree.
func WithDryRun(enabled bool) Option {
	return func(r *Runner) {
		r.dryRun = enabled
	}
}

// WithRunIDGenerator overrides how run identifiers are produced.
func WithRunIDGenerator(fn func() string) Option {
	return func(r *Runner) {
		if fn != nil {
			r.newRunID = fn
		}
	}
}

// NewRunner constructs a Runner for root.
func NewRunner(cfg *config.Config, root string, logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		cfg:      cfg,
		root:     root,
		base:     logger,
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run performs the run. The context only carries log fields; the run is not
// cancellable once started.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	runID := r.newRunID()
	ctx = logging.WithRunID(ctx, runID)
	report := &Report{RunID: runID, Root: r.root, DryRun: r.dryRun}

	logger := r.stageLogger(ctx, preflight.Stage, "workflow")
	if err := preflight.Require(r.root, r.cfg); err != nil {
		logging.ErrorWithContext(logger, "input layout check failed", "preflight_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorKind, faults.Kind(err)),
			logging.String(logging.FieldErrorHint, "point smalirename at an apktool output directory"),
		)
		return nil, err
	}

	logger = r.stageLogger(ctx, runlock.Stage, "workflow")
	lock, err := runlock.Acquire(r.cfg.Paths.StateDir, r.root)
	if err != nil {
		logging.ErrorWithContext(logger, "run lock unavailable", "lock_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorKind, faults.Kind(err)),
			logging.String(logging.FieldErrorHint, "wait for the other run to finish"),
		)
		return nil, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("release run lock failed", logging.Error(err), logging.String(logging.FieldPath, lock.Path()))
		}
	}()

	m := mapping.New(r.cfg.Layout.Prefix)
	if err := r.renameLeaves(ctx, m, report); err != nil {
		return nil, err
	}

	snapshot := m.Freeze()
	report.Mapping = snapshot.Entries()
	logger = r.stageLogger(ctx, substitute.Stage, "workflow")
	logger.Info("mapping built", logging.Int("mapping_size", snapshot.Len()))
	if snapshot.Len() == 0 {
		logger.Info("no classes with bad names, skipping replacement")
	} else if err := r.substitute(ctx, snapshot, report); err != nil {
		return nil, err
	}

	report.Duration = time.Since(start)
	logging.WithContext(ctx, logging.NewComponentLogger(r.base, "workflow")).Info("run complete",
		logging.Int("renames", len(report.Renames)),
		logging.Int("files_rewritten", report.FilesRewritten),
		logging.Int("replacements", report.Replacements),
		logging.Bool("dry_run", r.dryRun),
		logging.Duration("duration", report.Duration),
	)
	return report, nil
}

func (r *Runner) renameLeaves(ctx context.Context, m *mapping.Mapping, report *Report) error {
	logger := r.stageLogger(ctx, tree.Stage, "workflow")
	leafDir := r.cfg.LeafDir(r.root)
	logger.Info("generating mapping and renaming files", logging.String(logging.FieldPath, leafDir))

	renamer := tree.New(r.rules(), m, r.stageLogger(ctx, tree.Stage, ""))
	plan, err := renamer.Plan(leafDir)
	if err != nil {
		logging.ErrorWithContext(logger, "leaf tree rejected", "plan_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorKind, faults.Kind(err)),
		)
		return err
	}
	report.Files = plan.Files
	report.Directories = plan.Directories

	if r.dryRun {
		report.Renames = plan.Renames
		return nil
	}
	applied, err := renamer.Apply(plan)
	report.Renames = plan.Renames[:applied]
	if err != nil {
		logging.ErrorWithContext(logger, "rename failed", "rename_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorKind, faults.Kind(err)),
			logging.Int("applied", applied),
			logging.String(logging.FieldImpact, "the tree is partially renamed"),
		)
		return err
	}
	return nil
}

func (r *Runner) substitute(ctx context.Context, snapshot mapping.Snapshot, report *Report) error {
	logger := r.stageLogger(ctx, substitute.Stage, "workflow")
	matcher, err := substitute.Compile(snapshot)
	if err != nil {
		return err
	}
	rewriter := substitute.NewRewriter(matcher, r.stageLogger(ctx, substitute.Stage, ""))

	files, err := tree.LeafFiles(r.cfg.LeafDir(r.root))
	if err != nil {
		return err
	}
	files = append(files, r.cfg.DescriptorPath(r.root))
	logger.Info("replacing all occurrences in files",
		logging.Int("files", len(files)),
		logging.Int("identifiers", matcher.Keys()),
	)

	for _, path := range files {
		var count int
		if r.dryRun {
			count, err = rewriter.CountFile(path)
		} else {
			count, err = rewriter.RewriteFile(path)
		}
		if err != nil {
			logging.ErrorWithContext(logger, "reference rewrite failed", "rewrite_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorKind, faults.Kind(err)),
				logging.Int("files_rewritten", report.FilesRewritten),
				logging.String(logging.FieldImpact, "references in later files still use old names"),
			)
			return err
		}
		if !r.dryRun {
			report.FilesRewritten++
		}
		report.Replacements += count
	}
	if report.Replacements == 0 {
		logging.WarnWithContext(logger, "renamed classes are never referenced", "no_references",
			logging.Int("identifiers", matcher.Keys()),
			logging.String(logging.FieldErrorHint, "verify the smali tree belongs to the descriptor"),
			logging.String(logging.FieldImpact, "no file content refers to the renamed classes"),
		)
	}
	return nil
}

// stageLogger returns the base logger carrying the run and stage fields,
// tagged with component when it is non-empty.
func (r *Runner) stageLogger(ctx context.Context, stage, component string) *slog.Logger {
	logger := r.base
	if component != "" {
		logger = logging.NewComponentLogger(logger, component)
	}
	return logging.WithContext(logging.WithStage(ctx, stage), logger)
}

func (r *Runner) rules() naming.Rules {
	return naming.Rules{Extension: r.cfg.Layout.Extension, Separator: r.cfg.Layout.Separator}
}
