package substitute

import (
	"log/slog"
	"os"

	"smalirename/internal/faults"
	"smalirename/internal/fileutil"
	"smalirename/internal/logging"
)

// Stage labels errors and log lines produced by this package.
const Stage = "substitute"

// Rewriter applies a Matcher to files on disk.
type Rewriter struct {
	matcher *Matcher
	logger  *slog.Logger
}

// NewRewriter returns a Rewriter for m.
func NewRewriter(m *Matcher, logger *slog.Logger) *Rewriter {
	return &Rewriter{matcher: m, logger: logging.NewComponentLogger(logger, "substitute")}
}

// RewriteFile reads path, replaces every match, and writes the full result
// back. The file is always rewritten, even when nothing matched. The new
// content is written to a temporary sibling that then replaces path, so
// readers never observe a partially written file. The file mode is kept.
func (w *Rewriter) RewriteFile(path string) (int, error) {
	perm, err := fileutil.PermOf(path)
	if err != nil {
		return 0, faults.Wrap(faults.ErrIO, Stage, path, "stat", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, faults.Wrap(faults.ErrIO, Stage, path, "read", err)
	}

	text, count := w.matcher.Replace(string(data))
	if err := fileutil.WriteFileAtomic(path, []byte(text), perm); err != nil {
		return 0, faults.Wrap(faults.ErrIO, Stage, path, "write", err)
	}
	if count > 0 {
		w.logger.Debug("references rewritten",
			logging.String(logging.FieldPath, path),
			logging.Int("replacements", count),
		)
	}
	return count, nil
}

// CountFile reports how many replacements RewriteFile would make without
// touching the file.
func (w *Rewriter) CountFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, faults.Wrap(faults.ErrIO, Stage, path, "read", err)
	}
	return w.matcher.Count(string(data)), nil
}
