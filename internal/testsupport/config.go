package testsupport

import (
	"path/filepath"
	"testing"

	"smalirename/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a default config whose state and log directories live
// in a per-test temp directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithLogDir enables file logging into a temp directory.
func WithLogDir(dir string) ConfigOption {
	return func(c *config.Config) {
		c.Paths.LogDir = dir
	}
}

// WithPrefix overrides the replacement prefix.
func WithPrefix(prefix string) ConfigOption {
	return func(c *config.Config) {
		c.Layout.Prefix = prefix
	}
}
