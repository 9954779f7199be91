package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"smalirename/internal/naming"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLayout(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLayout() error {
	leaf := c.Layout.LeafDir
	if filepath.IsAbs(leaf) || leaf == ".." || strings.HasPrefix(leaf, "../") {
		return fmt.Errorf("layout.leaf_dir must be a path inside the root, got %q", leaf)
	}
	desc := c.Layout.Descriptor
	if strings.ContainsAny(desc, `/\`) || desc == "." || desc == ".." {
		return fmt.Errorf("layout.descriptor must be a file name at the root, got %q", desc)
	}
	if len(c.Layout.Extension) < 2 {
		return errors.New("layout.extension must contain at least one character after the dot")
	}
	if strings.ContainsAny(c.Layout.Extension, `/\`) {
		return fmt.Errorf("layout.extension must not contain path separators, got %q", c.Layout.Extension)
	}
	sep := c.Layout.Separator
	if utf8.RuneCountInString(sep) != 1 || naming.IsValidPlainName(sep) || strings.ContainsAny(sep, `/\.`) {
		return fmt.Errorf("layout.separator must be a single character outside [A-Za-z0-9_] and not a path character, got %q", sep)
	}
	prefix := c.Layout.Prefix
	if !naming.IsValidPlainName(prefix) || !naming.DefaultRules().IsValidLeafName(prefix+naming.DefaultExtension) {
		return fmt.Errorf("layout.prefix must start with a letter and contain only [A-Za-z0-9_], got %q", prefix)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q (use debug, info, warn, or error)", c.Logging.Level)
	}
	return nil
}
