package config

import (
	"fmt"
	"os"
	"path"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeLayout()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeLayout() {
	c.Layout.LeafDir = strings.Trim(path.Clean(strings.ReplaceAll(strings.TrimSpace(c.Layout.LeafDir), "\\", "/")), "/")
	if c.Layout.LeafDir == "" || c.Layout.LeafDir == "." {
		c.Layout.LeafDir = defaultLeafDir
	}
	c.Layout.Descriptor = strings.TrimSpace(c.Layout.Descriptor)
	if c.Layout.Descriptor == "" {
		c.Layout.Descriptor = defaultDescriptor
	}
	c.Layout.Extension = strings.TrimSpace(c.Layout.Extension)
	if c.Layout.Extension == "" {
		c.Layout.Extension = defaultExtension
	}
	if !strings.HasPrefix(c.Layout.Extension, ".") {
		c.Layout.Extension = "." + c.Layout.Extension
	}
	if c.Layout.Separator == "" {
		c.Layout.Separator = defaultSeparator
	}
	c.Layout.Prefix = strings.TrimSpace(c.Layout.Prefix)
	if c.Layout.Prefix == "" {
		c.Layout.Prefix = defaultPrefix
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if value, ok := os.LookupEnv(envStateDir); ok && strings.TrimSpace(value) != "" {
		c.Paths.StateDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv(envLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	if value, ok := os.LookupEnv(envLogFormat); ok && strings.TrimSpace(value) != "" {
		c.Logging.Format = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
