// Package config loads, normalizes, and validates smalirename configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SMALIRENAME_LOG_LEVEL. The Config type carries the tree layout contract
// (leaf directory, descriptor file, extension, separator, replacement prefix)
// alongside the state and logging settings.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
