// Package config loads and validates TOML configuration for mythus.
//
// Configuration resolves in three stages: repository defaults, then the TOML
// file (either an explicit path, ~/.config/mythus/config.toml, or a
// project-local mythus.toml), then normalization (path expansion, whitespace
// trimming, environment fallbacks) followed by validation.
package config
