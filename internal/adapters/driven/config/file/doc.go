// Package file provides the file-based configuration adapter.
//
// Configuration is resolved in layers: built-in defaults, then
// ~/.graphscope/config.toml, then GRAPHSCOPE_* environment variables
// (optionally seeded from a .env file). The result is validated before it
// replaces the current configuration.
//
// Adapters:
//   - ConfigStore: TOML-backed driven.ConfigSource with live reload
package file
