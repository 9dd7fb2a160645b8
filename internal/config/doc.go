// Package config loads the transmuter.toml run configuration.
//
// A missing configuration file is not an error: every field has a default
// and command-line flags override what the file sets. Relative paths in a
// file are resolved against the directory holding that file.
package config
