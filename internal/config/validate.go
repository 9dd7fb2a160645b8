package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"transmuter/internal/mapping"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks the configuration for values a run cannot work with.
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("%w: source cannot be empty", ErrInvalidConfig)
	}

	if c.Output == "" {
		return fmt.Errorf("%w: output cannot be empty", ErrInvalidConfig)
	}

	if c.Mapping == "" {
		return fmt.Errorf("%w: mapping cannot be empty", ErrInvalidConfig)
	}

	if c.Jobs < 1 {
		return fmt.Errorf("%w: jobs must be positive, got %d", ErrInvalidConfig, c.Jobs)
	}

	if !mapping.IsIdentifier(c.DefaultClass) {
		return fmt.Errorf("%w: default_class %q is not a valid class name", ErrInvalidConfig, c.DefaultClass)
	}

	if c.RootNamespace == "" {
		return fmt.Errorf("%w: root_namespace cannot be empty", ErrInvalidConfig)
	}

	for _, seg := range strings.FieldsFunc(c.RootNamespace, func(r rune) bool { return r == '/' || r == '\\' }) {
		if !mapping.IsIdentifier(seg) {
			return fmt.Errorf("%w: root_namespace %q has invalid segment %q", ErrInvalidConfig, c.RootNamespace, seg)
		}
	}

	// The output directory is purged on every run.
	src, err := filepath.Abs(c.Source)
	if err != nil {
		return fmt.Errorf("%w: source: %w", ErrInvalidConfig, err)
	}

	out, err := filepath.Abs(c.Output)
	if err != nil {
		return fmt.Errorf("%w: output: %w", ErrInvalidConfig, err)
	}

	if within(src, out) {
		return fmt.Errorf("%w: output %s contains the source directory", ErrInvalidConfig, c.Output)
	}

	return nil
}

// within reports whether path is dir or lies below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}

	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
