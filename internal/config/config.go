package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"

	"transmuter/internal/mapping"
	"transmuter/internal/source"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "transmuter.toml"

// Config is a run configuration.
type Config struct {
	// Source is the directory scanned for PHP files.
	Source string `toml:"source"`
	// Output is the directory the generated tree is written to. It is
	// purged on every run.
	Output string `toml:"output"`
	// Mapping is the YAML mapping file read and rewritten by a run.
	Mapping string `toml:"mapping"`
	// RequireMapping turns a missing or unreadable mapping file into an error.
	RequireMapping bool `toml:"require_mapping"`

	RootNamespace string `toml:"root_namespace"`
	DefaultClass  string `toml:"default_class"`

	// Jobs bounds how many files are parsed concurrently.
	Jobs int `toml:"jobs"`

	// Exclude holds path substrings; matching files are skipped.
	Exclude []string `toml:"exclude"`
	// Ignore holds gitignore-style patterns; matching files are skipped.
	Ignore []string `toml:"ignore"`

	// ReservedFunctions extends the embedded list of runtime functions that
	// get no forwarding shim.
	ReservedFunctions []string `toml:"reserved_functions"`
	// GlobalAccessors names global classes that get a $GLOBALS accessor.
	// When unset the root namespace class gets one.
	GlobalAccessors []string `toml:"global_accessors"`

	// Replace rules are applied to source text before parsing.
	Replace []source.Rule `toml:"replace"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Source:        ".",
		Output:        "build",
		Mapping:       "mappings.yaml",
		RootNamespace: mapping.DefaultRootNamespace,
		DefaultClass:  mapping.DefaultFunctionClass,
		Jobs:          runtime.NumCPU(),
	}
}

// Load reads the configuration at path over the defaults. A missing file
// yields the defaults; a malformed one is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	err = Parse(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.resolvePaths(filepath.Dir(path))

	return cfg, nil
}

// Parse decodes TOML data into cfg. Unknown keys are rejected so typos do
// not silently fall back to defaults.
func Parse(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	err := dec.Decode(cfg)
	if err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return errors.New(strict.String())
		}

		return err
	}

	return nil
}

// Placement returns where unmapped symbols go.
func (c *Config) Placement() mapping.Placement {
	return mapping.Placement{Root: c.RootNamespace, FunctionClass: c.DefaultClass}
}

// Accessors returns the global classes that get a $GLOBALS accessor.
func (c *Config) Accessors() []string {
	if c.GlobalAccessors == nil {
		return []string{c.RootNamespace}
	}

	return c.GlobalAccessors
}

func (c *Config) resolvePaths(base string) {
	for _, p := range []*string{&c.Source, &c.Output, &c.Mapping} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}
