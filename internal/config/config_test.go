package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transmuter/internal/source"
)

const sample = `
source = "wordpress"
output = "build"
mapping = "mappings.yaml"
root_namespace = "Minnow"
default_class = "Misc"
jobs = 4
exclude = ["wp-content/", "wp-includes/ID3"]
ignore = ["**/*.min.php"]
reserved_functions = ["Custom_Builtin"]
global_accessors = ["Minnow"]

[[replace]]
files = "**/load.php"
find = "/wp-admin/install.php"
replace = "/admin/install/"
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "wordpress"), cfg.Source)
	assert.Equal(t, filepath.Join(dir, "build"), cfg.Output)
	assert.Equal(t, filepath.Join(dir, "mappings.yaml"), cfg.Mapping)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, []string{"wp-content/", "wp-includes/ID3"}, cfg.Exclude)
	assert.Equal(t, []string{"**/*.min.php"}, cfg.Ignore)
	assert.Equal(t, []string{"Minnow"}, cfg.GlobalAccessors)
	assert.Equal(t, []source.Rule{{Files: "**/load.php", Find: "/wp-admin/install.php", Replace: "/admin/install/"}}, cfg.Replace)
	assert.False(t, cfg.RequireMapping)

	assert.Equal(t, "Minnow", cfg.Placement().Root)
	assert.Equal(t, "Misc", cfg.Placement().FunctionClass)

	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestAccessors(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{"Minnow"}, cfg.Accessors())

	cfg.RootNamespace = "Acme"
	assert.Equal(t, []string{"Acme"}, cfg.Accessors())

	cfg.GlobalAccessors = []string{"Foo"}
	assert.Equal(t, []string{"Foo"}, cfg.Accessors())
}

func TestLoad_Malformed(t *testing.T) {
	tests := map[string]string{
		"syntax":      "source = ",
		"unknown key": "sourec = \"x\"",
		"wrong type":  "jobs = \"four\"",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultFile)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "parsing config")
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty source", func(c *Config) { c.Source = "" }, "source cannot be empty"},
		{"empty output", func(c *Config) { c.Output = "" }, "output cannot be empty"},
		{"empty mapping", func(c *Config) { c.Mapping = "" }, "mapping cannot be empty"},
		{"zero jobs", func(c *Config) { c.Jobs = 0 }, "jobs must be positive"},
		{"bad class", func(c *Config) { c.DefaultClass = "Not A Class" }, "default_class"},
		{"bad namespace", func(c *Config) { c.RootNamespace = "Minnow/9lives" }, `invalid segment "9lives"`},
		{"output is source", func(c *Config) { c.Output = c.Source }, "contains the source"},
		{"output above source", func(c *Config) { c.Output = filepath.Dir(c.Source) }, "contains the source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Source = filepath.Join(t.TempDir(), "src")
			cfg.Output = filepath.Join(t.TempDir(), "out")
			tt.mutate(cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("output inside source", func(t *testing.T) {
		cfg := Default()
		cfg.Source = t.TempDir()
		cfg.Output = filepath.Join(cfg.Source, "build")
		assert.NoError(t, cfg.Validate())
	})
}

func TestReservedSet(t *testing.T) {
	assert.Contains(t, DefaultReserved(), "str_contains")
	assert.NotContains(t, DefaultReserved(), "")

	for _, name := range DefaultReserved() {
		assert.NotEqual(t, '#', rune(name[0]))
	}

	cfg := Default()
	cfg.ReservedFunctions = []string{" Custom_Builtin "}

	set := cfg.ReservedSet()
	assert.True(t, set.Has("custom_builtin"))
	assert.True(t, set.Has("array_key_first"))
	assert.False(t, set.Has("wp_die"))
}
