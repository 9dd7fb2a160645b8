package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transmuter/internal/plan"
)

type workspace struct {
	source, output, mapping string
}

func newWorkspace(t *testing.T, php, mappingYAML string) workspace {
	t.Helper()

	dir := t.TempDir()
	ws := workspace{
		source:  filepath.Join(dir, "src"),
		output:  filepath.Join(dir, "build"),
		mapping: filepath.Join(dir, "mappings.yaml"),
	}

	require.NoError(t, os.MkdirAll(ws.source, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ws.source, "a.php"), []byte(php), 0o644))

	if mappingYAML != "" {
		require.NoError(t, os.WriteFile(ws.mapping, []byte(mappingYAML), 0o644))
	}

	return ws
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return stdout.String(), stderr.String(), err
}

func (ws workspace) args(cmd string, extra ...string) []string {
	return append([]string{cmd, "--source", ws.source, "--output", ws.output, "--mapping", ws.mapping}, extra...)
}

func TestRunCommand(t *testing.T) {
	ws := newWorkspace(t, "<?php\nfunction wp_trim_words( $a ) {\n\treturn $a;\n}\n", "")

	_, stderr, err := execute(t, ws.args("run")...)
	require.NoError(t, err)
	assert.Contains(t, stderr, "transmutation complete")

	data, err := os.ReadFile(filepath.Join(ws.output, "bindings.php"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `return \Minnow\Misc::wp_trim_words(...$args);`)

	_, err = os.Stat(ws.mapping)
	assert.NoError(t, err)
}

func TestRunCommand_DryRunAndDumpPlan(t *testing.T) {
	ws := newWorkspace(t, "<?php\nfunction wp_x() {}\n", "")

	stdout, _, err := execute(t, ws.args("run", "--dry-run", "--dump-plan", "--log-level", "error")...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "wp_x")

	_, err = os.Stat(ws.output)
	assert.True(t, os.IsNotExist(err))
}

func TestCheckCommand(t *testing.T) {
	ws := newWorkspace(t, "<?php\nfunction wp_x() {}\n", "")

	stdout, _, err := execute(t, ws.args("check")...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "mapping OK: 1 functions, 0 classes")

	_, err = os.Stat(ws.output)
	assert.True(t, os.IsNotExist(err))
}

func TestCheckCommand_Conflict(t *testing.T) {
	ws := newWorkspace(t, "<?php\nfunction wp_a() {}\nfunction wp_b() {}\n",
		"functions:\n  wp_a:\n    namespace: Acme\n    class: U\n    method: m\n  wp_b:\n    namespace: Acme\n    class: U\n    method: m\n")

	_, stderr, err := execute(t, ws.args("check")...)
	require.ErrorIs(t, err, plan.ErrMappingConflict)
	assert.Contains(t, stderr, "[method_conflict]")
	assert.Contains(t, stderr, "  - function wp_a()")
	assert.Contains(t, stderr, "  - function wp_b()")
}

func TestRunCommand_RequireMapping(t *testing.T) {
	ws := newWorkspace(t, "<?php\nfunction wp_x() {}\n", "")

	_, _, err := execute(t, ws.args("run", "--require-mapping")...)
	require.Error(t, err)
}

func TestRunCommand_InvalidLogLevel(t *testing.T) {
	ws := newWorkspace(t, "<?php\n", "")

	_, _, err := execute(t, ws.args("run", "--log-level", "loud")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--log-level")
}

func TestRunCommand_ConfigFile(t *testing.T) {
	ws := newWorkspace(t, "<?php\nfunction wp_x() {}\n", "")

	cfgPath := filepath.Join(filepath.Dir(ws.source), "transmuter.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("source = \"src\"\noutput = \"build\"\nmapping = \"mappings.yaml\"\nroot_namespace = \"Acme\"\ndefault_class = \"Helpers\"\n"), 0o644))

	_, _, err := execute(t, "run", "--config", cfgPath)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(ws.output, "bindings.php"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `return \Acme\Helpers::wp_x(...$args);`)

	_, _, err = execute(t, "run", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
