package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	files := []GeneratedFile{
		{Filename: "app/Widgets/Widget.php", Content: []byte("<?php\n")},
		{Filename: "bindings.php", Content: []byte("<?php\n\n")},
	}

	require.NoError(t, WriteFiles(files, dir))

	data, err := os.ReadFile(filepath.Join(dir, "app", "Widgets", "Widget.php"))
	require.NoError(t, err)
	assert.Equal(t, "<?php\n", string(data))

	// A second run with fewer files leaves nothing stale
	require.NoError(t, WriteFiles(files[1:], dir))

	_, err = os.Stat(filepath.Join(dir, "app"))
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(dir, "bindings.php"))
	assert.NoError(t, err)
}

func TestPurge_RefusesRoots(t *testing.T) {
	for _, dir := range []string{"", ".", string(filepath.Separator)} {
		err := Purge(dir)
		assert.ErrorIs(t, err, ErrUnsafeOutputDir, dir)
	}
}

func TestDigest(t *testing.T) {
	a := []GeneratedFile{{Filename: "a.php", Content: []byte("x")}}
	b := []GeneratedFile{{Filename: "a.php", Content: []byte("y")}}
	c := []GeneratedFile{{Filename: "a.phpx", Content: nil}}

	assert.Len(t, Digest(a), 16)
	assert.Equal(t, Digest(a), Digest([]GeneratedFile{{Filename: "a.php", Content: []byte("x")}}))
	assert.NotEqual(t, Digest(a), Digest(b))
	assert.NotEqual(t, Digest(a), Digest(c))
	assert.NotEqual(t, Digest(nil), Digest(a))
}
