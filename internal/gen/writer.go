package gen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ErrUnsafeOutputDir is returned when the output directory would purge a
// filesystem root or the working directory.
var ErrUnsafeOutputDir = errors.New("refusing to purge output directory")

// WriteFiles replaces the content of outputDir with files. Existing
// entries are removed first so symbols that disappeared from the source
// leave no stale output behind.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	err := Purge(outputDir)
	if err != nil {
		return err
	}

	for _, file := range files {
		path := filepath.Join(outputDir, filepath.FromSlash(file.Filename))

		err := os.MkdirAll(filepath.Dir(path), dirPerm)
		if err != nil {
			return fmt.Errorf("creating directory for %s: %w", file.Filename, err)
		}

		err = os.WriteFile(path, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing %s: %w", file.Filename, err)
		}
	}

	return nil
}

// Purge empties outputDir, creating it when missing.
func Purge(outputDir string) error {
	clean := filepath.Clean(outputDir)
	if outputDir == "" || clean == "." || clean == filepath.Dir(clean) {
		return fmt.Errorf("%w: %q", ErrUnsafeOutputDir, outputDir)
	}

	err := os.MkdirAll(clean, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	entries, err := os.ReadDir(clean)
	if err != nil {
		return fmt.Errorf("reading output directory: %w", err)
	}

	for _, e := range entries {
		err := os.RemoveAll(filepath.Join(clean, e.Name()))
		if err != nil {
			return fmt.Errorf("purging %s: %w", e.Name(), err)
		}
	}

	return nil
}
