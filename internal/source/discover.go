package source

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// Filter decides which relative paths are left out of a run.
type Filter struct {
	substrings []string
	ignore     *ignore.GitIgnore
}

// NewFilter builds a Filter from path substrings and gitignore-style patterns.
func NewFilter(exclude, patterns []string) *Filter {
	f := &Filter{substrings: slices.Clone(exclude)}
	if len(patterns) > 0 {
		f.ignore = ignore.CompileIgnoreLines(patterns...)
	}

	return f
}

// Excluded reports whether the slash-separated relative path is filtered out.
func (f *Filter) Excluded(rel string) bool {
	if f == nil {
		return false
	}

	for _, s := range f.substrings {
		if s != "" && strings.Contains(rel, s) {
			return true
		}
	}

	return f.ignore != nil && f.ignore.MatchesPath(rel)
}

// Discover returns the slash-separated paths, relative to root, of every
// .php file under root that the filter keeps, in lexicographic order.
// Hidden directories and symlinks are skipped.
func Discover(ctx context.Context, root string, filter *Filter) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 || !strings.EqualFold(filepath.Ext(path), ".php") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		rel = filepath.ToSlash(rel)
		if filter.Excluded(rel) {
			return nil
		}

		files = append(files, rel)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover sources in %s: %w", root, err)
	}

	slices.Sort(files)

	return files, nil
}
