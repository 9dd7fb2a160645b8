package gen

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Digest hashes the names and contents of files, in order. Two runs with
// the same digest wrote identical trees.
func Digest(files []GeneratedFile) string {
	h := xxhash.New()

	for _, f := range files {
		_, _ = h.WriteString(f.Filename)
		_, _ = h.Write([]byte{0})
		_, _ = h.Write(f.Content)
		_, _ = h.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", h.Sum64())
}
