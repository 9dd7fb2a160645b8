package match

import (
	"github.com/hbollon/go-edlib"
)

// Similarity returns the Jaro-Winkler similarity (0-1) of the normalized
// forms of a and b.
func Similarity(a, b string) float64 {
	na, nb := NormalizeIdent(a), NormalizeIdent(b)
	if na == nb {
		return 1
	}

	if na == "" || nb == "" {
		return 0
	}

	score, err := edlib.StringsSimilarity(na, nb, edlib.JaroWinkler)
	if err != nil {
		return 0
	}

	return float64(score)
}

// Distance returns the Levenshtein distance of the normalized forms of a and b.
func Distance(a, b string) int {
	return edlib.LevenshteinDistance(NormalizeIdent(a), NormalizeIdent(b))
}
