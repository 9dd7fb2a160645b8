package match

import (
	"sort"
	"strings"
)

const (
	// DefaultMinScore is the similarity a candidate needs to be suggested.
	DefaultMinScore = 0.9
	// DefaultMaxSuggestions caps the number of suggestions per name.
	DefaultMaxSuggestions = 3
)

// Candidate is a known name ranked against an unknown one.
type Candidate struct {
	Name     string
	Score    float64 // Jaro-Winkler similarity of normalized names
	Distance int     // Levenshtein distance of normalized names, tie-breaker
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates scores every known name against name and returns them
// best first. Names equal to name ignoring case are left out: PHP resolves
// those already.
func RankCandidates(name string, known []string) CandidateList {
	var candidates CandidateList

	for _, k := range known {
		if strings.EqualFold(k, name) {
			continue
		}

		candidates = append(candidates, Candidate{
			Name:     k,
			Score:    Similarity(name, k),
			Distance: Distance(name, k),
		})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns up to limit known names whose similarity to name is at
// least minScore, best first.
func Suggest(name string, known []string, minScore float64, limit int) []string {
	var out []string

	for _, c := range RankCandidates(name, known) {
		if c.Score < minScore || len(out) >= limit {
			break
		}

		out = append(out, c.Name)
	}

	return out
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Less implements sort.Interface: higher score first, then smaller
// distance, then name for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	if c[i].Distance != c[j].Distance {
		return c[i].Distance < c[j].Distance
	}

	return c[i].Name < c[j].Name
}

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }
