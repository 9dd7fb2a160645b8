// Package match provides name normalization, string similarity and
// candidate ranking for "did you mean" suggestions on symbol names.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Similarity: Jaro-Winkler similarity of two normalized names
//   - RankCandidates: ranks known names against an unknown one
//   - Suggest: the best few candidates above a threshold
package match
