// Package diagnostic provides structured errors and warnings collected while
// validating a mapping table and the placements derived from it.
//
// Key capabilities:
//   - Aggregation: every problem is recorded, nothing stops at the first one
//   - Contributor lists for collisions (which symbols produced a target)
//   - Suggestions for near-miss names
package diagnostic
