package common

import (
	"cmp"
	"slices"
)

// IsMultiple returns true if the slice has more than one element.
func IsMultiple[S ~[]E, E any](s S) bool {
	return len(s) > 1
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[M ~map[K]V, K cmp.Ordered, V any](m M) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// Set is a minimal membership set.
type Set[T comparable] map[T]struct{}

// NewSet builds a set from the given items.
func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}

	return s
}

// Add inserts v.
func (s Set[T]) Add(v T) {
	s[v] = struct{}{}
}

// Has reports whether v is present. A nil set contains nothing.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}
