package common

import "sort"

// StringSet is a set of strings. The zero value is not usable; construct
// with NewStringSet.
type StringSet map[string]struct{}

// NewStringSet returns a set containing the given items.
func NewStringSet(items ...string) StringSet {
	s := make(StringSet, len(items))
	for _, it := range items {
		s.Add(it)
	}

	return s
}

// Add inserts item into the set.
func (s StringSet) Add(item string) {
	s[item] = struct{}{}
}

// Has returns true if item is in the set.
func (s StringSet) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Sorted returns the members in lexical order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for item := range s {
		out = append(out, item)
	}

	sort.Strings(out)

	return out
}
