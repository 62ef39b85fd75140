package entities

import "slices"

// ExclusionSet is the ordered, duplicate-free list of category identifiers
// excluded from translation.
type ExclusionSet []string

// NewExclusionSet keeps the first occurrence of each non-empty identifier.
func NewExclusionSet(ids ...string) ExclusionSet {
	out := make(ExclusionSet, 0, len(ids))
	for _, id := range ids {
		if id == "" || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// Contains reports whether category is excluded. The empty category is never excluded.
func (s ExclusionSet) Contains(category string) bool {
	if category == "" {
		return false
	}
	return slices.Contains(s, category)
}

// Strings returns a copy usable as a plain slice (never nil).
func (s ExclusionSet) Strings() []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// CategoryCatalog is the host's ordered list of registered category identifiers.
type CategoryCatalog []string

func (c CategoryCatalog) Has(category string) bool {
	return slices.Contains(c, category)
}
