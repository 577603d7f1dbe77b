package annotations

import "strings"

// NormalizeAttributeName normalizes attribute names for comparison.
func NormalizeAttributeName(name string) string {
	return strings.TrimSpace(name)
}

// MatchesAttribute reports whether a directive attribute names any of the given
// attributes, either directly or through an alias.
func MatchesAttribute(attr string, names ...string) bool {
	spec, _ := LookupAttribute(attr)
	attr = NormalizeAttributeName(attr)
	for _, n := range names {
		if attr == n {
			return true
		}
		if spec != nil && spec.Name == n {
			return true
		}
	}
	return false
}
