// Package refine slices an already-fetched collection in memory.
//
// It is used only for small catalogs that are fetched whole (the feature
// catalog, for one); large collections always filter server-side through
// query parameters. Refine is pure: order-preserving, idempotent, and
// never returns an item that fails the criteria.
package refine

import "strings"

// Criteria is a free-text query plus categorical constraints.
type Criteria struct {
	// Q matches case-insensitively as a substring of any of the item's
	// text fields.
	Q string

	// Facets maps a categorical key to its required value. An empty
	// value or "all" leaves the facet unconstrained.
	Facets map[string]string
}

// TextFunc extracts the searchable text fields of an item.
type TextFunc[T any] func(item T) []string

// FacetFunc extracts the categorical fields of an item.
type FacetFunc[T any] func(item T) map[string]string

// Refine returns the ordered subset of items matching the criteria.
func Refine[T any](items []T, crit Criteria, text TextFunc[T], facets FacetFunc[T]) []T {
	q := strings.ToLower(strings.TrimSpace(crit.Q))

	out := make([]T, 0, len(items))
	for _, item := range items {
		if q != "" && !matchesText(text(item), q) {
			continue
		}
		if !matchesFacets(facets(item), crit.Facets) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesText(fields []string, q string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func matchesFacets(have map[string]string, want map[string]string) bool {
	for key, value := range want {
		if value == "" || value == "all" {
			continue
		}
		if have[key] != value {
			return false
		}
	}
	return true
}
