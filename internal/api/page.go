package api

// Meta is the pagination block returned alongside every collection.
type Meta struct {
	Total       int `json:"total"`
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	LastPage    int `json:"last_page"`

	// Totals carries per-tab counts on endpoints that report them
	// (e.g. active/pending/archived provider funds).
	Totals map[string]int `json:"totals,omitempty"`
}

// Page is one fetched page of a collection. A new Page fully replaces the
// previous one on re-fetch; pages are never mutated in place.
//
// Meta.Total stays authoritative even when Data is refined further
// client-side.
type Page[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// Empty reports whether the page resolved with no rows at all.
func (p *Page[T]) Empty() bool {
	return p != nil && len(p.Data) == 0
}

// envelope is the {data: T} wrapper used by single-resource endpoints.
type envelope[T any] struct {
	Data T `json:"data"`
}
