package domain

import "maps"

// Filter names accepted by the vacancy search.
const (
	FilterLocation = "location"
	FilterSkill    = "skill"
	FilterJobType  = "jobType"
)

var allowedFilters = map[string]struct{}{
	FilterLocation: {},
	FilterSkill:    {},
	FilterJobType:  {},
}

// SearchQuery is the state of the vacancy search view. Values are immutable:
// every transition returns a new query.
type SearchQuery struct {
	Keyword string
	Page    int
	Filters map[string]string
}

// NewSearchQuery normalises raw input: unknown and empty filters are
// dropped and the page is clamped to 1.
func NewSearchQuery(keyword string, page int, filters map[string]string) SearchQuery {
	q := SearchQuery{Keyword: keyword, Page: page, Filters: map[string]string{}}
	if q.Page < 1 {
		q.Page = 1
	}
	for k, v := range filters {
		if _, ok := allowedFilters[k]; ok && v != "" {
			q.Filters[k] = v
		}
	}
	return q
}

// AllowedFilter reports whether name is a known search filter.
func AllowedFilter(name string) bool {
	_, ok := allowedFilters[name]
	return ok
}

func (q SearchQuery) clone() SearchQuery {
	out := q
	out.Filters = maps.Clone(q.Filters)
	if out.Filters == nil {
		out.Filters = map[string]string{}
	}
	return out
}

// WithPage moves to page p, keeping keyword and filters.
func (q SearchQuery) WithPage(p int) SearchQuery {
	out := q.clone()
	out.Page = max(p, 1)
	return out
}

// WithKeyword replaces the keyword and returns to the first page.
func (q SearchQuery) WithKeyword(k string) SearchQuery {
	out := q.clone()
	out.Keyword = k
	out.Page = 1
	return out
}

// WithFilter applies a filter. Applying a filter clears the keyword and
// returns to the first page.
func (q SearchQuery) WithFilter(name, value string) SearchQuery {
	if !AllowedFilter(name) {
		return q.clone()
	}
	out := q.clone()
	if value == "" {
		delete(out.Filters, name)
	} else {
		out.Filters[name] = value
	}
	out.Keyword = ""
	out.Page = 1
	return out
}

// WithoutFilter removes a filter, clears the keyword and returns to page 1.
func (q SearchQuery) WithoutFilter(name string) SearchQuery {
	return q.WithFilter(name, "")
}

// Reset clears keyword and filters.
func (q SearchQuery) Reset() SearchQuery {
	return NewSearchQuery("", 1, nil)
}
