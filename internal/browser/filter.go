// Package browser derives everything the portal shows from the raw clipping
// collection: the filtered and paginated list view, and the year/month/category
// drill-down view. All functions are pure; State transitions return new values.
package browser

import (
	"strings"

	"github.com/MrSnakeDoc/clippings/internal/domain"
)

// Filter holds the list view criteria. Empty fields do not filter.
type Filter struct {
	Search   string
	Category string
	From     domain.Date
	To       domain.Date
}

// IsZero reports whether no criterion is active.
func (f Filter) IsZero() bool {
	return f.Search == "" && f.Category == "" && f.From.IsZero() && f.To.IsZero()
}

// Matches reports whether c satisfies every active criterion.
func (f Filter) Matches(c domain.Clipping) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.Title), term) &&
			!strings.Contains(strings.ToLower(c.Description), term) {
			return false
		}
	}
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	if !f.From.IsZero() && c.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && c.Date.After(f.To) {
		return false
	}
	return true
}

// ApplyFilters returns the matching records in collection order.
// The result never aliases the input.
func ApplyFilters(collection domain.Collection, f Filter) domain.Collection {
	matched := make(domain.Collection, 0, len(collection))
	for _, c := range collection {
		if f.Matches(c) {
			matched = append(matched, c)
		}
	}
	return matched
}
