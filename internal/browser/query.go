package browser

import (
	"errors"
	"time"

	"github.com/MrSnakeDoc/clippings/internal/domain"
)

// ErrPageOutOfRange is returned by Query for a page outside [1, TotalPages].
var ErrPageOutOfRange = errors.New("page out of range")

// Query runs the list view statelessly: filter, then paginate. Page 1 of an
// empty matched set is valid and carries the no-results message.
func Query(c domain.Collection, f Filter, size, page int) (ListView, error) {
	if size <= 0 {
		size = domain.PageSize
	}
	matched := ApplyFilters(c, f)
	if page != 1 && !ValidPage(page, len(matched), size) {
		return ListView{}, ErrPageOutOfRange
	}
	s := State{PageSize: size, Page: page, Filter: f, Matched: matched}
	return s.List(), nil
}

// BrowseQuery runs the drill-down statelessly. A zero year keeps the default
// selection; month < 0 keeps the default month of the selected year.
func BrowseQuery(c domain.Collection, year, month int, category string) BrowseView {
	s := Reduce(New(domain.PageSize), Load{Collection: c})
	if year != 0 {
		s = Reduce(s, SelectYear{Year: year})
	}
	if month >= 0 {
		s = Reduce(s, SelectMonth{Month: month})
	}
	s = Reduce(s, SetBrowseCategory{Category: category})
	return s.Browse()
}

// Stats are the dashboard counters.
type Stats struct {
	Total      int `json:"total"`
	Categories int `json:"categories"`
	ThisMonth  int `json:"thisMonth"`
}

// ComputeStats counts the collection, the category enumeration size and the
// clippings dated in the calendar month of now.
func ComputeStats(c domain.Collection, categories int, now time.Time) Stats {
	return Stats{
		Total:      len(c),
		Categories: categories,
		ThisMonth:  CountInMonth(c, now.Year(), int(now.Month())-1),
	}
}
