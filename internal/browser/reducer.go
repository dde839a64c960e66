package browser

import (
	"slices"

	"github.com/MrSnakeDoc/clippings/internal/domain"
)

// Intent is a user or host action consumed by Reduce.
type Intent interface {
	apply(s State) State
}

// Reduce applies in to s and returns the next state. s is left untouched.
// Rejected intents return s unchanged, Version included.
func Reduce(s State, in Intent) State {
	if in == nil {
		return s
	}
	return in.apply(s)
}

// Load installs a freshly fetched collection and resets every selection.
type Load struct{ Collection domain.Collection }

func (i Load) apply(s State) State {
	next := New(s.PageSize)
	next.Collection = i.Collection.Clone()
	next.Version = s.Version
	return next.derive().bump()
}

// ReplaceCollection swaps the collection while keeping the selections.
// The list view goes back to page 1.
type ReplaceCollection struct{ Collection domain.Collection }

func (i ReplaceCollection) apply(s State) State {
	s.Collection = i.Collection.Clone()
	s.Page = 1
	return s.derive().bump()
}

// AddClipping prepends a newly created record.
type AddClipping struct{ Clipping domain.Clipping }

func (i AddClipping) apply(s State) State {
	return ReplaceCollection{Collection: s.Collection.Prepend(i.Clipping)}.apply(s)
}

// SetFilter replaces all list criteria at once.
type SetFilter struct{ Filter Filter }

func (i SetFilter) apply(s State) State {
	s.Filter = i.Filter
	s.Page = 1
	return s.derive().bump()
}

// SetSearch changes the free-text term.
type SetSearch struct{ Term string }

func (i SetSearch) apply(s State) State {
	f := s.Filter
	f.Search = i.Term
	return SetFilter{Filter: f}.apply(s)
}

// SetCategory changes the list category criterion.
type SetCategory struct{ Category string }

func (i SetCategory) apply(s State) State {
	f := s.Filter
	f.Category = i.Category
	return SetFilter{Filter: f}.apply(s)
}

// SetDateFrom changes the lower date bound. A zero date clears it.
type SetDateFrom struct{ Date domain.Date }

func (i SetDateFrom) apply(s State) State {
	f := s.Filter
	f.From = i.Date
	return SetFilter{Filter: f}.apply(s)
}

// SetDateTo changes the upper date bound. A zero date clears it.
type SetDateTo struct{ Date domain.Date }

func (i SetDateTo) apply(s State) State {
	f := s.Filter
	f.To = i.Date
	return SetFilter{Filter: f}.apply(s)
}

// ClearFilters drops every list criterion.
type ClearFilters struct{}

func (ClearFilters) apply(s State) State {
	return SetFilter{}.apply(s)
}

// ChangePage moves the list view. Pages outside [1, TotalPages] are rejected.
type ChangePage struct{ Page int }

func (i ChangePage) apply(s State) State {
	if !ValidPage(i.Page, len(s.Matched), s.PageSize) || i.Page == s.Page {
		return s
	}
	s.Page = i.Page
	return s.bump()
}

// SelectYear picks a year in the drill-down view and clears the month.
// Years not present in the collection are rejected.
type SelectYear struct{ Year int }

func (i SelectYear) apply(s State) State {
	if !slices.Contains(s.Years, i.Year) {
		return s
	}
	s.Nav.Phase = YearSelected
	s.Nav.Year = i.Year
	s.Nav.Month = 0
	s.Nav.Auto = false
	return s.derive().bump()
}

// SelectMonth picks a zero-based month of the selected year.
type SelectMonth struct{ Month int }

func (i SelectMonth) apply(s State) State {
	if s.Nav.Phase == NoYear || !slices.Contains(s.Months, i.Month) {
		return s
	}
	s.Nav.Phase = YearAndMonthSelected
	s.Nav.Month = i.Month
	s.Nav.Auto = false
	return s.bump()
}

// SetBrowseCategory refines the drill-down view by category. Empty means all.
type SetBrowseCategory struct{ Category string }

func (i SetBrowseCategory) apply(s State) State {
	if s.Nav.Category == i.Category {
		return s
	}
	s.Nav.Category = i.Category
	return s.bump()
}

// ResetBrowse clears the drill-down selection, as when the view is re-entered.
// The default year and month are picked again.
type ResetBrowse struct{}

func (ResetBrowse) apply(s State) State {
	s.Nav = Nav{}
	return s.derive().bump()
}
