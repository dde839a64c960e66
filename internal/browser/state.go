package browser

import (
	"slices"

	"github.com/MrSnakeDoc/clippings/internal/domain"
)

// Phase is the drill-down selection state.
type Phase int

const (
	NoYear Phase = iota
	YearSelected
	YearAndMonthSelected
)

func (p Phase) String() string {
	switch p {
	case YearSelected:
		return "year"
	case YearAndMonthSelected:
		return "year+month"
	default:
		return "none"
	}
}

// Nav is the drill-down selection. Month is zero-based and only meaningful
// in YearAndMonthSelected.
type Nav struct {
	Phase    Phase
	Year     int
	Month    int
	Category string
	// Auto is true while the selection is the default picked by the view,
	// false once the user chose a year or month.
	Auto bool
}

// State is an immutable snapshot of everything the views need.
// Slices held by a State are never written after the State is returned;
// every transition builds fresh ones.
type State struct {
	Collection domain.Collection
	PageSize   int

	// list view
	Filter  Filter
	Page    int
	Matched domain.Collection

	// drill-down view
	Nav    Nav
	Years  []int
	Months []int // months of Nav.Year

	Categories []string

	// Version increases on every transition that changed something.
	Version int
}

// New returns the initial state for an empty collection.
func New(pageSize int) State {
	if pageSize <= 0 {
		pageSize = domain.PageSize
	}
	s := State{PageSize: pageSize, Page: 1}
	return s.derive()
}

// TotalPages of the current matched set.
func (s State) TotalPages() int {
	return TotalPages(len(s.Matched), s.PageSize)
}

// derive recomputes every derived field from Collection and the selections,
// then applies the default year/month selection when nothing is selected.
func (s State) derive() State {
	if s.Collection == nil {
		s.Collection = domain.Collection{}
	}
	s.Matched = ApplyFilters(s.Collection, s.Filter)
	s.Years = YearsOf(s.Collection)
	s.Categories = CategoriesOf(s.Collection)
	if s.Page < 1 {
		s.Page = 1
	}

	if s.Nav.Phase != NoYear && !slices.Contains(s.Years, s.Nav.Year) {
		s.Nav = Nav{Category: s.Nav.Category}
	}
	if s.Nav.Phase == NoYear {
		s.Months = nil
		if len(s.Years) > 0 {
			s.Nav.Phase = YearSelected
			s.Nav.Year = s.Years[0]
			s.Nav.Auto = true
		}
	}
	if s.Nav.Phase != NoYear {
		s.Months = MonthsOf(s.Collection, s.Nav.Year)
		if s.Nav.Phase == YearAndMonthSelected && !slices.Contains(s.Months, s.Nav.Month) {
			s.Nav.Phase = YearSelected
		}
		if s.Nav.Phase == YearSelected && len(s.Months) > 0 {
			s.Nav.Phase = YearAndMonthSelected
			s.Nav.Month = s.Months[0]
		}
	}
	return s
}

func (s State) bump() State {
	s.Version++
	return s
}
