package browser

import (
	"strconv"

	"github.com/MrSnakeDoc/clippings/internal/domain"
)

// ListView is the filtered, paginated grid.
type ListView struct {
	Items      domain.Collection `json:"items"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	Info       ResultInfo        `json:"info"`
	Message    string            `json:"message"`
	Pagination Pagination        `json:"pagination"`
}

// List derives the list view of s.
func (s State) List() ListView {
	info := NewResultInfo(len(s.Matched), s.PageSize, s.Page)
	return ListView{
		Items:      Paginate(s.Matched, s.PageSize, s.Page),
		Page:       s.Page,
		TotalPages: s.TotalPages(),
		Info:       info,
		Message:    info.String(),
		Pagination: NewPagination(s.Page, s.TotalPages()),
	}
}

// Tab is a selectable year or month button.
type Tab struct {
	Value  int    `json:"value"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// BrowseView is the year/month/category drill-down.
type BrowseView struct {
	Phase    string            `json:"phase"`
	Years    []Tab             `json:"years"`
	Months   []Tab             `json:"months"`
	Category string            `json:"category"`
	Default  bool              `json:"default"` // selection picked by the view, not the user
	Items    domain.Collection `json:"items"`
	Message  string            `json:"message,omitempty"`
}

// Browse derives the drill-down view of s.
func (s State) Browse() BrowseView {
	v := BrowseView{
		Phase:    s.Nav.Phase.String(),
		Years:    make([]Tab, 0, len(s.Years)),
		Months:   make([]Tab, 0, len(s.Months)),
		Category: s.Nav.Category,
		Default:  s.Nav.Auto,
		Items:    domain.Collection{},
	}
	for _, y := range s.Years {
		v.Years = append(v.Years, Tab{
			Value:  y,
			Label:  strconv.Itoa(y) + " Clippings",
			Active: s.Nav.Phase != NoYear && s.Nav.Year == y,
		})
	}
	for _, m := range s.Months {
		v.Months = append(v.Months, Tab{
			Value:  m,
			Label:  MonthName(m),
			Active: s.Nav.Phase == YearAndMonthSelected && s.Nav.Month == m,
		})
	}

	if s.Nav.Phase != YearAndMonthSelected {
		v.Message = SelectPrompt
		return v
	}
	v.Items = InMonth(s.Collection, s.Nav.Year, s.Nav.Month, s.Nav.Category)
	if len(v.Items) == 0 {
		v.Message = EmptyMonthMessage
	}
	return v
}
