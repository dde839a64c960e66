package browser

import (
	"fmt"

	"github.com/MrSnakeDoc/clippings/internal/domain"
)

// NoResultsMessage is shown when the matched set is empty.
const NoResultsMessage = "No clippings found matching your criteria"

// TotalPages returns ceil(total/size), 0 for an empty set.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// ValidPage reports whether page is within [1, TotalPages].
func ValidPage(page, total, size int) bool {
	return page >= 1 && page <= TotalPages(total, size)
}

// Paginate returns the 1-based page of matched. Out of range pages yield an empty slice.
func Paginate(matched domain.Collection, size, page int) domain.Collection {
	if size <= 0 || page < 1 {
		return domain.Collection{}
	}
	start := (page - 1) * size
	if start >= len(matched) {
		return domain.Collection{}
	}
	end := min(start+size, len(matched))
	out := make(domain.Collection, end-start)
	copy(out, matched[start:end])
	return out
}

// ResultInfo summarizes which slice of the matched set is on screen.
type ResultInfo struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Total int `json:"total"`
}

// NewResultInfo computes the range shown on page of size over total results.
func NewResultInfo(total, size, page int) ResultInfo {
	if total <= 0 {
		return ResultInfo{}
	}
	offset := (page - 1) * size
	shown := min(size, total-offset)
	start := offset + 1
	return ResultInfo{Start: start, End: start + shown - 1, Total: total}
}

func (ri ResultInfo) String() string {
	if ri.Total == 0 {
		return NoResultsMessage
	}
	return fmt.Sprintf("Showing %d-%d of %d clippings", ri.Start, ri.End, ri.Total)
}

// PageLink is one element of the pagination bar.
// Ellipsis entries have Page == 0.
type PageLink struct {
	Page     int  `json:"page"`
	Active   bool `json:"active"`
	Ellipsis bool `json:"ellipsis"`
}

// Pagination describes the pagination bar. It is empty when there is at most one page.
type Pagination struct {
	Prev        int        `json:"prev"`
	Next        int        `json:"next"`
	PrevEnabled bool       `json:"prevEnabled"`
	NextEnabled bool       `json:"nextEnabled"`
	Links       []PageLink `json:"links"`
}

// Visible reports whether the bar should be rendered at all.
func (p Pagination) Visible() bool { return len(p.Links) > 0 }

// NewPagination lays out first, last and current±2 pages, with an ellipsis at ±3.
func NewPagination(current, totalPages int) Pagination {
	if totalPages <= 1 {
		return Pagination{}
	}
	p := Pagination{
		Prev:        current - 1,
		Next:        current + 1,
		PrevEnabled: current > 1,
		NextEnabled: current < totalPages,
	}
	for i := 1; i <= totalPages; i++ {
		switch {
		case i == 1 || i == totalPages || (i >= current-2 && i <= current+2):
			p.Links = append(p.Links, PageLink{Page: i, Active: i == current})
		case i == current-3 || i == current+3:
			p.Links = append(p.Links, PageLink{Ellipsis: true})
		}
	}
	return p
}
