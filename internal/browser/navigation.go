package browser

import (
	"slices"
	"sort"

	"github.com/MrSnakeDoc/clippings/internal/domain"
)

const (
	// SelectPrompt is shown while no year and month are selected.
	SelectPrompt = "Select a year and month to view clippings."
	// EmptyMonthMessage is shown when the selected month has no matching clippings.
	EmptyMonthMessage = "No clippings found for this month."
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthName returns the short name of a zero-based month index.
func MonthName(idx int) string {
	if idx < 0 || idx >= len(monthNames) {
		return ""
	}
	return monthNames[idx]
}

// YearsOf returns the distinct years present, most recent first.
func YearsOf(collection domain.Collection) []int {
	seen := make(map[int]struct{})
	for _, c := range collection {
		if c.Date.IsZero() {
			continue
		}
		seen[c.Date.Year()] = struct{}{}
	}
	return sortedDesc(seen)
}

// MonthsOf returns the distinct zero-based months present in year, most recent first.
func MonthsOf(collection domain.Collection, year int) []int {
	seen := make(map[int]struct{})
	for _, c := range collection {
		if c.Date.IsZero() || c.Date.Year() != year {
			continue
		}
		seen[c.Date.MonthIndex()] = struct{}{}
	}
	return sortedDesc(seen)
}

// CategoriesOf returns the distinct categories present, ascending.
func CategoriesOf(collection domain.Collection) []string {
	seen := make(map[string]struct{})
	for _, c := range collection {
		seen[c.Category] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for cat := range seen {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// InMonth returns the records dated in (year, month) whose category equals
// category, or all of them when category is empty.
func InMonth(collection domain.Collection, year, month int, category string) domain.Collection {
	out := make(domain.Collection, 0)
	for _, c := range collection {
		if !c.Date.InMonth(year, month) {
			continue
		}
		if category != "" && c.Category != category {
			continue
		}
		out = append(out, c)
	}
	return out
}

// CountInMonth counts the records dated in (year, month).
func CountInMonth(collection domain.Collection, year, month int) int {
	n := 0
	for _, c := range collection {
		if c.Date.InMonth(year, month) {
			n++
		}
	}
	return n
}

func sortedDesc(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	slices.Sort(out)
	slices.Reverse(out)
	return out
}
