package browser

import (
	"testing"

	"github.com/MrSnakeDoc/clippings/internal/domain"
)

func loaded(c domain.Collection) State {
	return Reduce(New(domain.PageSize), Load{Collection: c})
}

func TestInitialState(t *testing.T) {
	s := New(0)
	if s.PageSize != domain.PageSize || s.Page != 1 {
		t.Errorf("New(0) = page size %d, page %d", s.PageSize, s.Page)
	}
	if s.Nav.Phase != NoYear {
		t.Errorf("initial phase = %v, want NoYear", s.Nav.Phase)
	}

	v := s.Browse()
	if v.Message != SelectPrompt {
		t.Errorf("empty collection browse message = %q, want the select prompt", v.Message)
	}
	if len(v.Years) != 0 || len(v.Items) != 0 {
		t.Errorf("empty collection browse view = %+v", v)
	}
	if s.List().Message != NoResultsMessage {
		t.Errorf("empty collection list message = %q", s.List().Message)
	}
}

func TestLoadAutoSelectsMostRecent(t *testing.T) {
	s := loaded(sampleCollection())

	if s.Nav.Phase != YearAndMonthSelected || s.Nav.Year != 2024 || s.Nav.Month != 2 {
		t.Fatalf("after load nav = %+v, want 2024/March", s.Nav)
	}
	if !s.Nav.Auto {
		t.Error("default selection should be flagged Auto")
	}

	v := s.Browse()
	if got := ids(v.Items); !equalInts(got, []int{1}) {
		t.Errorf("browse items = %v, want [1]", got)
	}
	if !v.Years[0].Active || v.Years[1].Active {
		t.Errorf("year tabs = %+v", v.Years)
	}
	if v.Years[0].Label != "2024 Clippings" {
		t.Errorf("year label = %q", v.Years[0].Label)
	}
}

func TestSelectYearAndMonth(t *testing.T) {
	s := loaded(sampleCollection())

	s = Reduce(s, SelectYear{Year: 2023})
	if s.Nav.Year != 2023 || s.Nav.Month != 11 || s.Nav.Phase != YearAndMonthSelected {
		t.Fatalf("after SelectYear(2023) nav = %+v", s.Nav)
	}
	if s.Nav.Auto {
		t.Error("user selection should clear Auto")
	}
	if !equalInts(s.Months, []int{11}) {
		t.Errorf("months = %v, want [11]", s.Months)
	}

	s = Reduce(s, SelectYear{Year: 2024})
	s = Reduce(s, SelectMonth{Month: 0})
	if s.Nav.Month != 0 || s.Nav.Phase != YearAndMonthSelected {
		t.Fatalf("January should be selectable, nav = %+v", s.Nav)
	}
	if got := ids(s.Browse().Items); !equalInts(got, []int{2}) {
		t.Errorf("January items = %v, want [2]", got)
	}
}

func TestRejectedNavigationIsNoop(t *testing.T) {
	s := loaded(sampleCollection())

	for _, in := range []Intent{
		SelectYear{Year: 1990},
		SelectMonth{Month: 5},
		ChangePage{Page: 2},
		ChangePage{Page: 0},
		SetBrowseCategory{Category: ""},
	} {
		next := Reduce(s, in)
		if next.Version != s.Version || next.Nav != s.Nav || next.Page != s.Page {
			t.Errorf("%T%+v should be a no-op, nav %+v -> %+v", in, in, s.Nav, next.Nav)
		}
	}

	empty := New(domain.PageSize)
	if next := Reduce(empty, SelectMonth{Month: 0}); next.Nav.Phase != NoYear {
		t.Errorf("SelectMonth without a year changed phase to %v", next.Nav.Phase)
	}
}

func TestBrowseCategoryRefinement(t *testing.T) {
	s := loaded(sampleCollection())
	s = Reduce(s, SelectMonth{Month: 0}) // January 2024: one Safety clipping

	s = Reduce(s, SetBrowseCategory{Category: "HR"})
	v := s.Browse()
	if len(v.Items) != 0 || v.Message != EmptyMonthMessage {
		t.Errorf("HR in January = %+v, want the empty month message", v)
	}

	s = Reduce(s, SetBrowseCategory{Category: "Safety"})
	if got := ids(s.Browse().Items); !equalInts(got, []int{2}) {
		t.Errorf("Safety in January = %v, want [2]", got)
	}
}

func TestPagingScenario(t *testing.T) {
	c := numbered(25)
	for i := range c {
		c[i].Date = domain.MustParseDate("2024-01-01")
	}
	s := loaded(c)

	if s.TotalPages() != 3 {
		t.Fatalf("TotalPages() = %d, want 3", s.TotalPages())
	}
	wantCounts := []int{9, 9, 7}
	for i, want := range wantCounts {
		page := i + 1
		s = Reduce(s, ChangePage{Page: page})
		if s.Page != page {
			t.Fatalf("ChangePage(%d) left page at %d", page, s.Page)
		}
		if got := len(s.List().Items); got != want {
			t.Errorf("page %d has %d items, want %d", page, got, want)
		}
	}

	before := s
	s = Reduce(s, ChangePage{Page: 4})
	if s.Page != before.Page || s.Version != before.Version {
		t.Errorf("ChangePage(4) should be rejected, page = %d", s.Page)
	}
	if got := s.List().Message; got != "Showing 19-25 of 25 clippings" {
		t.Errorf("info = %q", got)
	}
}

func TestFilterChangesResetPage(t *testing.T) {
	c := numbered(25)
	for i := range c {
		c[i].Title = "wind farm"
		c[i].Category = "Projects"
		c[i].Date = domain.MustParseDate("2024-01-01")
	}

	intents := []Intent{
		SetSearch{Term: "wind"},
		SetCategory{Category: "Projects"},
		SetDateFrom{Date: domain.MustParseDate("2023-01-01")},
		SetDateTo{Date: domain.MustParseDate("2025-01-01")},
		ClearFilters{},
	}
	for _, in := range intents {
		s := Reduce(loaded(c), ChangePage{Page: 3})
		if s.Page != 3 {
			t.Fatalf("setup: page = %d", s.Page)
		}
		s = Reduce(s, in)
		if s.Page != 1 {
			t.Errorf("%T should reset page to 1, got %d", in, s.Page)
		}
		again := Reduce(s, in)
		if !equalInts(ids(again.Matched), ids(s.Matched)) {
			t.Errorf("%T applied twice changed the matched set", in)
		}
	}
}

func TestAddClippingRederives(t *testing.T) {
	s := loaded(sampleCollection())
	s = Reduce(s, SetCategory{Category: "Projects"})
	if len(s.Matched) != 0 {
		t.Fatalf("setup: matched = %v", ids(s.Matched))
	}
	original := s.Collection

	added := domain.Clipping{ID: s.Collection.NextID(), Title: "X", Date: domain.MustParseDate("2025-05-01"), Category: "Projects"}
	s = Reduce(s, AddClipping{Clipping: added})

	if s.Collection[0].ID != 4 || len(s.Collection) != 4 {
		t.Errorf("collection ids = %v, want 4 prepended", ids(s.Collection))
	}
	if len(original) != 3 {
		t.Errorf("previous snapshot was mutated: %v", ids(original))
	}
	if !equalInts(s.Years, []int{2025, 2024, 2023}) {
		t.Errorf("years = %v", s.Years)
	}
	if got := ids(s.Matched); !equalInts(got, []int{4}) {
		t.Errorf("matched = %v, want [4]", got)
	}
	if s.Nav.Year != 2024 {
		t.Errorf("existing selection should survive, nav = %+v", s.Nav)
	}
}

func TestEmptyThenUploadSelectsDefault(t *testing.T) {
	s := loaded(nil)
	if s.Nav.Phase != NoYear {
		t.Fatalf("phase = %v", s.Nav.Phase)
	}
	s = Reduce(s, AddClipping{Clipping: domain.Clipping{ID: 1, Date: domain.MustParseDate("2024-05-01")}})
	if s.Nav.Phase != YearAndMonthSelected || s.Nav.Year != 2024 || s.Nav.Month != 4 {
		t.Errorf("nav after first upload = %+v", s.Nav)
	}
}

func TestResetBrowse(t *testing.T) {
	s := loaded(sampleCollection())
	s = Reduce(s, SelectYear{Year: 2023})
	s = Reduce(s, SetBrowseCategory{Category: "HR"})

	s = Reduce(s, ResetBrowse{})
	if s.Nav.Year != 2024 || s.Nav.Month != 2 || s.Nav.Category != "" || !s.Nav.Auto {
		t.Errorf("nav after reset = %+v", s.Nav)
	}
}

func TestReplaceCollectionDropsVanishedYear(t *testing.T) {
	s := loaded(sampleCollection())
	s = Reduce(s, SelectYear{Year: 2023})

	s = Reduce(s, ReplaceCollection{Collection: sampleCollection()[:2]})
	if s.Nav.Year != 2024 || !s.Nav.Auto {
		t.Errorf("nav after the selected year vanished = %+v", s.Nav)
	}
}
