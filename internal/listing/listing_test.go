package listing

import (
	"fmt"
	"testing"

	"github.com/promptnexus/promptnexus/internal/model"
)

func titled(titles ...string) []model.Prompt {
	prompts := make([]model.Prompt, len(titles))
	for i, title := range titles {
		prompts[i] = model.Prompt{ID: fmt.Sprintf("p-%d", i), Title: title}
	}
	return prompts
}

func TestFilterByTitle_CaseInsensitive(t *testing.T) {
	prompts := titled(
		"Marketing Email Copywriter",
		"Clean Code Reviewer",
		"Market Research Assistant",
		"SQL Query Optimizer",
	)

	got := FilterByTitle(prompts, "market")
	if len(got) != 2 {
		t.Fatalf("FilterByTitle(market) = %d prompts, want 2", len(got))
	}
	for _, p := range got {
		if p.Title != "Marketing Email Copywriter" && p.Title != "Market Research Assistant" {
			t.Errorf("unexpected match %q", p.Title)
		}
	}

	// Query casing must not matter either.
	if len(FilterByTitle(prompts, "MARKET")) != 2 {
		t.Error("FilterByTitle is case-sensitive on the query side")
	}
}

func TestFilterByTitle_EmptyQueryReturnsAll(t *testing.T) {
	prompts := titled("a", "b", "c")

	for _, query := range []string{"", "   "} {
		if got := FilterByTitle(prompts, query); len(got) != 3 {
			t.Errorf("FilterByTitle(%q) = %d prompts, want all 3", query, len(got))
		}
	}
}

func TestFilterByTitle_NoMatches(t *testing.T) {
	prompts := titled("Clean Code Reviewer")

	if got := FilterByTitle(prompts, "zebra"); len(got) != 0 {
		t.Errorf("FilterByTitle(zebra) = %d prompts, want 0", len(got))
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		n, pageSize, want int
	}{
		{0, 9, 1},  // empty catalogue still renders one page
		{1, 9, 1},
		{9, 9, 1},
		{10, 9, 2},
		{20, 9, 3},
		{27, 9, 3},
		{28, 9, 4},
	}

	for _, tc := range cases {
		if got := TotalPages(tc.n, tc.pageSize); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.n, tc.pageSize, got, tc.want)
		}
	}
}

func TestPaginate(t *testing.T) {
	prompts := make([]model.Prompt, 20)
	for i := range prompts {
		prompts[i] = model.Prompt{ID: fmt.Sprintf("p-%d", i)}
	}

	page1 := Paginate(prompts, 1, 9)
	page3 := Paginate(prompts, 3, 9)

	if len(page1) != 9 {
		t.Errorf("page 1 has %d prompts, want 9", len(page1))
	}
	if page1[0].ID != "p-0" {
		t.Errorf("page 1 starts at %s, want p-0", page1[0].ID)
	}
	if len(page3) != 2 {
		t.Errorf("page 3 has %d prompts, want the 2 leftovers", len(page3))
	}
	if page3[0].ID != "p-18" {
		t.Errorf("page 3 starts at %s, want p-18", page3[0].ID)
	}
}

func TestPaginate_OutOfRangeClamps(t *testing.T) {
	prompts := titled("a", "b", "c")

	// Past the end lands on the last page, not an empty one.
	if got := Paginate(prompts, 99, 2); len(got) != 1 || got[0].Title != "c" {
		t.Errorf("Paginate(page=99) = %v, want the last page", got)
	}
	// Below the start lands on page one.
	if got := Paginate(prompts, 0, 2); len(got) != 2 || got[0].Title != "a" {
		t.Errorf("Paginate(page=0) = %v, want the first page", got)
	}
}
