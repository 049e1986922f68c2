// Package listing drives the browse view of the prompt catalogue: fetching
// with role/task filters, client-side title search, pagination, and the
// guest preview cap.
//
// The store query handles role/task narrowing; title search filters the
// fetched slice locally, so typing in the search box never hammers the
// store. Search input is debounced and fetches are generation-tagged: a
// slow response that lands after a newer request fired is discarded rather
// than clobbering fresher results.
package listing

import (
	"errors"
	"strings"

	"github.com/promptnexus/promptnexus/internal/model"
)

// ErrSignInRequired is returned when a guest tries to search or filter.
// The HTTP layer turns it into a redirect to the sign-in page.
var ErrSignInRequired = errors.New("listing: sign in required")

// FilterByTitle returns the prompts whose title contains query,
// case-insensitive. An empty query returns the input unchanged.
func FilterByTitle(prompts []model.Prompt, query string) []model.Prompt {
	query = strings.TrimSpace(query)
	if query == "" {
		return prompts
	}

	needle := strings.ToLower(query)
	matched := make([]model.Prompt, 0, len(prompts))
	for _, p := range prompts {
		if strings.Contains(strings.ToLower(p.Title), needle) {
			matched = append(matched, p)
		}
	}
	return matched
}

// TotalPages returns how many pages n items occupy at the given page size.
// An empty result still renders one (empty) page.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 || n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// ClampPage forces page into [1, TotalPages(n, pageSize)]. Out-of-range
// requests land on the nearest valid page instead of erroring.
func ClampPage(page, n, pageSize int) int {
	if page < 1 {
		return 1
	}
	if last := TotalPages(n, pageSize); page > last {
		return last
	}
	return page
}

// Paginate slices out the requested page (1-based). The page number is
// clamped first, so callers can pass user input directly.
func Paginate(prompts []model.Prompt, page, pageSize int) []model.Prompt {
	if pageSize <= 0 {
		return prompts
	}
	page = ClampPage(page, len(prompts), pageSize)

	start := (page - 1) * pageSize
	if start >= len(prompts) {
		return nil
	}
	end := start + pageSize
	if end > len(prompts) {
		end = len(prompts)
	}
	return prompts[start:end]
}
