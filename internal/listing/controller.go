package listing

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/promptnexus/promptnexus/internal/model"
	"github.com/promptnexus/promptnexus/internal/repository"
)

// Lister is the slice of the prompt service the controller needs.
type Lister interface {
	List(ctx context.Context, filter repository.PromptFilter) ([]model.Prompt, error)
}

// Options tunes the controller. Zero values fall back to the defaults below.
type Options struct {
	PageSize       int           // prompts per page for signed-in users
	GuestLimit     int           // prompts a guest may preview
	SearchDebounce time.Duration // quiet period before a search fires
	FetchTimeout   time.Duration // per-fetch deadline
}

const (
	DefaultPageSize       = 9
	DefaultGuestLimit     = 3
	DefaultSearchDebounce = 300 * time.Millisecond
	DefaultFetchTimeout   = 12 * time.Second
)

// WithDefaults fills unset fields with the default policy values.
func (o Options) WithDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.GuestLimit <= 0 {
		o.GuestLimit = DefaultGuestLimit
	}
	if o.SearchDebounce <= 0 {
		o.SearchDebounce = DefaultSearchDebounce
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = DefaultFetchTimeout
	}
	return o
}

// View is an immutable snapshot of the browse state: the visible page plus
// everything needed to render pagination and the filter bar.
type View struct {
	Prompts    []model.Prompt
	Page       int
	TotalPages int
	Total      int // matches after search/filter, before pagination
	Query      string
	Filter     repository.PromptFilter
	Loading    bool
	LoadError  string // user-facing message; empty when the last fetch worked
	Guest      bool
	GuestCapped bool // true when the guest limit hid results
}

// Controller holds the state of one browse session.
//
// All mutating entry points take the lock; fetches run outside it. Every
// fetch is tagged with a generation number taken while holding the lock —
// a fetch whose generation is no longer current when it completes discards
// its result, so out-of-order responses can't overwrite newer state.
type Controller struct {
	lister Lister
	logger *slog.Logger
	opts   Options

	mu         sync.Mutex
	viewerID   string
	query      string
	pending    string // query waiting for the debounce to expire
	filter     repository.PromptFilter
	page       int
	prompts    []model.Prompt
	loading    bool
	loadError  string
	generation uint64
	timer      *time.Timer
}

func NewController(lister Lister, opts Options, logger *slog.Logger) *Controller {
	return &Controller{
		lister: lister,
		logger: logger,
		opts:   opts.WithDefaults(),
		page:   1,
	}
}

// SetViewer switches the acting user ("" for guest). Changing viewer resets
// search, filters and page — the guest preview and the signed-in catalogue
// are different views.
func (c *Controller) SetViewer(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.viewerID == userID {
		return
	}
	c.viewerID = userID
	c.query = ""
	c.pending = ""
	c.filter = repository.PromptFilter{}
	c.page = 1
	c.stopTimerLocked()
}

// Refresh fetches the catalogue with the current filter, synchronously.
// Used for the initial load and after mutations elsewhere invalidate the
// list. A store failure degrades to an empty list with a message — the
// browse page renders either way.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	gen := c.beginFetchLocked()
	filter := c.filter
	c.mu.Unlock()

	c.fetch(ctx, gen, filter)
}

// Search updates the title query. The fetch fires only after the debounce
// interval passes with no further keystrokes; each call cancels and
// restarts the countdown. Guests cannot search.
func (c *Controller) Search(query string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.viewerID == "" {
		return ErrSignInRequired
	}

	c.pending = query
	c.stopTimerLocked()
	c.timer = time.AfterFunc(c.opts.SearchDebounce, c.debouncedSearch)
	return nil
}

// debouncedSearch runs when the debounce expires: commit the pending query,
// reset to page one, refetch.
func (c *Controller) debouncedSearch() {
	c.mu.Lock()
	c.query = c.pending
	c.page = 1
	gen := c.beginFetchLocked()
	filter := c.filter
	c.mu.Unlock()

	c.fetch(context.Background(), gen, filter)
}

// SetFilter applies a role/task filter and refetches immediately. Both
// filters combine (AND) when set. Guests cannot filter.
func (c *Controller) SetFilter(ctx context.Context, filter repository.PromptFilter) error {
	c.mu.Lock()
	if c.viewerID == "" && !filter.IsZero() {
		c.mu.Unlock()
		return ErrSignInRequired
	}
	c.filter = filter
	c.page = 1
	gen := c.beginFetchLocked()
	c.mu.Unlock()

	c.fetch(ctx, gen, filter)
	return nil
}

// SetPage moves to the given 1-based page, clamped to the valid range of
// the current result set. Guests always see page one.
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.viewerID == "" {
		c.page = 1
		return
	}
	matches := len(FilterByTitle(c.prompts, c.query))
	c.page = ClampPage(page, matches, c.opts.PageSize)
}

// NextPage and PrevPage step the page with the same clamping as SetPage.
func (c *Controller) NextPage() { c.mu.Lock(); p := c.page + 1; c.mu.Unlock(); c.SetPage(p) }
func (c *Controller) PrevPage() { c.mu.Lock(); p := c.page - 1; c.mu.Unlock(); c.SetPage(p) }

// Snapshot renders the current state into a View.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	matched := FilterByTitle(c.prompts, c.query)

	view := View{
		Page:      c.page,
		Total:     len(matched),
		Query:     c.query,
		Filter:    c.filter,
		Loading:   c.loading,
		LoadError: c.loadError,
		Guest:     c.viewerID == "",
	}

	if view.Guest {
		view.Page = 1
		view.TotalPages = 1
		if len(matched) > c.opts.GuestLimit {
			matched = matched[:c.opts.GuestLimit]
			view.GuestCapped = true
		}
		view.Prompts = matched
		return view
	}

	view.TotalPages = TotalPages(len(matched), c.opts.PageSize)
	view.Page = ClampPage(c.page, len(matched), c.opts.PageSize)
	view.Prompts = Paginate(matched, view.Page, c.opts.PageSize)
	return view
}

// beginFetchLocked advances the generation and marks the view loading.
// Callers must hold c.mu.
func (c *Controller) beginFetchLocked() uint64 {
	c.generation++
	c.loading = true
	return c.generation
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// fetch lists prompts under the per-fetch deadline and installs the result
// unless a newer fetch has started in the meantime.
func (c *Controller) fetch(ctx context.Context, gen uint64, filter repository.PromptFilter) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.FetchTimeout)
	defer cancel()

	prompts, err := c.lister.List(ctx, filter)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		// A newer fetch superseded this one while it was in flight.
		c.logger.Debug("discarding stale fetch result",
			slog.Uint64("generation", gen),
			slog.Uint64("current", c.generation),
		)
		return
	}

	c.loading = false
	if err != nil {
		c.logger.Error("prompt fetch failed", slog.String("error", err.Error()))
		c.prompts = nil
		c.loadError = "could not load prompts, please try again"
		return
	}

	c.prompts = prompts
	c.loadError = ""
	c.page = ClampPage(c.page, len(FilterByTitle(prompts, c.query)), c.opts.PageSize)
}
