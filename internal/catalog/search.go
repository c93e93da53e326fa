// Copyright (c) 2026 AnFr. All rights reserved.

package catalog

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// DefaultSearchQuiet is the trailing-edge debounce window: a lookup fires
// only after the query has been stable for this long.
const DefaultSearchQuiet = 300 * time.Millisecond

// Lookup is the slice of the catalogue service the searcher depends on.
type Lookup interface {
	Search(ctx context.Context, kind Kind, query string) ([]*Title, error)
}

// Searcher converts free-text keystrokes into rate-limited catalogue lookups.
//
// # State machine
//
// Empty query: idle, panel hidden, no results. Non-empty query: panel shown
// immediately, a lookup scheduled after the quiet window; every further
// keystroke cancels and reschedules it, so only the latest keystroke in any
// quiet window reaches the store. Responses are tagged with a generation
// number; a slow response that arrives after a newer dispatch is discarded.
//
// # Ownership
//
// A Searcher is component-scoped state: one instance per search box, torn
// down with [Searcher.Close]. It is safe for concurrent use because the
// debounce timer fires on a background goroutine.
type Searcher struct {
	ctx    context.Context
	lookup Lookup
	logger *slog.Logger

	quiet      time.Duration
	onNavigate func(query string)

	mu         sync.Mutex
	timer      *time.Timer
	query      string
	visible    bool
	searching  bool
	results    []*Title
	generation uint64
	closed     bool
}

// SearcherOption customizes a [Searcher].
type SearcherOption func(*Searcher)

// WithQuiet overrides the debounce window (tests use a short one).
func WithQuiet(d time.Duration) SearcherOption {
	return func(s *Searcher) { s.quiet = d }
}

// WithNavigate registers the listener invoked when a query is submitted.
// The listener receives the trimmed query and is expected to route to the
// full listing surface.
func WithNavigate(fn func(query string)) SearcherOption {
	return func(s *Searcher) { s.onNavigate = fn }
}

// NewSearcher constructs a search pipeline over the anime collection.
func NewSearcher(ctx context.Context, lookup Lookup, logger *slog.Logger, opts ...SearcherOption) *Searcher {
	searcher := &Searcher{
		ctx:    ctx,
		lookup: lookup,
		logger: logger,
		quiet:  DefaultSearchQuiet,
	}
	for _, opt := range opts {
		opt(searcher)
	}
	return searcher
}

// Input records a keystroke.
//
// A blank (trimmed-empty) query clears results and hides the panel without
// touching the store. A non-empty query shows the panel immediately and
// (re)schedules the debounced lookup with the query value as of this call.
func (s *Searcher) Input(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.query = query
	s.stopTimerLocked()

	if strings.TrimSpace(query) == "" {
		s.results = nil
		s.visible = false
		s.searching = false
		return
	}

	s.visible = true
	s.timer = time.AfterFunc(s.quiet, func() {
		s.fire(query)
	})
}

// Submit handles the explicit search action (button or Enter key).
//
// With a non-empty query it clears the input and panel, cancels any pending
// lookup, and hands the query to the navigation listener. It reports whether
// a navigation happened.
func (s *Searcher) Submit() bool {
	s.mu.Lock()
	query := strings.TrimSpace(s.query)
	if s.closed || query == "" {
		s.mu.Unlock()
		return false
	}

	s.query = ""
	s.results = nil
	s.visible = false
	s.searching = false
	s.stopTimerLocked()
	navigate := s.onNavigate
	s.mu.Unlock()

	if navigate != nil {
		navigate(query)
	}
	return true
}

// Results returns the current dropdown state.
func (s *Searcher) Results() (results []*Title, visible, searching bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results, s.visible, s.searching
}

// Query returns the current input value.
func (s *Searcher) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Close cancels any pending lookup. Responses already in flight are
// discarded by the generation check.
func (s *Searcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopTimerLocked()
}

// stopTimerLocked cancels the pending debounce timer. Callers hold s.mu.
func (s *Searcher) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// fire runs on the debounce timer goroutine once the quiet window elapses.
func (s *Searcher) fire(query string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.generation++
	seq := s.generation
	s.searching = true
	s.mu.Unlock()

	titles, err := s.lookup.Search(s.ctx, KindAnime, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A newer dispatch supersedes this response.
	if seq != s.generation || s.closed {
		return
	}
	s.searching = false

	if err != nil {
		// Reads degrade silently: keep whatever a prior lookup produced.
		s.logger.Warn("search_lookup_failed",
			slog.String("query", query),
			slog.Any("error", err),
		)
		return
	}

	// The panel may have been hidden while the request was in flight.
	if !s.visible {
		return
	}
	s.results = titles
}
