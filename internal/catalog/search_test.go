// Copyright (c) 2026 AnFr. All rights reserved.

package catalog_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ismail26477/an-fr/internal/catalog"
)

// fakeLookup records every search call and serves canned results. A query
// can be gated so its response resolves only when the test releases it,
// which lets us exercise the stale-response path deterministically.
type fakeLookup struct {
	mu      sync.Mutex
	calls   []string
	results map[string][]*catalog.Title
	errs    map[string]error
	gates   map[string]chan struct{}
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{
		results: make(map[string][]*catalog.Title),
		errs:    make(map[string]error),
		gates:   make(map[string]chan struct{}),
	}
}

func (f *fakeLookup) Search(ctx context.Context, kind catalog.Kind, query string) ([]*catalog.Title, error) {
	f.mu.Lock()
	f.calls = append(f.calls, query)
	gate := f.gates[query]
	result := f.results[query]
	err := f.errs[query]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return result, err
}

func (f *fakeLookup) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeLookup) lastCall() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func titlesNamed(names ...string) []*catalog.Title {
	out := make([]*catalog.Title, 0, len(names))
	for _, n := range names {
		out = append(out, &catalog.Title{ID: n, Kind: catalog.KindAnime, Title: n})
	}
	return out
}

/*
TestSearcher_Debounce verifies the trailing-edge contract: rapid keystrokes
collapse into a single lookup carrying the latest query value, and Close
cancels a pending lookup.
*/
func TestSearcher_Debounce(t *testing.T) {
	lookup := newFakeLookup()
	lookup.results["naru"] = titlesNamed("Naruto")

	const quiet = 60 * time.Millisecond
	searcher := catalog.NewSearcher(context.Background(), lookup, testLogger(), catalog.WithQuiet(quiet))
	defer searcher.Close()

	// Three keystrokes inside one quiet window.
	searcher.Input("n")
	time.Sleep(20 * time.Millisecond)
	searcher.Input("na")
	time.Sleep(10 * time.Millisecond)
	searcher.Input("naru")

	// Nothing may fire before the quiet window elapses.
	time.Sleep(quiet / 2)
	assert.Equal(t, 0, lookup.callCount())

	// Exactly one lookup, with the value as of the last keystroke.
	require.Eventually(t, func() bool { return lookup.callCount() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "naru", lookup.lastCall())

	require.Eventually(t, func() bool {
		results, visible, searching := searcher.Results()
		return visible && !searching && len(results) == 1
	}, time.Second, 5*time.Millisecond)

	// A fourth keystroke schedules again, but Close cancels it.
	searcher.Input("narut")
	searcher.Close()
	time.Sleep(2 * quiet)
	assert.Equal(t, 1, lookup.callCount())
}

/*
TestSearcher_BlankQuery verifies that a trimmed-empty query clears results,
hides the panel, and never reaches the store.
*/
func TestSearcher_BlankQuery(t *testing.T) {
	lookup := newFakeLookup()
	lookup.results["bleach"] = titlesNamed("Bleach")

	searcher := catalog.NewSearcher(context.Background(), lookup, testLogger(),
		catalog.WithQuiet(20*time.Millisecond))
	defer searcher.Close()

	searcher.Input("bleach")
	require.Eventually(t, func() bool {
		results, _, _ := searcher.Results()
		return len(results) == 1
	}, time.Second, 5*time.Millisecond)

	searcher.Input("   ")
	results, visible, searching := searcher.Results()
	assert.Nil(t, results)
	assert.False(t, visible)
	assert.False(t, searching)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, lookup.callCount(), "blank input must not hit the store")
}

/*
TestSearcher_StaleResponseDiscarded verifies the generation guard: a slow
response from a superseded query must not clobber the newer result set.
*/
func TestSearcher_StaleResponseDiscarded(t *testing.T) {
	lookup := newFakeLookup()
	slowGate := make(chan struct{})
	lookup.gates["slow"] = slowGate
	lookup.results["slow"] = titlesNamed("Stale")
	lookup.results["fresh"] = titlesNamed("Fresh")

	const quiet = 20 * time.Millisecond
	searcher := catalog.NewSearcher(context.Background(), lookup, testLogger(), catalog.WithQuiet(quiet))
	defer searcher.Close()

	searcher.Input("slow")
	require.Eventually(t, func() bool { return lookup.callCount() == 1 }, time.Second, 5*time.Millisecond)

	// The slow request is in flight; a newer query dispatches and resolves.
	searcher.Input("fresh")
	require.Eventually(t, func() bool { return lookup.callCount() == 2 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		results, _, _ := searcher.Results()
		return len(results) == 1 && results[0].Title == "Fresh"
	}, time.Second, 5*time.Millisecond)

	// Now the stale response lands — and must be dropped.
	close(slowGate)
	time.Sleep(50 * time.Millisecond)
	results, _, _ := searcher.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "Fresh", results[0].Title)
}

/*
TestSearcher_LookupFailureKeepsResults verifies that reads degrade silently:
a failed lookup leaves the previously displayed results in place.
*/
func TestSearcher_LookupFailureKeepsResults(t *testing.T) {
	lookup := newFakeLookup()
	lookup.results["good"] = titlesNamed("Good")
	lookup.errs["bad"] = errors.New("store unavailable")

	searcher := catalog.NewSearcher(context.Background(), lookup, testLogger(),
		catalog.WithQuiet(20*time.Millisecond))
	defer searcher.Close()

	searcher.Input("good")
	require.Eventually(t, func() bool {
		results, _, _ := searcher.Results()
		return len(results) == 1
	}, time.Second, 5*time.Millisecond)

	searcher.Input("bad")
	require.Eventually(t, func() bool { return lookup.callCount() == 2 }, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	results, visible, _ := searcher.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "Good", results[0].Title)
	assert.True(t, visible)
}

/*
TestSearcher_Submit verifies the explicit search action: a non-empty query
navigates and clears all local state; an empty query is a no-op.
*/
func TestSearcher_Submit(t *testing.T) {
	lookup := newFakeLookup()

	var navigated []string
	searcher := catalog.NewSearcher(context.Background(), lookup, testLogger(),
		catalog.WithQuiet(20*time.Millisecond),
		catalog.WithNavigate(func(q string) { navigated = append(navigated, q) }),
	)
	defer searcher.Close()

	// Empty input: no navigation.
	assert.False(t, searcher.Submit())
	assert.Empty(t, navigated)

	searcher.Input("  one piece  ")
	assert.True(t, searcher.Submit())
	require.Equal(t, []string{"one piece"}, navigated)

	assert.Empty(t, searcher.Query())
	results, visible, _ := searcher.Results()
	assert.Nil(t, results)
	assert.False(t, visible)

	// Submitting cancelled the pending debounce lookup.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, lookup.callCount())
}
