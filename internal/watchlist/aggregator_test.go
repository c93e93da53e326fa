// Copyright (c) 2026 AnFr. All rights reserved.

package watchlist_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ismail26477/an-fr/internal/catalog"
	"github.com/Ismail26477/an-fr/internal/watchlist"
)

func entryIDs(items []watchlist.Item) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.EntryID)
	}
	return ids
}

/*
TestAggregator_MergeOrder verifies the merged-view convention: each kind is
ordered newest first on its own, then anime is concatenated before movies.
The merge is never re-sorted globally, so a movie added later than every
anime still sorts after all of them.
*/
func TestAggregator_MergeOrder(t *testing.T) {
	repo := newFakeRepository()
	identity := testIdentity()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	animeOld := repo.seed(catalog.KindAnime, identity.ID, "a-old", watchlist.StatusWatching, base.Add(3*time.Hour))
	animeNew := repo.seed(catalog.KindAnime, identity.ID, "a-new", watchlist.StatusWatching, base.Add(5*time.Hour))
	movieOld := repo.seed(catalog.KindMovie, identity.ID, "m-old", watchlist.StatusCompleted, base.Add(1*time.Hour))
	movieNew := repo.seed(catalog.KindMovie, identity.ID, "m-new", watchlist.StatusCompleted, base.Add(10*time.Hour))

	service := watchlist.NewService(repo, testLogger())
	aggregator := watchlist.NewAggregator(service, testLogger(), identity)

	require.NoError(t, aggregator.Load(context.Background()))

	items, loading, err := aggregator.Items()
	require.NoError(t, err)
	assert.False(t, loading)
	assert.Equal(t,
		[]string{animeNew.ID, animeOld.ID, movieNew.ID, movieOld.ID},
		entryIDs(items),
	)
}

// TestAggregator_LoadWithoutIdentity yields an empty list and no store call.
func TestAggregator_LoadWithoutIdentity(t *testing.T) {
	repo := newFakeRepository()
	service := watchlist.NewService(repo, testLogger())
	aggregator := watchlist.NewAggregator(service, testLogger(), nil)

	require.NoError(t, aggregator.Load(context.Background()))

	items, loading, err := aggregator.Items()
	require.NoError(t, err)
	assert.False(t, loading)
	assert.Empty(t, items)
}

// TestAggregator_LoadScopedToIdentity includes only the caller's entries.
func TestAggregator_LoadScopedToIdentity(t *testing.T) {
	repo := newFakeRepository()
	identity := testIdentity()
	mine := repo.seed(catalog.KindAnime, identity.ID, "a-1", watchlist.StatusWatching, time.Now())
	repo.seed(catalog.KindAnime, "someone-else", "a-1", watchlist.StatusWatching, time.Now())

	service := watchlist.NewService(repo, testLogger())
	aggregator := watchlist.NewAggregator(service, testLogger(), identity)

	require.NoError(t, aggregator.Load(context.Background()))

	items, _, _ := aggregator.Items()
	assert.Equal(t, []string{mine.ID}, entryIDs(items))
}

/*
TestAggregator_LoadFailureNamesCollection verifies all-or-nothing loading:
when one kind's query fails the whole load fails, the error names the
failing collection, and no partial list is rendered.
*/
func TestAggregator_LoadFailureNamesCollection(t *testing.T) {
	repo := newFakeRepository()
	identity := testIdentity()
	repo.seed(catalog.KindAnime, identity.ID, "a-1", watchlist.StatusWatching, time.Now())
	repo.failList[catalog.KindMovie] = errors.New("connection reset")

	service := watchlist.NewService(repo, testLogger())
	aggregator := watchlist.NewAggregator(service, testLogger(), identity)

	err := aggregator.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "movie watchlist")

	items, loading, loadErr := aggregator.Items()
	assert.False(t, loading)
	assert.Error(t, loadErr)
	assert.Empty(t, items, "a failed load must not render a partial list")
}

/*
TestAggregator_Remove verifies removal by entry id: the matching entry
disappears from the cached list, all others stay, and a store failure
propagates without mutating local state.
*/
func TestAggregator_Remove(t *testing.T) {
	repo := newFakeRepository()
	identity := testIdentity()
	keep := repo.seed(catalog.KindAnime, identity.ID, "a-1", watchlist.StatusWatching, time.Now())
	drop := repo.seed(catalog.KindMovie, identity.ID, "m-1", watchlist.StatusCompleted, time.Now())

	service := watchlist.NewService(repo, testLogger())
	aggregator := watchlist.NewAggregator(service, testLogger(), identity)
	ctx := context.Background()
	require.NoError(t, aggregator.Load(ctx))

	require.NoError(t, aggregator.Remove(ctx, catalog.KindMovie, drop.ID))
	items, _, _ := aggregator.Items()
	assert.Equal(t, []string{keep.ID}, entryIDs(items))

	// Removing an unknown id fails and leaves the cached list untouched.
	require.Error(t, aggregator.Remove(ctx, catalog.KindAnime, "entry-missing"))
	items, _, _ = aggregator.Items()
	assert.Equal(t, []string{keep.ID}, entryIDs(items))
}

/*
TestFilter covers the two-dimension AND filter: the all/all wildcard is the
identity, and any narrower combination returns exactly the matching
subsequence in original order.
*/
func TestFilter(t *testing.T) {
	items := []watchlist.Item{
		{EntryID: "1", Kind: catalog.KindAnime, Progress: watchlist.StatusWatching},
		{EntryID: "2", Kind: catalog.KindAnime, Progress: watchlist.StatusCompleted},
		{EntryID: "3", Kind: catalog.KindMovie, Progress: watchlist.StatusWatching},
		{EntryID: "4", Kind: catalog.KindMovie, Progress: watchlist.StatusCompleted},
	}

	testCases := []struct {
		name   string
		kind   string
		status string
		want   []string
	}{
		{name: "all wildcard is identity", kind: "all", status: "all", want: []string{"1", "2", "3", "4"}},
		{name: "empty filters are identity", kind: "", status: "", want: []string{"1", "2", "3", "4"}},
		{name: "kind only", kind: "anime", status: "all", want: []string{"1", "2"}},
		{name: "status only", kind: "all", status: "watching", want: []string{"1", "3"}},
		{name: "kind and status", kind: "movie", status: "completed", want: []string{"4"}},
		{name: "no match", kind: "movie", status: "dropped", want: []string{}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got := watchlist.Filter(items, testCase.kind, testCase.status)
			assert.Equal(t, testCase.want, entryIDs(got))
		})
	}
}

/*
TestNewItem_Fallbacks verifies the mapping boundary: a missing joined
subject resolves into the kind-appropriate title fallback and the
placeholder image, and never panics on absent fields.
*/
func TestNewItem_Fallbacks(t *testing.T) {
	anime := watchlist.NewItem(watchlist.JoinedEntry{
		Entry: watchlist.Entry{ID: "e1", Kind: catalog.KindAnime, Status: watchlist.StatusWatching},
	})
	assert.Equal(t, "Unknown Anime", anime.Title)
	assert.Equal(t, "/placeholder.svg", anime.ThumbnailURL)

	movie := watchlist.NewItem(watchlist.JoinedEntry{
		Entry: watchlist.Entry{ID: "e2", Kind: catalog.KindMovie, Status: watchlist.StatusCompleted},
	})
	assert.Equal(t, "Unknown Movie", movie.Title)

	rating := 8.7
	joined := watchlist.NewItem(watchlist.JoinedEntry{
		Entry: watchlist.Entry{ID: "e3", Kind: catalog.KindAnime, Status: watchlist.StatusWatching},
		Subject: &catalog.Title{
			ID:     "s3",
			Title:  "Frieren",
			Rating: &rating,
		},
	})
	assert.Equal(t, "Frieren", joined.Title)
	assert.Equal(t, "/placeholder.svg", joined.ThumbnailURL, "empty thumbnail still falls back")
	require.NotNil(t, joined.Rating)
	assert.Equal(t, 8.7, *joined.Rating)
}
