// Copyright (c) 2026 AnFr. All rights reserved.

package watchlist

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Ismail26477/an-fr/internal/catalog"
	"github.com/Ismail26477/an-fr/internal/users/auth"
)

// Aggregator builds and caches the unified two-kind watchlist view for one
// identity. It backs the "my list" page.
//
// Each Load is tagged with a generation number; a slow load that resolves
// after a newer one has started is discarded instead of overwriting fresher
// state.
type Aggregator struct {
	service *Service
	logger  *slog.Logger

	mu         sync.Mutex
	identity   *auth.Identity
	generation uint64
	items      []Item
	loading    bool
	loadErr    error
}

// NewAggregator constructs an aggregator for one identity. A nil identity
// is valid and yields an empty list.
func NewAggregator(service *Service, logger *slog.Logger, identity *auth.Identity) *Aggregator {
	return &Aggregator{
		service:  service,
		logger:   logger,
		identity: identity,
	}
}

// Items reports the current merged list snapshot together with the
// loading flag and the error of the most recent completed load.
func (aggregator *Aggregator) Items() ([]Item, bool, error) {
	aggregator.mu.Lock()
	defer aggregator.mu.Unlock()
	return aggregator.items, aggregator.loading, aggregator.loadErr
}

/*
Load rebuilds the merged list from the store.

Description: The two kind queries run concurrently and are independent,
but the result is all-or-nothing: if either collection fails the whole load
fails with an error naming the collection, and no partial list is rendered.
On success the anime page is concatenated before the movie page; each half
keeps its own newest-first order and the merge is never re-sorted globally.
*/
func (aggregator *Aggregator) Load(ctx context.Context) error {
	aggregator.mu.Lock()
	if aggregator.identity == nil {
		aggregator.items = []Item{}
		aggregator.loading = false
		aggregator.loadErr = nil
		aggregator.mu.Unlock()
		return nil
	}

	aggregator.generation++
	seq := aggregator.generation
	aggregator.loading = true
	userID := aggregator.identity.ID
	aggregator.mu.Unlock()

	var wg sync.WaitGroup
	var anime, movies []Item
	var animeErr, movieErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		anime, animeErr = aggregator.service.Items(ctx, catalog.KindAnime, userID)
	}()
	go func() {
		defer wg.Done()
		movies, movieErr = aggregator.service.Items(ctx, catalog.KindMovie, userID)
	}()
	wg.Wait()

	var loadErr error
	switch {
	case animeErr != nil:
		loadErr = fmt.Errorf("anime watchlist: %w", animeErr)
	case movieErr != nil:
		loadErr = fmt.Errorf("movie watchlist: %w", movieErr)
	}

	aggregator.mu.Lock()
	defer aggregator.mu.Unlock()

	// A newer load superseded this one while it was in flight.
	if seq != aggregator.generation {
		aggregator.logger.Debug("watchlist_load_superseded", slog.Uint64("generation", seq))
		return loadErr
	}

	aggregator.loading = false
	aggregator.loadErr = loadErr
	if loadErr != nil {
		aggregator.logger.Error("watchlist_load_failed", slog.Any("error", loadErr))
		return loadErr
	}

	merged := make([]Item, 0, len(anime)+len(movies))
	merged = append(merged, anime...)
	merged = append(merged, movies...)
	aggregator.items = merged
	return nil
}

/*
Remove deletes one entry and, on success, drops it from the cached list
by entry id. A store failure propagates to the caller and leaves the
cached list untouched.
*/
func (aggregator *Aggregator) Remove(ctx context.Context, kind catalog.Kind, entryID string) error {
	aggregator.mu.Lock()
	identity := aggregator.identity
	aggregator.mu.Unlock()

	if identity == nil {
		return fmt.Errorf("remove watchlist entry: not signed in")
	}

	if err := aggregator.service.RemoveEntry(ctx, kind, identity.ID, entryID); err != nil {
		return err
	}

	aggregator.mu.Lock()
	defer aggregator.mu.Unlock()

	kept := make([]Item, 0, len(aggregator.items))
	for _, item := range aggregator.items {
		if item.EntryID == entryID {
			continue
		}
		kept = append(kept, item)
	}
	aggregator.items = kept
	return nil
}
