// Copyright (c) 2026 AnFr. All rights reserved.

package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ismail26477/an-fr/internal/catalog"
	"github.com/Ismail26477/an-fr/internal/platform/apperr"
)

// fakeRepository serves canned titles per kind and records search queries.
type fakeRepository struct {
	topRated    map[catalog.Kind][]*catalog.Title
	searchHits  map[string][]*catalog.Title
	searchCalls []string
	inserted    []*catalog.Title
	failSearch  bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		topRated:   make(map[catalog.Kind][]*catalog.Title),
		searchHits: make(map[string][]*catalog.Title),
	}
}

func (f *fakeRepository) GetByID(ctx context.Context, kind catalog.Kind, id string) (*catalog.Title, error) {
	return nil, apperr.NotFound("Title")
}

func (f *fakeRepository) GetBySlug(ctx context.Context, kind catalog.Kind, slug string) (*catalog.Title, error) {
	return nil, apperr.NotFound("Title")
}

func (f *fakeRepository) List(ctx context.Context, kind catalog.Kind, filter catalog.Filter, limit, offset int) ([]*catalog.Title, int, error) {
	return []*catalog.Title{}, 0, nil
}

func (f *fakeRepository) Search(ctx context.Context, kind catalog.Kind, query string, limit int) ([]*catalog.Title, error) {
	f.searchCalls = append(f.searchCalls, query)
	if f.failSearch {
		return nil, errors.New("connection refused")
	}
	return f.searchHits[query], nil
}

func (f *fakeRepository) TopRated(ctx context.Context, kind catalog.Kind, limit int) ([]*catalog.Title, error) {
	return f.topRated[kind], nil
}

func (f *fakeRepository) Insert(ctx context.Context, kind catalog.Kind, title *catalog.Title) error {
	f.inserted = append(f.inserted, title)
	return nil
}

func (f *fakeRepository) SetArchived(ctx context.Context, kind catalog.Kind, id string, archived bool) error {
	return nil
}

// fakeCache is an in-memory SearchCache with a switch to simulate outages.
type fakeCache struct {
	entries map[string][]*catalog.Title
	fail    bool
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]*catalog.Title)}
}

func (c *fakeCache) Get(ctx context.Context, kind catalog.Kind, query string) ([]*catalog.Title, bool, error) {
	if c.fail {
		return nil, false, errors.New("redis: connection refused")
	}
	titles, hit := c.entries[string(kind)+":"+query]
	return titles, hit, nil
}

func (c *fakeCache) Set(ctx context.Context, kind catalog.Kind, query string, titles []*catalog.Title, ttl time.Duration) error {
	if c.fail {
		return errors.New("redis: connection refused")
	}
	c.sets++
	c.entries[string(kind)+":"+query] = titles
	return nil
}

func TestService_FeaturedConcatenatesKinds(t *testing.T) {
	repo := newFakeRepository()
	repo.topRated[catalog.KindAnime] = titlesNamed("Frieren", "Vinland Saga")
	repo.topRated[catalog.KindMovie] = titlesNamed("Your Name")

	service := catalog.NewService(repo, nil, testLogger())

	featured, err := service.Featured(context.Background())
	require.NoError(t, err)

	// Anime first, then movies. No interleaving by rating.
	require.Len(t, featured, 3)
	assert.Equal(t, "Frieren", featured[0].Title)
	assert.Equal(t, "Vinland Saga", featured[1].Title)
	assert.Equal(t, "Your Name", featured[2].Title)
}

func TestService_SearchTrimsAndSkipsBlank(t *testing.T) {
	repo := newFakeRepository()
	service := catalog.NewService(repo, nil, testLogger())

	results, err := service.Search(context.Background(), catalog.KindAnime, "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, repo.searchCalls, "blank query must not reach the store")

	repo.searchHits["naruto"] = titlesNamed("Naruto")
	results, err = service.Search(context.Background(), catalog.KindAnime, "  naruto  ")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"naruto"}, repo.searchCalls)
}

func TestService_SearchUsesCache(t *testing.T) {
	repo := newFakeRepository()
	repo.searchHits["bleach"] = titlesNamed("Bleach")
	cache := newFakeCache()
	service := catalog.NewService(repo, cache, testLogger())

	// First lookup misses the cache and hits the store.
	_, err := service.Search(context.Background(), catalog.KindAnime, "bleach")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// Second lookup is served from the cache.
	results, err := service.Search(context.Background(), catalog.KindAnime, "bleach")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Len(t, repo.searchCalls, 1, "cache hit must not query the store")
}

func TestService_SearchSurvivesCacheOutage(t *testing.T) {
	repo := newFakeRepository()
	repo.searchHits["gto"] = titlesNamed("GTO")
	cache := newFakeCache()
	cache.fail = true
	service := catalog.NewService(repo, cache, testLogger())

	results, err := service.Search(context.Background(), catalog.KindAnime, "gto")
	require.NoError(t, err, "cache failures must not fail the search")
	require.Len(t, results, 1)
}

func TestService_CreateTitleGeneratesIdentity(t *testing.T) {
	repo := newFakeRepository()
	service := catalog.NewService(repo, nil, testLogger())

	title := &catalog.Title{Title: "Attack on Titan: Final Season"}
	require.NoError(t, service.CreateTitle(context.Background(), catalog.KindAnime, title))

	assert.NotEmpty(t, title.ID)
	assert.Equal(t, "attack-on-titan-final-season", title.Slug)
	assert.Equal(t, catalog.KindAnime, title.Kind)
	assert.False(t, title.CreatedAt.IsZero())
	require.Len(t, repo.inserted, 1)
}

func TestService_CreateTitleRejectsBlankTitle(t *testing.T) {
	repo := newFakeRepository()
	service := catalog.NewService(repo, nil, testLogger())

	err := service.CreateTitle(context.Background(), catalog.KindMovie, &catalog.Title{})
	require.Error(t, err)
	assert.Empty(t, repo.inserted)
}
