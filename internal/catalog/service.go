package catalog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Ismail26477/an-fr/internal/platform/validate"
	"github.com/Ismail26477/an-fr/pkg/slug"
	"github.com/Ismail26477/an-fr/pkg/uuidv7"
)

// searchCacheTTL keeps dropdown lookups warm across keystrokes without
// serving stale rows for long.
const searchCacheTTL = 60 * time.Second

// Service implements catalogue browsing use cases.
type Service struct {
	repo   Repository
	cache  SearchCache
	logger *slog.Logger
}

// NewService constructs a catalogue service. The cache may be nil, in which
// case every search goes to the repository.
func NewService(repo Repository, cache SearchCache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (service *Service) GetTitle(ctx context.Context, kind Kind, id string) (*Title, error) {
	return service.repo.GetByID(ctx, kind, id)
}

func (service *Service) GetTitleBySlug(ctx context.Context, kind Kind, slug string) (*Title, error) {
	return service.repo.GetBySlug(ctx, kind, slug)
}

// ListTitles returns one page of the catalogue plus the total match count.
func (service *Service) ListTitles(ctx context.Context, kind Kind, filter Filter, limit, offset int) ([]*Title, int, error) {
	return service.repo.List(ctx, kind, filter, limit, offset)
}

// Featured returns the home hero rotation: the top-rated anime followed by
// the top-rated movies. Kinds are concatenated, not interleaved, matching
// the merged-view convention used across the site.
func (service *Service) Featured(ctx context.Context) ([]*Title, error) {
	anime, err := service.repo.TopRated(ctx, KindAnime, FeaturedPerKind)
	if err != nil {
		return nil, err
	}

	movies, err := service.repo.TopRated(ctx, KindMovie, FeaturedPerKind)
	if err != nil {
		return nil, err
	}

	combined := make([]*Title, 0, len(anime)+len(movies))
	combined = append(combined, anime...)
	combined = append(combined, movies...)
	return combined, nil
}

// Search resolves a dropdown lookup: trimmed substring match against
// non-archived titles, capped at [SearchResultLimit].
//
// Results are cached briefly in Redis; cache failures degrade to a direct
// repository query with a log line, never an error.
func (service *Service) Search(ctx context.Context, kind Kind, query string) ([]*Title, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*Title{}, nil
	}

	if service.cache != nil {
		titles, hit, err := service.cache.Get(ctx, kind, query)
		if err != nil {
			service.logger.Warn("search_cache_get_failed", slog.Any("error", err))
		} else if hit {
			return titles, nil
		}
	}

	titles, err := service.repo.Search(ctx, kind, query, SearchResultLimit)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		if err := service.cache.Set(ctx, kind, query, titles, searchCacheTTL); err != nil {
			service.logger.Warn("search_cache_set_failed", slog.Any("error", err))
		}
	}

	return titles, nil
}

// # Content Management

/*
CreateTitle enrolls a new entry into the catalogue.

Description: Generates the ID and URL slug when absent, stamps timestamps,
and validates business attributes before persisting. Slug collisions
surface from the repository as a conflict.

Parameters:
  - ctx: context.Context
  - kind: Which collection receives the entry.
  - title: The entry to persist. Mutated in place with generated fields.
*/
func (service *Service) CreateTitle(ctx context.Context, kind Kind, title *Title) error {
	validator := &validate.Validator{}
	validator.Required("title", title.Title).MaxLen("title", title.Title, 500)

	if title.ID == "" {
		title.ID = uuidv7.New()
	}
	if title.Slug == "" {
		title.Slug = slug.From(title.Title)
	}
	validator.Slug("slug", title.Slug)

	if err := validator.Err(); err != nil {
		return err
	}

	title.Kind = kind
	now := time.Now().UTC()
	title.CreatedAt = now
	title.UpdatedAt = now

	return service.repo.Insert(ctx, kind, title)
}

// ArchiveTitle hides or restores a catalogue entry. Archived entries stay
// resolvable by ID so existing watchlist rows keep their join target.
func (service *Service) ArchiveTitle(ctx context.Context, kind Kind, id string, archived bool) error {
	return service.repo.SetArchived(ctx, kind, id, archived)
}
