package catalog

import (
	"context"
	"time"
)

// Repository defines the data access contract for the title catalogue.
type Repository interface {
	// GetByID returns one title from the kind-appropriate collection.
	// Missing rows map to apperr.NotFound.
	GetByID(ctx context.Context, kind Kind, id string) (*Title, error)

	// GetBySlug returns one title by its URL slug.
	GetBySlug(ctx context.Context, kind Kind, slug string) (*Title, error)

	// List returns a filtered, paginated page of titles and the total count.
	// Archived titles are excluded unless the filter opts in.
	List(ctx context.Context, kind Kind, filter Filter, limit, offset int) ([]*Title, int, error)

	// Search performs a case-insensitive substring match on titles of the
	// given kind, restricted to non-archived entries, capped at limit.
	Search(ctx context.Context, kind Kind, query string, limit int) ([]*Title, error)

	// TopRated returns the highest-rated non-archived titles of a kind.
	TopRated(ctx context.Context, kind Kind, limit int) ([]*Title, error)

	// Insert persists a new title. Slug collisions map to apperr.Conflict.
	Insert(ctx context.Context, kind Kind, title *Title) error

	// SetArchived flips a title's archived flag. Archived titles disappear
	// from public listings and search but keep their ID and slug.
	SetArchived(ctx context.Context, kind Kind, id string, archived bool) error
}

// SearchCache is a volatile read-through cache for search lookups.
//
// A miss is (nil, false, nil); cache failures are never fatal to a search.
type SearchCache interface {
	Get(ctx context.Context, kind Kind, query string) ([]*Title, bool, error)
	Set(ctx context.Context, kind Kind, query string, titles []*Title, ttl time.Duration) error
}
