// Copyright (c) 2026 AnFr. All rights reserved.

/*
Package catalog implements the read side of the AnFr title catalogue.

Two parallel collections exist, anime and movies, sharing one row shape.
The package exposes browsing (listing, featured picks, slug lookup) and the
incremental search pipeline used by the navigation bar.

Architecture:

  - Title: the subject entity, owned and mutated by the ingest pipeline;
    this package only reads it.
  - Repository: abstract store contract (PostgreSQL implementation below).
  - Service: orchestration plus the short-TTL Redis search cache.
  - Searcher: the per-component, debounced keystroke-to-query state machine.
*/
package catalog

import (
	"time"

	"github.com/Ismail26477/an-fr/internal/platform/apperr"
)

// # Kinds

// Kind selects which of the two parallel collections an operation targets.
type Kind string

const (
	KindAnime Kind = "anime"
	KindMovie Kind = "movie"
)

// ParseKind validates a kind string from a URL segment.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindAnime, KindMovie:
		return Kind(s), nil
	default:
		return "", apperr.ValidationError("Unknown catalog kind", apperr.FieldError{
			Field:   "kind",
			Message: "Must be one of: anime, movie",
		})
	}
}

// # Domain Entities

// Title represents one anime or movie entry in the catalogue.
type Title struct {
	ID           string   `json:"id"`
	Kind         Kind     `json:"kind"`
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description"`
	Synopsis     string   `json:"synopsis,omitempty"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	ReleaseYear  *int     `json:"release_year,omitempty"`

	// Status is the lifecycle tag of the work itself (airing, finished, ...),
	// not a per-user progress status.
	Status     string    `json:"status,omitempty"`
	IsArchived bool      `json:"-"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// Filter narrows a catalogue listing.
type Filter struct {
	// Search is an optional case-insensitive substring match on the title.
	Search string
	// Year restricts to a single release year when non-zero.
	Year int
	// IncludeArchived exposes archived entries (admin surfaces only).
	IncludeArchived bool
}

// # Limits

const (
	// SearchResultLimit caps the incremental search dropdown.
	SearchResultLimit = 10

	// FeaturedPerKind is how many top-rated entries each kind contributes
	// to the home hero rotation.
	FeaturedPerKind = 3
)
