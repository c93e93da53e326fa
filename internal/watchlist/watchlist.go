// Copyright (c) 2026 AnFr. All rights reserved.

/*
Package watchlist implements the per-user "my list" feature.

Each user owns two independent watchlist collections, one per catalogue
kind, joined against the catalogue for display. The package exposes:

  - Entry / JoinedEntry / Item: the persisted row, its join-expanded form,
    and the normalized display shape.
  - Repository: store contract with atomic membership mutations.
  - Service: use-case orchestration shared by components and HTTP.
  - Tracker: single-subject membership state with an idempotent toggle.
  - Aggregator: the merged two-kind list view.
*/
package watchlist

import (
	"time"

	"github.com/Ismail26477/an-fr/internal/catalog"
	"github.com/Ismail26477/an-fr/internal/platform/apperr"
)

// # Progress Status

// Status is the per-entry viewing progress.
type Status string

const (
	StatusPlanToWatch Status = "plan-to-watch"
	StatusWatching    Status = "watching"
	StatusCompleted   Status = "completed"
	StatusDropped     Status = "dropped"
)

// DefaultStatus is assigned when an entry is created by a toggle.
const DefaultStatus = StatusPlanToWatch

// ParseStatus validates a status string from request input.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPlanToWatch, StatusWatching, StatusCompleted, StatusDropped:
		return Status(s), nil
	default:
		return "", apperr.ValidationError("Unknown watchlist status", apperr.FieldError{
			Field:   "status",
			Message: "Must be one of: plan-to-watch, watching, completed, dropped",
		})
	}
}

// # Domain Entities

// Entry is one persisted watchlist row: a (user, subject) join record.
type Entry struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	SubjectID string       `json:"subject_id"`
	Kind      catalog.Kind `json:"kind"`
	Status    Status       `json:"status"`
	AddedAt   time.Time    `json:"added_at"`
}

// JoinedEntry pairs an entry with its join-expanded subject.
//
// Subject is nil when the catalogue row has been removed out from under the
// entry; the mapping boundary ([Item] construction) is the only place
// allowed to resolve that absence into fallbacks.
type JoinedEntry struct {
	Entry   Entry
	Subject *catalog.Title
}

// Display fallbacks applied when a joined subject is missing.
const (
	fallbackAnimeTitle = "Unknown Anime"
	fallbackMovieTitle = "Unknown Movie"
	fallbackThumbnail  = "/placeholder.svg"
)

// Item is the normalized display shape of one merged-list row.
type Item struct {
	EntryID      string       `json:"entry_id"`
	Kind         catalog.Kind `json:"kind"`
	SubjectID    string       `json:"subject_id"`
	Title        string       `json:"title"`
	ThumbnailURL string       `json:"thumbnail_url"`
	Rating       *float64     `json:"rating,omitempty"`
	ReleaseYear  *int         `json:"release_year,omitempty"`

	// SubjectStatus is the work's lifecycle tag (airing, finished, ...).
	SubjectStatus string `json:"subject_status,omitempty"`
	// Progress is this user's viewing status for the entry.
	Progress Status    `json:"progress"`
	AddedAt  time.Time `json:"added_at"`
}

// NewItem maps one joined row to its display shape, resolving a missing
// subject into the kind-appropriate fallbacks.
func NewItem(joined JoinedEntry) Item {
	item := Item{
		EntryID:   joined.Entry.ID,
		Kind:      joined.Entry.Kind,
		SubjectID: joined.Entry.SubjectID,
		Progress:  joined.Entry.Status,
		AddedAt:   joined.Entry.AddedAt,
	}

	if joined.Subject == nil {
		if joined.Entry.Kind == catalog.KindMovie {
			item.Title = fallbackMovieTitle
		} else {
			item.Title = fallbackAnimeTitle
		}
		item.ThumbnailURL = fallbackThumbnail
		return item
	}

	item.Title = joined.Subject.Title
	item.ThumbnailURL = joined.Subject.ThumbnailURL
	if item.ThumbnailURL == "" {
		item.ThumbnailURL = fallbackThumbnail
	}
	item.Rating = joined.Subject.Rating
	item.ReleaseYear = joined.Subject.ReleaseYear
	item.SubjectStatus = joined.Subject.Status
	return item
}

// # Local Filtering

// FilterAll is the wildcard value for both filter dimensions.
const FilterAll = "all"

// Filter returns the subsequence of items matching both dimensions.
//
// Each dimension is an independent AND-condition: "all" (or empty) passes
// everything, any other value must match exactly. Input order is preserved
// and the input slice is never mutated.
func Filter(items []Item, kind string, status string) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if kind != "" && kind != FilterAll && string(item.Kind) != kind {
			continue
		}
		if status != "" && status != FilterAll && string(item.Progress) != status {
			continue
		}
		out = append(out, item)
	}
	return out
}
