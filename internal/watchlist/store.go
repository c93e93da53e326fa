package watchlist

import (
	"context"

	"github.com/Ismail26477/an-fr/internal/catalog"
)

// Repository defines the data access contract for watchlist entries.
//
// Add and Remove are the atomic halves of the membership toggle: both are
// single-statement operations keyed by (user, subject) so that concurrent
// toggles from other sessions cannot interleave a check with a mutation.
type Repository interface {
	// Add inserts a new entry unless one already exists for (user, subject).
	// It reports whether a row was actually created.
	Add(ctx context.Context, kind catalog.Kind, userID, subjectID string, status Status) (bool, error)

	// Remove deletes the entry matching (user, subject) and reports whether
	// a row was actually deleted. The user scope is mandatory.
	Remove(ctx context.Context, kind catalog.Kind, userID, subjectID string) (bool, error)

	// Find returns the entry for (user, subject). Absence maps to
	// apperr.NotFound, which callers treat as valid not-a-member state.
	Find(ctx context.Context, kind catalog.Kind, userID, subjectID string) (*Entry, error)

	// ListWithSubjects returns all of one user's entries of a kind, newest
	// first, each join-expanded with its catalogue subject (nil when the
	// subject row is gone).
	ListWithSubjects(ctx context.Context, kind catalog.Kind, userID string) ([]JoinedEntry, error)

	// DeleteByID removes one entry by its id, scoped to the owning user.
	DeleteByID(ctx context.Context, kind catalog.Kind, userID, entryID string) error

	// UpdateStatus changes the progress status of one entry, scoped to the
	// owning user.
	UpdateStatus(ctx context.Context, kind catalog.Kind, userID, entryID string, status Status) error
}
