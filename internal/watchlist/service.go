// Copyright (c) 2026 AnFr. All rights reserved.

package watchlist

import (
	"context"
	"log/slog"

	"github.com/Ismail26477/an-fr/internal/catalog"
	"github.com/Ismail26477/an-fr/internal/platform/apperr"
	"github.com/Ismail26477/an-fr/pkg/slice"
)

// Membership is the read-side answer for one (user, subject) pair.
type Membership struct {
	Member bool   `json:"member"`
	Status Status `json:"status"`
}

// Service implements watchlist use cases on top of a [Repository].
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a watchlist service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Membership reports whether the user tracks the subject and with what
// progress status. Absence of a row is the valid not-a-member state, never
// an error; it yields the default status.
func (service *Service) Membership(ctx context.Context, kind catalog.Kind, userID, subjectID string) (Membership, error) {
	entry, err := service.repo.Find(ctx, kind, userID, subjectID)
	if err != nil {
		// Absence is the expected zero-row signal for this lookup.
		if ae := apperr.As(err); ae != nil && ae.Code == "NOT_FOUND" {
			return Membership{Member: false, Status: DefaultStatus}, nil
		}
		return Membership{}, err
	}
	return Membership{Member: true, Status: entry.Status}, nil
}

/*
Toggle flips the user's membership for one subject and returns the new state.

Description: Tries the delete half first. When no row was there to delete,
it falls through to the conditional insert. Each half is a single atomic
statement, so a toggle racing another session resolves to one winner at the
store, and the loser's half simply affects zero rows.
*/
func (service *Service) Toggle(ctx context.Context, kind catalog.Kind, userID, subjectID string) (Membership, error) {
	removed, err := service.repo.Remove(ctx, kind, userID, subjectID)
	if err != nil {
		return Membership{}, err
	}
	if removed {
		return Membership{Member: false, Status: DefaultStatus}, nil
	}

	added, err := service.repo.Add(ctx, kind, userID, subjectID, DefaultStatus)
	if err != nil {
		return Membership{}, err
	}
	if !added {
		// A concurrent toggle inserted between our two halves. The subject
		// is on the list either way; report the state as it now stands.
		service.logger.Info("toggle_lost_insert_race",
			slog.String("user_id", userID),
			slog.String("subject_id", subjectID),
		)
	}
	return Membership{Member: true, Status: DefaultStatus}, nil
}

// Items returns one kind's normalized watchlist for a user, newest first.
func (service *Service) Items(ctx context.Context, kind catalog.Kind, userID string) ([]Item, error) {
	joined, err := service.repo.ListWithSubjects(ctx, kind, userID)
	if err != nil {
		return nil, err
	}
	return slice.Map(joined, NewItem), nil
}

// MergedItems returns the unified list: all anime entries newest first,
// followed by all movie entries newest first. The two halves are
// concatenated, not re-sorted globally, matching the site's merged view.
func (service *Service) MergedItems(ctx context.Context, userID string) ([]Item, error) {
	anime, err := service.Items(ctx, catalog.KindAnime, userID)
	if err != nil {
		return nil, err
	}

	movies, err := service.Items(ctx, catalog.KindMovie, userID)
	if err != nil {
		return nil, err
	}

	merged := make([]Item, 0, len(anime)+len(movies))
	merged = append(merged, anime...)
	merged = append(merged, movies...)
	return merged, nil
}

// RemoveEntry deletes one entry by id, scoped to its owner.
func (service *Service) RemoveEntry(ctx context.Context, kind catalog.Kind, userID, entryID string) error {
	return service.repo.DeleteByID(ctx, kind, userID, entryID)
}

// UpdateStatus changes the progress status of one owned entry.
func (service *Service) UpdateStatus(ctx context.Context, kind catalog.Kind, userID, entryID string, status Status) error {
	return service.repo.UpdateStatus(ctx, kind, userID, entryID, status)
}
