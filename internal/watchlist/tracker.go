// Copyright (c) 2026 AnFr. All rights reserved.

package watchlist

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Ismail26477/an-fr/internal/catalog"
	"github.com/Ismail26477/an-fr/internal/platform/notice"
	"github.com/Ismail26477/an-fr/internal/users/auth"
)

// Tracker holds the membership state of one (identity, subject) pair and
// offers an idempotent toggle. It backs the "add to list" control on a
// title page.
//
// Toggle calls on one tracker are serialized by an internal mutex, so a
// double-click resolves to two ordered toggles instead of a race. The state
// a tracker caches is a view of the store, rebuilt by [Tracker.Refresh];
// the store remains the source of truth.
type Tracker struct {
	service  *Service
	notifier notice.Notifier
	logger   *slog.Logger

	identity  *auth.Identity
	kind      catalog.Kind
	subjectID string

	mu     sync.Mutex
	member bool
	status Status
}

// NewTracker constructs a tracker bound to one identity and subject.
// A nil identity is valid and means the visitor is signed out.
func NewTracker(service *Service, notifier notice.Notifier, logger *slog.Logger, identity *auth.Identity, kind catalog.Kind, subjectID string) *Tracker {
	return &Tracker{
		service:   service,
		notifier:  notifier,
		logger:    logger,
		identity:  identity,
		kind:      kind,
		subjectID: subjectID,
		status:    DefaultStatus,
	}
}

// State reports the cached membership snapshot.
func (tracker *Tracker) State() Membership {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return Membership{Member: tracker.member, Status: tracker.status}
}

/*
Refresh rebuilds the cached state from the store.

Description: With no identity or no subject the state is pinned to
not-a-member without touching the store. A store failure is logged and
resets the state to the not-a-member default; reads degrade silently to
defaults, never to an error surface.
*/
func (tracker *Tracker) Refresh(ctx context.Context) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	if tracker.identity == nil || tracker.subjectID == "" {
		tracker.member = false
		tracker.status = DefaultStatus
		return
	}

	membership, err := tracker.service.Membership(ctx, tracker.kind, tracker.identity.ID, tracker.subjectID)
	if err != nil {
		tracker.logger.Warn("watchlist_refresh_failed",
			slog.String("subject_id", tracker.subjectID),
			slog.Any("error", err),
		)
		tracker.member = false
		tracker.status = DefaultStatus
		return
	}

	tracker.member = membership.Member
	tracker.status = membership.Status
}

/*
Toggle flips membership for the bound subject.

Description: Fails fast with a notice when signed out or unbound. The store
mutation is atomic and the whole round-trip holds the tracker mutex, so
rapid repeated toggles execute strictly one after another. On store failure
the cached state is left exactly as it was and an error notice is pushed;
nothing is retried.
*/
func (tracker *Tracker) Toggle(ctx context.Context) bool {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	if tracker.identity == nil {
		tracker.notifier.Push(notice.Error("Sign in required", "Sign in to manage your watchlist."))
		return false
	}
	if tracker.subjectID == "" {
		tracker.notifier.Push(notice.Error("Unavailable", "This title cannot be added right now."))
		return false
	}

	membership, err := tracker.service.Toggle(ctx, tracker.kind, tracker.identity.ID, tracker.subjectID)
	if err != nil {
		tracker.logger.Error("watchlist_toggle_failed",
			slog.String("subject_id", tracker.subjectID),
			slog.Any("error", err),
		)
		tracker.notifier.Push(notice.Error("Something went wrong", "Could not update your watchlist. Please try again."))
		return false
	}

	tracker.member = membership.Member
	tracker.status = membership.Status

	if membership.Member {
		tracker.notifier.Push(notice.Success("Added to watchlist", "We'll keep it under Plan to Watch."))
	} else {
		tracker.notifier.Push(notice.Info("Removed from watchlist", "The title is no longer on your list."))
	}
	return true
}
