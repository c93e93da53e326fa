// Copyright (c) 2026 AnFr. All rights reserved.

package watchlist_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ismail26477/an-fr/internal/catalog"
	"github.com/Ismail26477/an-fr/internal/platform/apperr"
	"github.com/Ismail26477/an-fr/internal/platform/notice"
	"github.com/Ismail26477/an-fr/internal/users/auth"
	"github.com/Ismail26477/an-fr/internal/watchlist"
)

// fakeRepository is an in-memory [watchlist.Repository] with per-operation
// fault injection. Entries are seeded directly or created through Add.
type fakeRepository struct {
	mu       sync.Mutex
	nextID   int
	entries  map[catalog.Kind][]watchlist.Entry
	subjects map[string]*catalog.Title

	failFind   error
	failAdd    error
	failRemove error
	failList   map[catalog.Kind]error

	findCalls int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		entries:  make(map[catalog.Kind][]watchlist.Entry),
		subjects: make(map[string]*catalog.Title),
		failList: make(map[catalog.Kind]error),
	}
}

func (f *fakeRepository) seed(kind catalog.Kind, userID, subjectID string, status watchlist.Status, addedAt time.Time) watchlist.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	entry := watchlist.Entry{
		ID:        fmt.Sprintf("entry-%d", f.nextID),
		UserID:    userID,
		SubjectID: subjectID,
		Kind:      kind,
		Status:    status,
		AddedAt:   addedAt,
	}
	f.entries[kind] = append(f.entries[kind], entry)
	return entry
}

func (f *fakeRepository) Add(ctx context.Context, kind catalog.Kind, userID, subjectID string, status watchlist.Status) (bool, error) {
	if f.failAdd != nil {
		return false, f.failAdd
	}
	f.mu.Lock()
	for _, entry := range f.entries[kind] {
		if entry.UserID == userID && entry.SubjectID == subjectID {
			f.mu.Unlock()
			return false, nil
		}
	}
	f.mu.Unlock()
	f.seed(kind, userID, subjectID, status, time.Now())
	return true, nil
}

func (f *fakeRepository) Remove(ctx context.Context, kind catalog.Kind, userID, subjectID string) (bool, error) {
	if f.failRemove != nil {
		return false, f.failRemove
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, entry := range f.entries[kind] {
		if entry.UserID == userID && entry.SubjectID == subjectID {
			f.entries[kind] = append(f.entries[kind][:i], f.entries[kind][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) Find(ctx context.Context, kind catalog.Kind, userID, subjectID string) (*watchlist.Entry, error) {
	f.mu.Lock()
	f.findCalls++
	f.mu.Unlock()
	if f.failFind != nil {
		return nil, f.failFind
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, entry := range f.entries[kind] {
		if entry.UserID == userID && entry.SubjectID == subjectID {
			found := entry
			return &found, nil
		}
	}
	return nil, apperr.NotFound("Watchlist entry")
}

func (f *fakeRepository) ListWithSubjects(ctx context.Context, kind catalog.Kind, userID string) ([]watchlist.JoinedEntry, error) {
	if err := f.failList[kind]; err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	owned := make([]watchlist.Entry, 0)
	for _, entry := range f.entries[kind] {
		if entry.UserID == userID {
			owned = append(owned, entry)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].AddedAt.After(owned[j].AddedAt) })

	joined := make([]watchlist.JoinedEntry, 0, len(owned))
	for _, entry := range owned {
		joined = append(joined, watchlist.JoinedEntry{
			Entry:   entry,
			Subject: f.subjects[entry.SubjectID],
		})
	}
	return joined, nil
}

func (f *fakeRepository) DeleteByID(ctx context.Context, kind catalog.Kind, userID, entryID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, entry := range f.entries[kind] {
		if entry.ID == entryID && entry.UserID == userID {
			f.entries[kind] = append(f.entries[kind][:i], f.entries[kind][i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Watchlist entry")
}

func (f *fakeRepository) UpdateStatus(ctx context.Context, kind catalog.Kind, userID, entryID string, status watchlist.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, entry := range f.entries[kind] {
		if entry.ID == entryID && entry.UserID == userID {
			f.entries[kind][i].Status = status
			return nil
		}
	}
	return apperr.NotFound("Watchlist entry")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testIdentity() *auth.Identity {
	return &auth.Identity{ID: "user-1", Email: "mika@anfr.app", DisplayName: "Mika"}
}

/*
TestTracker_ToggleRoundTrip verifies the double-toggle contract: from a
clean state, one toggle lands on member with the default status, a second
returns to not-a-member, and a refresh after each toggle reports exactly
the state the toggle set.
*/
func TestTracker_ToggleRoundTrip(t *testing.T) {
	repo := newFakeRepository()
	service := watchlist.NewService(repo, testLogger())
	recorder := &notice.Recorder{}
	tracker := watchlist.NewTracker(service, recorder, testLogger(), testIdentity(), catalog.KindAnime, "subject-1")
	ctx := context.Background()

	tracker.Refresh(ctx)
	assert.False(t, tracker.State().Member)

	require.True(t, tracker.Toggle(ctx))
	state := tracker.State()
	assert.True(t, state.Member)
	assert.Equal(t, watchlist.StatusPlanToWatch, state.Status)

	tracker.Refresh(ctx)
	assert.Equal(t, state, tracker.State(), "refresh must agree with the toggle it follows")

	require.True(t, tracker.Toggle(ctx))
	assert.False(t, tracker.State().Member)

	tracker.Refresh(ctx)
	assert.False(t, tracker.State().Member)

	notices := recorder.Notices()
	require.Len(t, notices, 2)
	assert.Equal(t, notice.LevelSuccess, notices[0].Level)
	assert.Equal(t, notice.LevelInfo, notices[1].Level)
}

/*
TestTracker_ToggleRequiresIdentity verifies the fail-fast precondition: a
signed-out toggle pushes an error notice and never reaches the store.
*/
func TestTracker_ToggleRequiresIdentity(t *testing.T) {
	repo := newFakeRepository()
	service := watchlist.NewService(repo, testLogger())
	recorder := &notice.Recorder{}
	tracker := watchlist.NewTracker(service, recorder, testLogger(), nil, catalog.KindAnime, "subject-1")

	assert.False(t, tracker.Toggle(context.Background()))
	assert.Empty(t, repo.entries[catalog.KindAnime])

	notices := recorder.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, notice.LevelError, notices[0].Level)
}

/*
TestTracker_ToggleStoreFailure verifies that a failed mutation leaves the
cached state untouched and surfaces an error notice.
*/
func TestTracker_ToggleStoreFailure(t *testing.T) {
	repo := newFakeRepository()
	repo.failRemove = errors.New("connection reset")
	service := watchlist.NewService(repo, testLogger())
	recorder := &notice.Recorder{}
	tracker := watchlist.NewTracker(service, recorder, testLogger(), testIdentity(), catalog.KindMovie, "subject-9")

	assert.False(t, tracker.Toggle(context.Background()))
	assert.False(t, tracker.State().Member)

	notices := recorder.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, notice.LevelError, notices[0].Level)
}

/*
TestTracker_RefreshDegradesSilently verifies read-path leniency: a store
failure during refresh falls back to the not-a-member default and pushes
no notice.
*/
func TestTracker_RefreshDegradesSilently(t *testing.T) {
	repo := newFakeRepository()
	identity := testIdentity()
	repo.seed(catalog.KindAnime, identity.ID, "subject-1", watchlist.StatusWatching, time.Now())

	service := watchlist.NewService(repo, testLogger())
	recorder := &notice.Recorder{}
	tracker := watchlist.NewTracker(service, recorder, testLogger(), identity, catalog.KindAnime, "subject-1")
	ctx := context.Background()

	tracker.Refresh(ctx)
	require.True(t, tracker.State().Member)
	assert.Equal(t, watchlist.StatusWatching, tracker.State().Status)

	repo.failFind = errors.New("connection reset")
	tracker.Refresh(ctx)
	assert.False(t, tracker.State().Member, "failed refresh falls back to not-a-member")
	assert.Equal(t, watchlist.DefaultStatus, tracker.State().Status)
	assert.Empty(t, recorder.Notices())

	// A later successful refresh restores the real membership.
	repo.failFind = nil
	tracker.Refresh(ctx)
	assert.True(t, tracker.State().Member)
	assert.Equal(t, watchlist.StatusWatching, tracker.State().Status)
}

// TestTracker_RefreshWithoutSubject pins the unbound tracker to not-a-member
// without any store round-trip.
func TestTracker_RefreshWithoutSubject(t *testing.T) {
	repo := newFakeRepository()
	service := watchlist.NewService(repo, testLogger())
	tracker := watchlist.NewTracker(service, &notice.Recorder{}, testLogger(), testIdentity(), catalog.KindAnime, "")

	tracker.Refresh(context.Background())
	assert.False(t, tracker.State().Member)
	assert.Equal(t, 0, repo.findCalls)
}
