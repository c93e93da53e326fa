// Copyright (c) 2026 AnFr. All rights reserved.

package comment_test

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
	"github.com/Ismail26477/an-fr/internal/comment"
	"github.com/Ismail26477/an-fr/internal/platform/apperr"
	"github.com/Ismail26477/an-fr/internal/platform/notice"
	"github.com/Ismail26477/an-fr/internal/users/auth"
)

// fakeRepository is an in-memory [comment.Repository] with fault injection.
type fakeRepository struct {
	mu       sync.Mutex
	nextID   int
	comments []comment.Comment

	failList   error
	failInsert error

	insertCalls int
}

func (f *fakeRepository) ListBySubject(ctx context.Context, kind catalog.Kind, subjectID string) ([]*comment.Comment, error) {
	if f.failList != nil {
		return nil, f.failList
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := make([]*comment.Comment, 0)
	for i := range f.comments {
		c := f.comments[i]
		if c.Kind == kind && c.SubjectID == subjectID {
			matched = append(matched, &c)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return matched, nil
}

func (f *fakeRepository) Insert(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	f.mu.Lock()
	f.insertCalls++
	f.mu.Unlock()
	if f.failInsert != nil {
		return nil, f.failInsert
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	stored := *c
	stored.ID = fmt.Sprintf("comment-%d", f.nextID)
	stored.CreatedAt = time.Now().Add(time.Duration(f.nextID) * time.Millisecond)
	f.comments = append(f.comments, stored)
	return &stored, nil
}

func (f *fakeRepository) Delete(ctx context.Context, userID, commentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.comments {
		if c.ID == commentID && c.UserID == userID {
			f.comments = append(f.comments[:i], f.comments[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Comment")
}

func (f *fakeRepository) DeleteByID(ctx context.Context, commentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.comments {
		if c.ID == commentID {
			f.comments = append(f.comments[:i], f.comments[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Comment")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newThread(repo *fakeRepository, identity *auth.Identity) (*comment.Thread, *notice.Recorder) {
	service := comment.NewService(repo, testLogger())
	recorder := &notice.Recorder{}
	return comment.NewThread(service, recorder, testLogger(), identity, catalog.KindAnime, "subject-1"), recorder
}

/*
TestThread_PostAndReload verifies the happy path: posting clears the draft,
reloads the thread, and the new comment appears first.
*/
func TestThread_PostAndReload(t *testing.T) {
	repo := &fakeRepository{}
	identity := &auth.Identity{ID: "user-1", Email: "mika@anfr.app", DisplayName: "Mika"}
	thread, recorder := newThread(repo, identity)
	ctx := context.Background()

	thread.SetDraft("First!")
	require.True(t, thread.Post(ctx))
	assert.Empty(t, thread.Draft())

	thread.SetDraft("Second thoughts.")
	require.True(t, thread.Post(ctx))

	comments := thread.Comments()
	require.Len(t, comments, 2)
	assert.Equal(t, "Second thoughts.", comments[0].Body, "newest comment first")
	assert.Equal(t, "First!", comments[1].Body)
	assert.Equal(t, "Mika", comments[0].DisplayName)

	notices := recorder.Notices()
	require.Len(t, notices, 2)
	assert.Equal(t, notice.LevelSuccess, notices[0].Level)
}

/*
TestThread_PostBlankBody verifies the precondition: an empty or
whitespace-only draft is rejected before any store call and the draft is
kept for editing.
*/
func TestThread_PostBlankBody(t *testing.T) {
	repo := &fakeRepository{}
	identity := &auth.Identity{ID: "user-1", Email: "mika@anfr.app"}
	thread, recorder := newThread(repo, identity)

	thread.SetDraft("   \n\t ")
	assert.False(t, thread.Post(context.Background()))
	assert.Equal(t, 0, repo.insertCalls, "blank body must not reach the store")
	assert.Equal(t, "   \n\t ", thread.Draft())

	notices := recorder.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, notice.LevelError, notices[0].Level)
}

// TestThread_PostRequiresIdentity rejects signed-out posting with a notice.
func TestThread_PostRequiresIdentity(t *testing.T) {
	repo := &fakeRepository{}
	thread, recorder := newThread(repo, nil)

	thread.SetDraft("Hello")
	assert.False(t, thread.Post(context.Background()))
	assert.Equal(t, 0, repo.insertCalls)
	require.Len(t, recorder.Notices(), 1)
}

/*
TestThread_PostStoreFailure verifies retry ergonomics: a failed insert
keeps the draft populated and pushes an error notice.
*/
func TestThread_PostStoreFailure(t *testing.T) {
	repo := &fakeRepository{failInsert: errors.New("connection reset")}
	identity := &auth.Identity{ID: "user-1", Email: "mika@anfr.app"}
	thread, recorder := newThread(repo, identity)

	thread.SetDraft("Hold on to this")
	assert.False(t, thread.Post(context.Background()))
	assert.Equal(t, "Hold on to this", thread.Draft())

	notices := recorder.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, notice.LevelError, notices[0].Level)
}

/*
TestThread_DisplayNameChain verifies the snapshot fallback chain: full
name, then display name, then the email local-part, then "User".
*/
func TestThread_DisplayNameChain(t *testing.T) {
	testCases := []struct {
		name     string
		identity *auth.Identity
		want     string
	}{
		{
			name:     "full name wins",
			identity: &auth.Identity{ID: "u1", Email: "jane@x.com", FullName: "Jane Doe", DisplayName: "jdoe"},
			want:     "Jane Doe",
		},
		{
			name:     "display name next",
			identity: &auth.Identity{ID: "u1", Email: "jane@x.com", DisplayName: "jdoe"},
			want:     "jdoe",
		},
		{
			name:     "email local-part next",
			identity: &auth.Identity{ID: "u1", Email: "jane@x.com"},
			want:     "jane",
		},
		{
			name:     "literal fallback",
			identity: &auth.Identity{ID: "u1"},
			want:     "User",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			repo := &fakeRepository{}
			thread, _ := newThread(repo, testCase.identity)

			thread.SetDraft("A comment")
			require.True(t, thread.Post(context.Background()))

			comments := thread.Comments()
			require.Len(t, comments, 1)
			assert.Equal(t, testCase.want, comments[0].DisplayName)
		})
	}
}

/*
TestThread_ReloadDegradesSilently verifies the lenient read path: a store
failure during reload resolves to an empty list with no notice.
*/
func TestThread_ReloadDegradesSilently(t *testing.T) {
	repo := &fakeRepository{failList: errors.New("connection reset")}
	thread, recorder := newThread(repo, nil)

	thread.Reload(context.Background())
	assert.Empty(t, thread.Comments())
	assert.Empty(t, recorder.Notices())
}

/*
TestThread_Delete verifies owner-scoped deletion followed by a reload, and
that deleting someone else's comment fails without mutating the thread.
*/
func TestThread_Delete(t *testing.T) {
	repo := &fakeRepository{}
	mine := &auth.Identity{ID: "user-1", Email: "mika@anfr.app"}
	thread, recorder := newThread(repo, mine)
	ctx := context.Background()

	thread.SetDraft("Mine")
	require.True(t, thread.Post(ctx))
	mineID := thread.Comments()[0].ID

	// Another user's comment on the same subject.
	other, err := repo.Insert(ctx, &comment.Comment{
		UserID: "user-2", DisplayName: "Other", Body: "Theirs",
		SubjectID: "subject-1", Kind: catalog.KindAnime,
	})
	require.NoError(t, err)

	assert.False(t, thread.Delete(ctx, other.ID), "cannot delete another user's comment")

	require.True(t, thread.Delete(ctx, mineID))
	comments := thread.Comments()
	require.Len(t, comments, 1)
	assert.Equal(t, other.ID, comments[0].ID)

	assert.Equal(t, notice.LevelInfo, recorder.Last().Level)
}
