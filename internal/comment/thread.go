// Copyright (c) 2026 AnFr. All rights reserved.

package comment

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Ismail26477/an-fr/internal/catalog"
	"github.com/Ismail26477/an-fr/internal/platform/notice"
	"github.com/Ismail26477/an-fr/internal/users/auth"
)

// Thread holds the comment view state of one subject: the cached comment
// list and the visitor's draft input. It backs the comment section of a
// title page.
//
// The cached list is a snapshot of the store, rebuilt by [Thread.Reload]
// and after every successful mutation.
type Thread struct {
	service  *Service
	notifier notice.Notifier
	logger   *slog.Logger

	identity  *auth.Identity
	kind      catalog.Kind
	subjectID string

	mu       sync.Mutex
	comments []*Comment
	draft    string
}

// NewThread constructs a thread bound to one subject. A nil identity is
// valid: the visitor can read but not post.
func NewThread(service *Service, notifier notice.Notifier, logger *slog.Logger, identity *auth.Identity, kind catalog.Kind, subjectID string) *Thread {
	return &Thread{
		service:   service,
		notifier:  notifier,
		logger:    logger,
		identity:  identity,
		kind:      kind,
		subjectID: subjectID,
	}
}

// Comments reports the cached comment snapshot, newest first.
func (thread *Thread) Comments() []*Comment {
	thread.mu.Lock()
	defer thread.mu.Unlock()
	out := make([]*Comment, len(thread.comments))
	copy(out, thread.comments)
	return out
}

// Draft reports the current input value.
func (thread *Thread) Draft() string {
	thread.mu.Lock()
	defer thread.mu.Unlock()
	return thread.draft
}

// SetDraft updates the input value as the visitor types.
func (thread *Thread) SetDraft(text string) {
	thread.mu.Lock()
	defer thread.mu.Unlock()
	thread.draft = text
}

// Reload rebuilds the cached list from the store. Failures inside the
// service resolve to an empty list, so reload itself never fails.
func (thread *Thread) Reload(ctx context.Context) {
	comments := thread.service.List(ctx, thread.kind, thread.subjectID)

	thread.mu.Lock()
	defer thread.mu.Unlock()
	thread.comments = comments
}

/*
Post submits the current draft.

Description: On success the draft is cleared, the list reloaded and a
success notice pushed. On any failure, precondition or store, the draft is
left populated so the visitor can retry, and an error notice is pushed.
*/
func (thread *Thread) Post(ctx context.Context) bool {
	thread.mu.Lock()
	draft := thread.draft
	thread.mu.Unlock()

	_, err := thread.service.Post(ctx, thread.identity, thread.kind, thread.subjectID, draft)
	if err != nil {
		thread.logger.Warn("comment_post_failed",
			slog.String("subject_id", thread.subjectID),
			slog.Any("error", err),
		)
		thread.notifier.Push(notice.Error("Could not post comment", err.Error()))
		return false
	}

	thread.mu.Lock()
	thread.draft = ""
	thread.mu.Unlock()

	thread.Reload(ctx)
	thread.notifier.Push(notice.Success("Comment posted", "Your comment is now visible."))
	return true
}

// Delete removes one of the visitor's own comments and reloads the list on
// success. Failures push an error notice and leave the list untouched.
func (thread *Thread) Delete(ctx context.Context, commentID string) bool {
	if thread.identity == nil {
		thread.notifier.Push(notice.Error("Sign in required", "Sign in to manage your comments."))
		return false
	}

	if err := thread.service.Delete(ctx, thread.identity.ID, commentID); err != nil {
		thread.logger.Warn("comment_delete_failed",
			slog.String("comment_id", commentID),
			slog.Any("error", err),
		)
		thread.notifier.Push(notice.Error("Could not delete comment", "Please try again."))
		return false
	}

	thread.Reload(ctx)
	thread.notifier.Push(notice.Info("Comment deleted", "The comment has been removed."))
	return true
}
