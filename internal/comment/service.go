// Copyright (c) 2026 AnFr. All rights reserved.

package comment

import (
	"context"
	"log/slog"

	"github.com/Ismail26477/an-fr/internal/catalog"
	"github.com/Ismail26477/an-fr/internal/platform/apperr"
	"github.com/Ismail26477/an-fr/internal/users/auth"
)

// Service implements comment use cases on top of a [Repository].
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a comment service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns a subject's comments, newest first. A store failure is
// logged and resolves to an empty list; a thread never errors a title page.
func (service *Service) List(ctx context.Context, kind catalog.Kind, subjectID string) []*Comment {
	comments, err := service.repo.ListBySubject(ctx, kind, subjectID)
	if err != nil {
		service.logger.Warn("comment_list_failed",
			slog.String("subject_id", subjectID),
			slog.Any("error", err),
		)
		return []*Comment{}
	}
	return comments
}

/*
Post persists a new comment.

Description: Preconditions (signed-in identity, subject, non-empty body)
are checked before any store call. The author's display name is resolved
once through the identity fallback chain and stored as a snapshot on the
row.
*/
func (service *Service) Post(ctx context.Context, identity *auth.Identity, kind catalog.Kind, subjectID, body string) (*Comment, error) {
	if identity == nil {
		return nil, apperr.Unauthorized("Sign in to post a comment")
	}
	if subjectID == "" {
		return nil, apperr.ValidationError("Subject is required", apperr.FieldError{
			Field:   "subject_id",
			Message: "Must not be empty",
		})
	}

	body, err := ValidateBody(body)
	if err != nil {
		return nil, err
	}

	return service.repo.Insert(ctx, &Comment{
		UserID:      identity.ID,
		DisplayName: identity.Label(),
		Body:        body,
		SubjectID:   subjectID,
		Kind:        kind,
	})
}

// Delete removes one comment owned by the caller.
func (service *Service) Delete(ctx context.Context, userID, commentID string) error {
	return service.repo.Delete(ctx, userID, commentID)
}

// DeleteAny removes a comment without an ownership check. Callers must
// gate this behind a moderator role.
func (service *Service) DeleteAny(ctx context.Context, commentID string) error {
	return service.repo.DeleteByID(ctx, commentID)
}
