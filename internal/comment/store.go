package comment

import (
	"context"

	"github.com/Ismail26477/an-fr/internal/catalog"
)

// Repository defines the data access contract for comments.
type Repository interface {
	// ListBySubject returns all comments on one subject, newest first.
	ListBySubject(ctx context.Context, kind catalog.Kind, subjectID string) ([]*Comment, error)

	// Insert persists a new comment and returns it as stored.
	Insert(ctx context.Context, comment *Comment) (*Comment, error)

	// Delete removes one comment by id, scoped to the owning user.
	Delete(ctx context.Context, userID, commentID string) error

	// DeleteByID removes one comment regardless of owner. Moderation only.
	DeleteByID(ctx context.Context, commentID string) error
}
