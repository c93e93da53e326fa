// Copyright (c) 2026 AnFr. All rights reserved.

/*
Package comment implements per-title comment threads.

A comment belongs to exactly one subject, anime or movie, and carries a
snapshot of the author's display name taken at post time. Later profile
edits never rewrite posted comments.

Listing is deliberately lenient (comments are supplementary content, a
broken thread must never break the title page); posting and deleting fail
loudly through the notice channel.
*/
package comment

import (
	"strings"
	"time"

	"github.com/Ismail26477/an-fr/internal/catalog"
	"github.com/Ismail26477/an-fr/internal/platform/apperr"
)

// MaxBodyLength caps a single comment.
const MaxBodyLength = 2000

// Comment is one posted comment on a subject.
type Comment struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	// DisplayName is the author's name as resolved at post time.
	DisplayName string `json:"display_name"`

	Body      string       `json:"body"`
	SubjectID string       `json:"subject_id"`
	Kind      catalog.Kind `json:"kind"`
	CreatedAt time.Time    `json:"created_at"`
}

// ValidateBody normalizes and checks a comment body before posting.
func ValidateBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", apperr.ValidationError("Comment body is required", apperr.FieldError{
			Field:   "body",
			Message: "Must not be empty",
		})
	}
	if len(body) > MaxBodyLength {
		return "", apperr.ValidationError("Comment body is too long", apperr.FieldError{
			Field:   "body",
			Message: "Must be at most 2000 characters",
		})
	}
	return body, nil
}
