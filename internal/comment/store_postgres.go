// Copyright (c) 2026 AnFr. All rights reserved.

package comment

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ismail26477/an-fr/internal/catalog"
	"github.com/Ismail26477/an-fr/internal/platform/database/schema"
	"github.com/Ismail26477/an-fr/internal/platform/dberr"
	"github.com/Ismail26477/an-fr/pkg/uuidv7"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed comment store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// subjectColumn picks which foreign-key column carries the subject
// reference for a kind. The other column stays NULL, satisfying the
// exactly-one CHECK constraint.
func subjectColumn(kind catalog.Kind) string {
	if kind == catalog.KindMovie {
		return schema.SocialComment.MovieID
	}
	return schema.SocialComment.AnimeID
}

func (repository *PostgresRepository) ListBySubject(ctx context.Context, kind catalog.Kind, subjectID string) ([]*Comment, error) {
	t := schema.SocialComment
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		strings.Join(t.Columns(), ", "), t.Table, subjectColumn(kind), t.CreatedAt,
	)

	rows, err := repository.pool.Query(ctx, query, subjectID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

func (repository *PostgresRepository) Insert(ctx context.Context, comment *Comment) (*Comment, error) {
	t := schema.SocialComment
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)
		 RETURNING %s`,
		t.Table, t.ID, t.UserID, t.DisplayName, t.Body, subjectColumn(comment.Kind),
		strings.Join(t.Columns(), ", "),
	)

	stored, err := scanComment(repository.pool.QueryRow(ctx, query,
		uuidv7.New(), comment.UserID, comment.DisplayName, comment.Body, comment.SubjectID,
	))
	if err != nil {
		return nil, dberr.Wrap(err, "insert_comment")
	}
	return stored, nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, userID, commentID string) error {
	t := schema.SocialComment
	query := fmt.Sprintf(
		`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		t.Table, t.ID, t.UserID,
	)

	tag, err := repository.pool.Exec(ctx, query, commentID, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_comment")
	}
	return nil
}

func (repository *PostgresRepository) DeleteByID(ctx context.Context, commentID string) error {
	t := schema.SocialComment
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	tag, err := repository.pool.Exec(ctx, query, commentID)
	if err != nil {
		return dberr.Wrap(err, "moderate_comment")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "moderate_comment")
	}
	return nil
}

// scanComment hydrates one full comment row, deriving the kind from
// whichever subject column is set.
func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{}
	var animeID, movieID *string

	err := row.Scan(
		&comment.ID, &comment.UserID, &comment.DisplayName, &comment.Body,
		&animeID, &movieID, &comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if movieID != nil {
		comment.Kind = catalog.KindMovie
		comment.SubjectID = *movieID
	} else if animeID != nil {
		comment.Kind = catalog.KindAnime
		comment.SubjectID = *animeID
	}
	return comment, nil
}
