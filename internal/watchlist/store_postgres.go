// Copyright (c) 2026 AnFr. All rights reserved.

package watchlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ismail26477/an-fr/internal/catalog"
	"github.com/Ismail26477/an-fr/internal/platform/database/schema"
	"github.com/Ismail26477/an-fr/internal/platform/dberr"
	"github.com/Ismail26477/an-fr/pkg/pointer"
	"github.com/Ismail26477/an-fr/pkg/uuidv7"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed watchlist store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// tablesFor selects the kind-appropriate watchlist and catalogue tables.
func tablesFor(kind catalog.Kind) (schema.LibraryWatchlistTable, schema.CatalogTitleTable) {
	if kind == catalog.KindMovie {
		return schema.LibraryMovieWatchlist, schema.CatalogMovie
	}
	return schema.LibraryAnimeWatchlist, schema.CatalogAnime
}

/*
Add inserts a watchlist entry unless one already exists.

Description: The unique index on (userid, subjectid) plus ON CONFLICT DO
NOTHING makes the not-a-member half of the toggle a single atomic statement.
RowsAffected distinguishes "created" from "already present".
*/
func (repository *PostgresRepository) Add(ctx context.Context, kind catalog.Kind, userID, subjectID string, status Status) (bool, error) {
	w, _ := tablesFor(kind)
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (%s, %s) DO NOTHING`,
		w.Table, w.ID, w.UserID, w.SubjectID, w.Status, w.AddedAt,
		w.UserID, w.SubjectID,
	)

	tag, err := repository.pool.Exec(ctx, query, uuidv7.New(), userID, subjectID, status, time.Now().UTC())
	if err != nil {
		return false, dberr.Wrap(err, "add_watchlist_entry")
	}
	return tag.RowsAffected() == 1, nil
}

/*
Remove deletes the entry for (user, subject).

Description: DELETE ... RETURNING is the member half of the atomic toggle.
The user scope is part of the predicate so one user can never unlist
another user's entry for the same subject.
*/
func (repository *PostgresRepository) Remove(ctx context.Context, kind catalog.Kind, userID, subjectID string) (bool, error) {
	w, _ := tablesFor(kind)
	query := fmt.Sprintf(
		`DELETE FROM %s WHERE %s = $1 AND %s = $2 RETURNING %s`,
		w.Table, w.UserID, w.SubjectID, w.ID,
	)

	var deletedID string
	err := repository.pool.QueryRow(ctx, query, userID, subjectID).Scan(&deletedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, dberr.Wrap(err, "remove_watchlist_entry")
	}
	return true, nil
}

func (repository *PostgresRepository) Find(ctx context.Context, kind catalog.Kind, userID, subjectID string) (*Entry, error) {
	w, _ := tablesFor(kind)
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		strings.Join(w.Columns(), ", "), w.Table, w.UserID, w.SubjectID,
	)

	entry := &Entry{Kind: kind}
	err := repository.pool.QueryRow(ctx, query, userID, subjectID).Scan(
		&entry.ID, &entry.UserID, &entry.SubjectID, &entry.Status, &entry.AddedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_watchlist_entry")
	}
	return entry, nil
}

/*
ListWithSubjects returns one user's entries of a kind, newest first.

Description: LEFT JOIN keeps entries whose catalogue row has disappeared;
the nullable subject columns are scanned through pointers and only
materialized into a [catalog.Title] when the joined id is present.
*/
func (repository *PostgresRepository) ListWithSubjects(ctx context.Context, kind catalog.Kind, userID string) ([]JoinedEntry, error) {
	w, c := tablesFor(kind)
	query := fmt.Sprintf(
		`SELECT w.%s, w.%s, w.%s, w.%s, w.%s,
		        c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s
		 FROM %s w
		 LEFT JOIN %s c ON c.%s = w.%s
		 WHERE w.%s = $1
		 ORDER BY w.%s DESC`,
		w.ID, w.UserID, w.SubjectID, w.Status, w.AddedAt,
		c.ID, c.Title, c.Slug, c.ThumbnailURL, c.Rating, c.ReleaseYear, c.Status,
		w.Table,
		c.Table, c.ID, w.SubjectID,
		w.UserID,
		w.AddedAt,
	)

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_watchlist_entries")
	}
	defer rows.Close()

	joined := make([]JoinedEntry, 0)
	for rows.Next() {
		entry := Entry{Kind: kind}

		var subjectID, subjectTitle, subjectSlug, subjectThumb, subjectStatus *string
		var subjectRating *float64
		var subjectYear *int

		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.SubjectID, &entry.Status, &entry.AddedAt,
			&subjectID, &subjectTitle, &subjectSlug, &subjectThumb, &subjectRating, &subjectYear, &subjectStatus,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_watchlist_entry")
		}

		row := JoinedEntry{Entry: entry}
		if subjectID != nil {
			row.Subject = &catalog.Title{
				ID:           *subjectID,
				Kind:         kind,
				Title:        pointer.Val(subjectTitle),
				Slug:         pointer.Val(subjectSlug),
				ThumbnailURL: pointer.Val(subjectThumb),
				Rating:       subjectRating,
				ReleaseYear:  subjectYear,
				Status:       pointer.Val(subjectStatus),
			}
		}
		joined = append(joined, row)
	}

	return joined, nil
}

func (repository *PostgresRepository) DeleteByID(ctx context.Context, kind catalog.Kind, userID, entryID string) error {
	w, _ := tablesFor(kind)
	query := fmt.Sprintf(
		`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		w.Table, w.ID, w.UserID,
	)

	tag, err := repository.pool.Exec(ctx, query, entryID, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_watchlist_entry")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_watchlist_entry")
	}
	return nil
}

func (repository *PostgresRepository) UpdateStatus(ctx context.Context, kind catalog.Kind, userID, entryID string, status Status) error {
	w, _ := tablesFor(kind)
	query := fmt.Sprintf(
		`UPDATE %s SET %s = $1 WHERE %s = $2 AND %s = $3`,
		w.Table, w.Status, w.ID, w.UserID,
	)

	tag, err := repository.pool.Exec(ctx, query, status, entryID, userID)
	if err != nil {
		return dberr.Wrap(err, "update_watchlist_status")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_watchlist_status")
	}
	return nil
}
