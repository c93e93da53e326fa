// Copyright (c) 2026 AnFr. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ismail26477/an-fr/internal/platform/database/schema"
	"github.com/Ismail26477/an-fr/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed catalogue store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// tableFor selects the kind-appropriate catalogue table.
func tableFor(kind Kind) schema.CatalogTitleTable {
	if kind == KindMovie {
		return schema.CatalogMovie
	}
	return schema.CatalogAnime
}

// titleSelect is the shared column list for scanning a full [Title] row.
func titleSelect(t schema.CatalogTitleTable) string {
	return strings.Join(t.Columns(), ", ")
}

// scanTitle hydrates one row produced by [titleSelect].
func scanTitle(row pgx.Row, kind Kind) (*Title, error) {
	title := &Title{Kind: kind}
	err := row.Scan(
		&title.ID, &title.Title, &title.Slug, &title.Description, &title.Synopsis,
		&title.ThumbnailURL, &title.Rating, &title.ReleaseYear, &title.Status,
		&title.IsArchived, &title.CreatedAt, &title.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return title, nil
}

func (repository *PostgresRepository) GetByID(ctx context.Context, kind Kind, id string) (*Title, error) {
	t := tableFor(kind)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, titleSelect(t), t.Table, t.ID)

	title, err := scanTitle(repository.pool.QueryRow(ctx, query, id), kind)
	if err != nil {
		return nil, dberr.Wrap(err, "get_title_by_id")
	}
	return title, nil
}

func (repository *PostgresRepository) GetBySlug(ctx context.Context, kind Kind, slug string) (*Title, error) {
	t := tableFor(kind)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, titleSelect(t), t.Table, t.Slug)

	title, err := scanTitle(repository.pool.QueryRow(ctx, query, slug), kind)
	if err != nil {
		return nil, dberr.Wrap(err, "get_title_by_slug")
	}
	return title, nil
}

/*
List returns a filtered, paginated slice of titles and the total count.

Description: Uses COUNT(*) OVER() to retrieve the total match count without
a second round-trip, and ILIKE for case-insensitive substring filtering.
*/
func (repository *PostgresRepository) List(ctx context.Context, kind Kind, filter Filter, limit, offset int) ([]*Title, int, error) {
	t := tableFor(kind)

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(
		`SELECT %s, COUNT(*) OVER() AS total_count FROM %s WHERE TRUE`,
		titleSelect(t), t.Table,
	))

	if !filter.IncludeArchived {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = FALSE", t.IsArchived))
	}

	if strings.TrimSpace(filter.Search) != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s ILIKE $%d", t.Title, argID))
		args = append(args, "%"+strings.TrimSpace(filter.Search)+"%")
		argID++
	}

	if filter.Year != 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", t.ReleaseYear, argID))
		args = append(args, filter.Year)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d", t.CreatedAt, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	titles := make([]*Title, 0)
	total := 0

	for rows.Next() {
		title := &Title{Kind: kind}
		err := rows.Scan(
			&title.ID, &title.Title, &title.Slug, &title.Description, &title.Synopsis,
			&title.ThumbnailURL, &title.Rating, &title.ReleaseYear, &title.Status,
			&title.IsArchived, &title.CreatedAt, &title.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_title")
		}
		titles = append(titles, title)
	}

	return titles, total, nil
}

func (repository *PostgresRepository) Search(ctx context.Context, kind Kind, query string, limit int) ([]*Title, error) {
	t := tableFor(kind)
	sql := fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s ILIKE $1 AND %s = FALSE ORDER BY %s ASC LIMIT $2`,
		titleSelect(t), t.Table, t.Title, t.IsArchived, t.Title,
	)

	rows, err := repository.pool.Query(ctx, sql, "%"+query+"%", limit)
	if err != nil {
		return nil, dberr.Wrap(err, "search_titles")
	}
	defer rows.Close()

	return collectTitles(rows, kind)
}

func (repository *PostgresRepository) TopRated(ctx context.Context, kind Kind, limit int) ([]*Title, error) {
	t := tableFor(kind)
	sql := fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s = FALSE ORDER BY %s DESC NULLS LAST LIMIT $1`,
		titleSelect(t), t.Table, t.IsArchived, t.Rating,
	)

	rows, err := repository.pool.Query(ctx, sql, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "top_rated_titles")
	}
	defer rows.Close()

	return collectTitles(rows, kind)
}

// collectTitles drains a full-row result set into a slice.
func collectTitles(rows pgx.Rows, kind Kind) ([]*Title, error) {
	titles := make([]*Title, 0)
	for rows.Next() {
		title := &Title{Kind: kind}
		err := rows.Scan(
			&title.ID, &title.Title, &title.Slug, &title.Description, &title.Synopsis,
			&title.ThumbnailURL, &title.Rating, &title.ReleaseYear, &title.Status,
			&title.IsArchived, &title.CreatedAt, &title.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_title")
		}
		titles = append(titles, title)
	}
	return titles, nil
}

func (repository *PostgresRepository) Insert(ctx context.Context, kind Kind, title *Title) error {
	t := tableFor(kind)
	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.Table, titleSelect(t),
	)

	_, err := repository.pool.Exec(ctx, query,
		title.ID, title.Title, title.Slug, title.Description, title.Synopsis,
		title.ThumbnailURL, title.Rating, title.ReleaseYear, title.Status,
		title.IsArchived, title.CreatedAt, title.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_title")
	}
	return nil
}

func (repository *PostgresRepository) SetArchived(ctx context.Context, kind Kind, id string, archived bool) error {
	t := tableFor(kind)
	query := fmt.Sprintf(
		`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		t.Table, t.IsArchived, t.UpdatedAt, t.ID,
	)

	tag, err := repository.pool.Exec(ctx, query, id, archived, time.Now().UTC())
	if err != nil {
		return dberr.Wrap(err, "archive_title")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "archive_title")
	}
	return nil
}
