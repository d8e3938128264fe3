package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/domains/author/model"
	"bookcatalog-backend/pkg/cache"
)

const authorCacheTTL = 10 * time.Minute

type PostgresRepository struct {
	db    *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(db *pgxpool.Pool, cache cache.Cache) *PostgresRepository {
	return &PostgresRepository{db: db, cache: cache}
}

func authorCacheKey(id int64) string {
	return fmt.Sprintf("author:%d", id)
}

func (r *PostgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
		INSERT INTO authors (name, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		RETURNING id, name, created_at, updated_at`

	created := &model.Author{}
	err := r.db.QueryRow(ctx, query, a.Name).Scan(
		&created.ID, &created.Name, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	r.invalidateReportCache(ctx)
	return created, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	cacheKey := authorCacheKey(id)
	cached := &model.Author{}
	if found, err := r.cache.Get(ctx, cacheKey, cached); err == nil && found {
		return cached, nil
	}

	query := `
		SELECT id, name, created_at, updated_at
		FROM authors
		WHERE id = $1`

	a := &model.Author{}
	err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, a, authorCacheTTL); err != nil {
		log.Warn().Err(err).Int64("author_id", id).Msg("failed to cache author")
	}

	return a, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	sortBy := "created_at"
	switch filter.SortBy {
	case "name", "created_at", "updated_at":
		sortBy = filter.SortBy
	}
	order := "DESC"
	if filter.Order == "asc" {
		order = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT id, name, created_at, updated_at
		FROM authors
		ORDER BY %s %s
		LIMIT $1 OFFSET $2`, sortBy, order)

	rows, err := r.db.Query(ctx, query, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]model.Author, 0)
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate authors: %w", err)
	}

	return authors, total, nil
}

func (r *PostgresRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
		UPDATE authors
		SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, created_at, updated_at`

	updated := &model.Author{}
	err := r.db.QueryRow(ctx, query, a.ID, a.Name).Scan(
		&updated.ID, &updated.Name, &updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	r.invalidateCache(ctx, a.ID)
	return updated, nil
}

// Delete removes the author row. Join rows and subscriptions go with it
// through ON DELETE CASCADE on the referencing tables.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("author %d is still referenced: %w", id, err)
		}
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	r.invalidateCache(ctx, id)
	return nil
}

func (r *PostgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) invalidateCache(ctx context.Context, id int64) {
	if err := r.cache.Delete(ctx, authorCacheKey(id)); err != nil {
		log.Warn().Err(err).Int64("author_id", id).Msg("failed to invalidate author cache")
	}
	r.invalidateReportCache(ctx)
}

// Author mutations can change the top-authors report, so its cache is
// dropped alongside the entity cache.
func (r *PostgresRepository) invalidateReportCache(ctx context.Context) {
	if err := r.cache.DeletePattern(ctx, "report:*"); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate report cache")
	}
}
