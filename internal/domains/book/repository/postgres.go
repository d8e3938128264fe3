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

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/pkg/cache"
	"bookcatalog-backend/pkg/database"
)

const bookCacheTTL = 10 * time.Minute

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type PostgresRepository struct {
	db    *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(db *pgxpool.Pool, cache cache.Cache) *PostgresRepository {
	return &PostgresRepository{db: db, cache: cache}
}

func bookCacheKey(id int64) string {
	return fmt.Sprintf("book:%d", id)
}

// CreateWithAuthors inserts the book row and its author links in one
// transaction. A failure on either side rolls back both.
func (r *PostgresRepository) CreateWithAuthors(ctx context.Context, b *model.Book, authorIDs []int64) (*model.Book, error) {
	created, err := database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (*model.Book, error) {
		query := `
			INSERT INTO books (title, description, publication_year, isbn, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NOW(), NOW())
			RETURNING id, title, description, publication_year, isbn, cover_image, created_at, updated_at`

		book := &model.Book{}
		err := tx.QueryRow(ctx, query, b.Title, b.Description, b.PublicationYear, b.ISBN).Scan(
			&book.ID, &book.Title, &book.Description, &book.PublicationYear, &book.ISBN,
			&book.CoverImage, &book.CreatedAt, &book.UpdatedAt,
		)
		if err != nil {
			return nil, mapBookError(err, "failed to create book")
		}

		if err := replaceAuthors(ctx, tx, book.ID, authorIDs); err != nil {
			return nil, err
		}
		return book, nil
	})
	if err != nil {
		return nil, err
	}

	r.invalidateReportCache(ctx)
	return r.GetByID(ctx, created.ID)
}

// UpdateWithAuthors updates the book row and replaces the full author set:
// all existing links are removed and the requested set is inserted. Partial
// replacement never survives, the transaction keeps it all-or-nothing.
func (r *PostgresRepository) UpdateWithAuthors(ctx context.Context, b *model.Book, authorIDs []int64) (*model.Book, error) {
	_, err := database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (*model.Book, error) {
		query := `
			UPDATE books
			SET title = $2, description = $3, publication_year = $4, isbn = $5, updated_at = NOW()
			WHERE id = $1
			RETURNING id`

		var id int64
		err := tx.QueryRow(ctx, query, b.ID, b.Title, b.Description, b.PublicationYear, b.ISBN).Scan(&id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrBookNotFound
			}
			return nil, mapBookError(err, "failed to update book")
		}

		if err := replaceAuthors(ctx, tx, b.ID, authorIDs); err != nil {
			return nil, err
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}

	r.invalidateCache(ctx, b.ID)
	return r.GetByID(ctx, b.ID)
}

func replaceAuthors(ctx context.Context, tx pgx.Tx, bookID int64, authorIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM book_author WHERE book_id = $1`, bookID); err != nil {
		return fmt.Errorf("failed to clear book authors: %w", err)
	}

	for _, authorID := range authorIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO book_author (book_id, author_id) VALUES ($1, $2)`,
			bookID, authorID,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
				return model.ErrAuthorNotFound
			}
			return fmt.Errorf("failed to link author %d: %w", authorID, err)
		}
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	cacheKey := bookCacheKey(id)
	cached := &model.Book{}
	if found, err := r.cache.Get(ctx, cacheKey, cached); err == nil && found {
		return cached, nil
	}

	query := `
		SELECT id, title, description, publication_year, isbn, cover_image, created_at, updated_at
		FROM books
		WHERE id = $1`

	b := &model.Book{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.Description, &b.PublicationYear, &b.ISBN,
		&b.CoverImage, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	authors, err := r.loadAuthors(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	b.Authors = authors[id]
	if b.Authors == nil {
		b.Authors = []model.BookAuthor{}
	}

	if err := r.cache.Set(ctx, cacheKey, b, bookCacheTTL); err != nil {
		log.Warn().Err(err).Int64("book_id", id).Msg("failed to cache book")
	}

	return b, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	sortBy := "created_at"
	switch filter.SortBy {
	case "title", "publication_year", "created_at", "updated_at":
		sortBy = filter.SortBy
	}
	order := "DESC"
	if filter.Order == "asc" {
		order = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT id, title, description, publication_year, isbn, cover_image, created_at, updated_at
		FROM books
		ORDER BY %s %s
		LIMIT $1 OFFSET $2`, sortBy, order)

	rows, err := r.db.Query(ctx, query, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Description, &b.PublicationYear, &b.ISBN,
			&b.CoverImage, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		b.Authors = []model.BookAuthor{}
		books = append(books, b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate books: %w", err)
	}

	if len(ids) > 0 {
		authorsByBook, err := r.loadAuthors(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range books {
			if authors, ok := authorsByBook[books[i].ID]; ok {
				books[i].Authors = authors
			}
		}
	}

	return books, total, nil
}

// loadAuthors fetches the author projections for a set of books in one query.
func (r *PostgresRepository) loadAuthors(ctx context.Context, bookIDs []int64) (map[int64][]model.BookAuthor, error) {
	query := `
		SELECT ba.book_id, a.id, a.name
		FROM book_author ba
		JOIN authors a ON a.id = ba.author_id
		WHERE ba.book_id = ANY($1)
		ORDER BY a.name`

	rows, err := r.db.Query(ctx, query, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load book authors: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]model.BookAuthor)
	for rows.Next() {
		var bookID int64
		var a model.BookAuthor
		if err := rows.Scan(&bookID, &a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("failed to scan book author: %w", err)
		}
		result[bookID] = append(result[bookID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate book authors: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetAuthorIDs(ctx context.Context, bookID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT author_id FROM book_author WHERE book_id = $1`, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get book author ids: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan author id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ISBNExists reports whether another book already holds the ISBN. The
// caller's own row is excluded so updates do not collide with themselves.
func (r *PostgresRepository) ISBNExists(ctx context.Context, isbn string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM books WHERE isbn = $1 AND id <> $2)`,
		isbn, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check isbn: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) UpdateCoverImage(ctx context.Context, id int64, path string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE books SET cover_image = $2, updated_at = NOW() WHERE id = $1`,
		id, path,
	)
	if err != nil {
		return fmt.Errorf("failed to update cover image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	r.invalidateCache(ctx, id)
	return nil
}

// Delete removes the book; join rows go with it through ON DELETE CASCADE.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	r.invalidateCache(ctx, id)
	return nil
}

func mapBookError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return model.ErrDuplicateISBN
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func (r *PostgresRepository) invalidateCache(ctx context.Context, id int64) {
	if err := r.cache.Delete(ctx, bookCacheKey(id)); err != nil {
		log.Warn().Err(err).Int64("book_id", id).Msg("failed to invalidate book cache")
	}
	r.invalidateReportCache(ctx)
}

// Book mutations feed the top-authors report, so its cache goes too.
func (r *PostgresRepository) invalidateReportCache(ctx context.Context) {
	if err := r.cache.DeletePattern(ctx, "report:*"); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate report cache")
	}
}
