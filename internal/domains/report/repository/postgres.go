package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"bookcatalog-backend/internal/domains/report/model"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// TopAuthorsByYear ranks authors by how many distinct books they published
// in the given year. COUNT(DISTINCT ...) keeps co-authored books from being
// counted twice per author.
func (r *PostgresRepository) TopAuthorsByYear(ctx context.Context, year, limit int) ([]model.TopAuthor, error) {
	query := `
		SELECT a.id, a.name, COUNT(DISTINCT b.id) AS book_count
		FROM authors a
		JOIN book_author ba ON ba.author_id = a.id
		JOIN books b ON b.id = ba.book_id
		WHERE b.publication_year = $1
		GROUP BY a.id, a.name
		ORDER BY book_count DESC, a.name ASC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, year, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top authors: %w", err)
	}
	defer rows.Close()

	authors := make([]model.TopAuthor, 0)
	for rows.Next() {
		var a model.TopAuthor
		if err := rows.Scan(&a.AuthorID, &a.Name, &a.BookCount); err != nil {
			return nil, fmt.Errorf("failed to scan top author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate top authors: %w", err)
	}

	return authors, nil
}
