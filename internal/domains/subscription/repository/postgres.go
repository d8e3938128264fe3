package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcatalog-backend/internal/domains/subscription/model"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the subscription, relying on the unique (author_id, phone)
// constraint to reject duplicates.
func (r *PostgresRepository) Create(ctx context.Context, sub *model.AuthorSubscription) (*model.AuthorSubscription, error) {
	query := `
		INSERT INTO author_subscriptions (author_id, user_id, phone, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, author_id, user_id, phone, created_at`

	created := &model.AuthorSubscription{}
	err := r.db.QueryRow(ctx, query, sub.AuthorID, sub.UserID, sub.Phone).Scan(
		&created.ID, &created.AuthorID, &created.UserID, &created.Phone, &created.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return nil, model.ErrAlreadySubscribed
			case pgForeignKeyViolation:
				return nil, model.ErrAuthorNotFound
			}
		}
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	return created, nil
}

func (r *PostgresRepository) FindByAuthorID(ctx context.Context, authorID int64) ([]model.AuthorSubscription, error) {
	query := `
		SELECT id, author_id, user_id, phone, created_at
		FROM author_subscriptions
		WHERE author_id = $1
		ORDER BY id`

	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	subs := make([]model.AuthorSubscription, 0)
	for rows.Next() {
		var s model.AuthorSubscription
		if err := rows.Scan(&s.ID, &s.AuthorID, &s.UserID, &s.Phone, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *PostgresRepository) FindByAuthorAndPhone(ctx context.Context, authorID int64, phone string) (*model.AuthorSubscription, error) {
	query := `
		SELECT id, author_id, user_id, phone, created_at
		FROM author_subscriptions
		WHERE author_id = $1 AND phone = $2`

	s := &model.AuthorSubscription{}
	err := r.db.QueryRow(ctx, query, authorID, phone).Scan(&s.ID, &s.AuthorID, &s.UserID, &s.Phone, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}
	return s, nil
}

// Delete removes a subscription and reports whether a row actually went.
func (r *PostgresRepository) Delete(ctx context.Context, authorID int64, phone string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM author_subscriptions WHERE author_id = $1 AND phone = $2`,
		authorID, phone,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete subscription: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
