package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcatalog-backend/internal/domains/user/model"
)

const pgUniqueViolation = "23505"

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx, so user writes can
// join the registration transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db Querier
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ RepositoryInterface = (*PostgresRepository)(nil)

// WithTx returns a repository bound to the given transaction.
func (r *PostgresRepository) WithTx(tx pgx.Tx) RepositoryInterface {
	return &PostgresRepository{db: tx}
}

func (r *PostgresRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, auth_key, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, username, email, password_hash, auth_key, status, created_at, updated_at`

	created := &model.User{}
	err := r.db.QueryRow(ctx, query, u.Username, u.Email, u.PasswordHash, u.AuthKey, u.Status).Scan(
		&created.ID, &created.Username, &created.Email, &created.PasswordHash, &created.AuthKey,
		&created.Status, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			// Username and email each carry their own unique constraint.
			if strings.Contains(pgErr.ConstraintName, "email") {
				return nil, model.ErrDuplicateEmail
			}
			return nil, model.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hash, auth_key, status, created_at, updated_at
		FROM users
		WHERE id = $1`

	u := &model.User{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.AuthKey,
		&u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// FindActiveByUsername ignores deleted accounts, they cannot log in.
func (r *PostgresRepository) FindActiveByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hash, auth_key, status, created_at, updated_at
		FROM users
		WHERE username = $1 AND status = $2`

	u := &model.User{}
	err := r.db.QueryRow(ctx, query, username, model.StatusActive).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.AuthKey,
		&u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return u, nil
}
