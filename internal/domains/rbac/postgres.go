package rbac

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the store can
// participate in a caller's transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps roles in auth_item and assignments in auth_assignment.
type PostgresStore struct {
	db Querier
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: pool}
}

var _ RoleStore = (*PostgresStore)(nil)

// WithTx returns a store bound to the given transaction.
func (s *PostgresStore) WithTx(tx pgx.Tx) *PostgresStore {
	return &PostgresStore{db: tx}
}

func (s *PostgresStore) RoleExists(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM auth_item WHERE name = $1)`

	var exists bool
	if err := s.db.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check role existence: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) RolesByUser(ctx context.Context, userID int64) ([]string, error) {
	query := `SELECT item_name FROM auth_assignment WHERE user_id = $1`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query role assignments: %w", err)
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan role assignment: %w", err)
		}
		roles = append(roles, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating role assignments: %w", err)
	}

	return roles, nil
}

func (s *PostgresStore) HasAssignment(ctx context.Context, role string, userID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM auth_assignment WHERE item_name = $1 AND user_id = $2)`

	var exists bool
	if err := s.db.QueryRow(ctx, query, role, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check role assignment: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) Assign(ctx context.Context, role string, userID int64) error {
	query := `
        INSERT INTO auth_assignment (item_name, user_id)
        VALUES ($1, $2)
        ON CONFLICT (item_name, user_id) DO NOTHING
    `

	if _, err := s.db.Exec(ctx, query, role, userID); err != nil {
		return fmt.Errorf("failed to insert role assignment: %w", err)
	}
	return nil
}
