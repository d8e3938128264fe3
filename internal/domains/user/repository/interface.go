package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"bookcatalog-backend/internal/domains/user/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	FindActiveByUsername(ctx context.Context, username string) (*model.User, error)
	WithTx(tx pgx.Tx) RepositoryInterface
}
