package repository

import (
	"context"

	"bookcatalog-backend/internal/domains/subscription/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, sub *model.AuthorSubscription) (*model.AuthorSubscription, error)
	FindByAuthorID(ctx context.Context, authorID int64) ([]model.AuthorSubscription, error)
	FindByAuthorAndPhone(ctx context.Context, authorID int64, phone string) (*model.AuthorSubscription, error)
	Delete(ctx context.Context, authorID int64, phone string) (bool, error)
}
