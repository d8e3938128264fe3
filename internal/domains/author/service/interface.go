package service

import (
	"context"

	"bookcatalog-backend/internal/domains/author/model"
)

type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)
	GetByID(ctx context.Context, id int64) (*model.Author, error)
	GetAll(ctx context.Context, page, pageSize int, sortBy, order string) ([]model.Author, int64, error)
	Update(ctx context.Context, id int64, req *model.UpdateAuthorRequest) (*model.Author, error)
	Delete(ctx context.Context, id int64) error
}
