package repository

import (
	"context"

	"bookcatalog-backend/internal/domains/book/model"
)

type RepositoryInterface interface {
	CreateWithAuthors(ctx context.Context, b *model.Book, authorIDs []int64) (*model.Book, error)
	UpdateWithAuthors(ctx context.Context, b *model.Book, authorIDs []int64) (*model.Book, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	GetAll(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error)
	GetAuthorIDs(ctx context.Context, bookID int64) ([]int64, error)
	ISBNExists(ctx context.Context, isbn string, excludeID int64) (bool, error)
	UpdateCoverImage(ctx context.Context, id int64, path string) error
	Delete(ctx context.Context, id int64) error
}
