package service

import (
	"context"
	"mime/multipart"

	"bookcatalog-backend/internal/domains/book/model"
	submodel "bookcatalog-backend/internal/domains/subscription/model"
)

type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	GetAll(ctx context.Context, page, pageSize int, sortBy, order string) ([]model.Book, int64, error)
	Update(ctx context.Context, id int64, req *model.UpdateBookRequest) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
	UpdateCover(ctx context.Context, id int64, file *multipart.FileHeader) (*model.Book, error)
}

// Notifier receives the new-book event after a successful create. Failures
// there never fail the create itself.
type Notifier interface {
	NotifyAboutNewBook(ctx context.Context, event submodel.NewBookEvent) error
}

// CoverStore abstracts the cover file storage.
type CoverStore interface {
	SaveCover(file *multipart.FileHeader, oldPath string) (string, error)
	DeleteCover(relPath string) bool
	CoverURL(relPath string) string
}
