package repository

import (
	"context"

	"bookcatalog-backend/internal/domains/report/model"
)

type RepositoryInterface interface {
	TopAuthorsByYear(ctx context.Context, year, limit int) ([]model.TopAuthor, error)
}
