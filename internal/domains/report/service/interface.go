package service

import (
	"context"

	"bookcatalog-backend/internal/domains/report/model"
)

type ServiceInterface interface {
	TopAuthors(ctx context.Context, year, limit int) (*model.TopAuthorsReport, error)
}
