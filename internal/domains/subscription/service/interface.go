package service

import (
	"context"

	"bookcatalog-backend/internal/domains/subscription/model"
)

type ServiceInterface interface {
	Subscribe(ctx context.Context, authorID int64, phone string, userID *int64) (bool, error)
	Unsubscribe(ctx context.Context, authorID int64, phone string) (bool, error)
	NotifyAboutNewBook(ctx context.Context, event model.NewBookEvent) error
}
