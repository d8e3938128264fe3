package service

import (
	"context"

	"bookcatalog-backend/internal/domains/user/model"
)

type ServiceInterface interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}
