package service

import (
	"context"
	"strings"

	"bookcatalog-backend/internal/domains/author/model"
	"bookcatalog-backend/internal/domains/author/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type AuthorService struct {
	repo repository.RepositoryInterface
}

func NewAuthorService(repo repository.RepositoryInterface) *AuthorService {
	return &AuthorService{repo: repo}
}

func (s *AuthorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	a := &model.Author{Name: strings.TrimSpace(req.Name)}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, a)
}

func (s *AuthorService) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AuthorService) GetAll(ctx context.Context, page, pageSize int, sortBy, order string) ([]model.Author, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	filter := model.AuthorFilter{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
		SortBy: sortBy,
		Order:  order,
	}
	return s.repo.GetAll(ctx, filter)
}

func (s *AuthorService) Update(ctx context.Context, id int64, req *model.UpdateAuthorRequest) (*model.Author, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = strings.TrimSpace(req.Name)
	if err := existing.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, existing)
}

func (s *AuthorService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
