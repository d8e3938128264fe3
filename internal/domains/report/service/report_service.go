package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/domains/report/model"
	"bookcatalog-backend/internal/domains/report/repository"
	"bookcatalog-backend/pkg/cache"
)

const (
	defaultTopAuthorsLimit = 10
	maxTopAuthorsLimit     = 100
	reportCacheTTL         = 5 * time.Minute
)

type ReportService struct {
	repo  repository.RepositoryInterface
	cache cache.Cache
}

func NewReportService(repo repository.RepositoryInterface, cache cache.Cache) *ReportService {
	return &ReportService{repo: repo, cache: cache}
}

// TopAuthors returns the authors with the most published books for a year.
// A non-positive year means the current year; the limit defaults to ten.
// Results are cached briefly since the underlying aggregate is not cheap.
func (s *ReportService) TopAuthors(ctx context.Context, year, limit int) (*model.TopAuthorsReport, error) {
	if year <= 0 {
		year = time.Now().Year()
	}
	if limit <= 0 {
		limit = defaultTopAuthorsLimit
	}
	if limit > maxTopAuthorsLimit {
		limit = maxTopAuthorsLimit
	}

	cacheKey := fmt.Sprintf("report:top_authors:%d:%d", year, limit)
	cached := &model.TopAuthorsReport{}
	if found, err := s.cache.Get(ctx, cacheKey, cached); err == nil && found {
		return cached, nil
	}

	authors, err := s.repo.TopAuthorsByYear(ctx, year, limit)
	if err != nil {
		return nil, err
	}

	report := &model.TopAuthorsReport{Year: year, Authors: authors}
	if err := s.cache.Set(ctx, cacheKey, report, reportCacheTTL); err != nil {
		log.Warn().Err(err).Int("year", year).Msg("failed to cache top authors report")
	}

	return report, nil
}
