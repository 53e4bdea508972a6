package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
)

// SearchService runs the public vacancy search.
type SearchService struct {
	api    ports.JobAPI
	logger zerolog.Logger
}

func NewSearchService(api ports.JobAPI, logger zerolog.Logger) *SearchService {
	return &SearchService{api: api, logger: logger}
}

// Search fetches one page. The query is normalised first, so unknown
// filters never reach the backend. An empty page is not an error.
func (s *SearchService) Search(ctx context.Context, q domain.SearchQuery) (*domain.SearchResult, error) {
	q = domain.NewSearchQuery(q.Keyword, q.Page, q.Filters)
	res, err := s.api.SearchJobs(ctx, q)
	if err != nil {
		return nil, err
	}
	if res.Jobs == nil {
		res.Jobs = []domain.JobPosting{}
	}
	if res.Pagination.TotalPages < res.Pagination.CurrentPage {
		res.Pagination.TotalPages = res.Pagination.CurrentPage
	}
	s.logger.Debug().
		Str("keyword", q.Keyword).
		Int("page", q.Page).
		Int("results", len(res.Jobs)).
		Msg("vacancy search")
	return res, nil
}
