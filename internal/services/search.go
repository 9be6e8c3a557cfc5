package services

import (
	"context"
	"errors"
	"fmt"
)

const (
	DefaultSearchLimit = 5
	MaxSearchLimit     = 50
)

var ErrEmptyQuery = errors.New("query is required")

type SearchService interface {
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

type searchService struct {
	index    ResumeIndex
	embedder Embedder
}

func NewSearchService(index ResumeIndex, embedder Embedder) SearchService {
	return &searchService{index: index, embedder: embedder}
}

func (s *searchService) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	limit = clampLimit(limit, DefaultSearchLimit, MaxSearchLimit)

	embedding, err := s.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	return s.index.SearchSimilar(ctx, embedding, limit)
}

func clampLimit(limit, def, maxLimit int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
