package service

import (
	"context"
	"strings"

	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/internal/server/repository"
	"golang-stock-dashboard/pkg/logger"
)

// NewsService serves headlines for a symbol.
type NewsService interface {
	GetNews(ctx context.Context, symbol string) ([]entity.NewsItem, error)
}

// NewNewsService creates a new news service.
func NewNewsService(newsRepo repository.NewsRepository, log *logger.Logger) NewsService {
	return &newsService{newsRepo: newsRepo, logger: log}
}

type newsService struct {
	newsRepo repository.NewsRepository
	logger   *logger.Logger
}

func (s *newsService) GetNews(ctx context.Context, symbol string) ([]entity.NewsItem, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return []entity.NewsItem{}, nil
	}

	items, err := s.newsRepo.GetNews(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.NewsItem{}
	}
	return items, nil
}
