package repository

import (
	"context"

	"gorm.io/gorm"

	"golang-stock-dashboard/internal/entity"
)

// SearchHistoryRepository records served symbol searches.
type SearchHistoryRepository interface {
	Create(ctx context.Context, record *entity.SearchHistory) error
	FindRecent(ctx context.Context, limit int) ([]entity.SearchHistory, error)
}

type searchHistoryRepository struct {
	db *gorm.DB
}

// NewSearchHistoryRepository creates a new GORM-based search history
// repository.
func NewSearchHistoryRepository(db *gorm.DB) SearchHistoryRepository {
	return &searchHistoryRepository{db: db}
}

func (r *searchHistoryRepository) Create(ctx context.Context, record *entity.SearchHistory) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *searchHistoryRepository) FindRecent(ctx context.Context, limit int) ([]entity.SearchHistory, error) {
	var records []entity.SearchHistory
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
