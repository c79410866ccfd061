package entity

import (
	"time"

	"gorm.io/datatypes"
)

// SearchHistory records each successful symbol search with the snapshot
// that was served, for debugging data issues after the fact.
type SearchHistory struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Symbol    string         `gorm:"not null;index" json:"symbol"`
	Exchange  string         `gorm:"size:8" json:"exchange"`
	Price     float64        `json:"price"`
	Snapshot  datatypes.JSON `json:"snapshot"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the SearchHistory model.
func (SearchHistory) TableName() string {
	return "search_history"
}
