package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"golang-stock-dashboard/internal/entity"
)

// ProfileRepository persists user investment profiles.
type ProfileRepository interface {
	Find(ctx context.Context, userID string) (*entity.UserProfile, error)
	Save(ctx context.Context, profile *entity.UserProfile) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new GORM-based profile repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Find retrieves the profile for a user. A missing row returns the default
// profile rather than an error: the default is the profile the dashboard
// starts from.
func (r *profileRepository) Find(ctx context.Context, userID string) (*entity.UserProfile, error) {
	var profile entity.UserProfile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		def := entity.DefaultProfile()
		def.UserID = userID
		return &def, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Save overwrites the stored profile wholesale.
func (r *profileRepository) Save(ctx context.Context, profile *entity.UserProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(profile).Error
}
