package service

import (
	"context"

	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/internal/server/repository"
	"golang-stock-dashboard/pkg/logger"
)

// ProfileService manages the server-side copy of a user's investment
// profile.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*entity.UserProfile, error)
	Save(ctx context.Context, profile entity.UserProfile) (*entity.UserProfile, error)
}

// NewProfileService creates a new profile service.
func NewProfileService(profileRepo repository.ProfileRepository, cacheRepo repository.QuoteCacheRepository, log *logger.Logger) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		cacheRepo:   cacheRepo,
		logger:      log,
	}
}

type profileService struct {
	profileRepo repository.ProfileRepository
	cacheRepo   repository.QuoteCacheRepository
	logger      *logger.Logger
}

func (s *profileService) Get(ctx context.Context, userID string) (*entity.UserProfile, error) {
	if userID == "" {
		userID = entity.DefaultProfile().UserID
	}
	return s.profileRepo.Find(ctx, userID)
}

// Save overwrites the stored profile wholesale and drops any cached
// recommendation lists, which were scored against the previous profile.
func (s *profileService) Save(ctx context.Context, profile entity.UserProfile) (*entity.UserProfile, error) {
	profile = profile.Normalized()
	if err := s.profileRepo.Save(ctx, &profile); err != nil {
		return nil, err
	}

	if err := s.cacheRepo.InvalidateRecommendations(ctx); err != nil {
		s.logger.Warn("Failed to invalidate recommendation cache", logger.ErrorField(err))
	}

	return &profile, nil
}
