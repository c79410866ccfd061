package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/pkg/common"
	redisPkg "golang-stock-dashboard/pkg/redis"
)

// QuoteCacheRepository caches quote snapshots so repeated searches and the
// refresh poll do not hammer the upstream provider.
type QuoteCacheRepository interface {
	Get(ctx context.Context, symbol string) (*entity.QuoteSnapshot, error)
	Set(ctx context.Context, snapshot *entity.QuoteSnapshot, ttl time.Duration) error
	SetRecommendations(ctx context.Context, profileKey string, results []entity.RecommendationResult, ttl time.Duration) error
	GetRecommendations(ctx context.Context, profileKey string) ([]entity.RecommendationResult, bool, error)
	InvalidateRecommendations(ctx context.Context) error
}

type quoteCacheRepository struct {
	redisClient *redisPkg.Client
}

// NewQuoteCacheRepository creates a Redis-backed quote cache.
func NewQuoteCacheRepository(redisClient *redisPkg.Client) QuoteCacheRepository {
	return &quoteCacheRepository{redisClient: redisClient}
}

// Get returns the cached snapshot for a symbol, or nil on a miss.
func (r *quoteCacheRepository) Get(ctx context.Context, symbol string) (*entity.QuoteSnapshot, error) {
	key := fmt.Sprintf(common.RedisKeyQuoteSnapshot, symbol)
	raw, err := r.redisClient.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snapshot entity.QuoteSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		// A corrupt cache entry is treated as a miss.
		return nil, nil
	}
	return &snapshot, nil
}

// Set stores a snapshot with the given TTL.
func (r *quoteCacheRepository) Set(ctx context.Context, snapshot *entity.QuoteSnapshot, ttl time.Duration) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	key := fmt.Sprintf(common.RedisKeyQuoteSnapshot, snapshot.Symbol)
	return r.redisClient.Set(ctx, key, raw, ttl).Err()
}

// SetRecommendations caches a scored result list under the profile key.
func (r *quoteCacheRepository) SetRecommendations(ctx context.Context, profileKey string, results []entity.RecommendationResult, ttl time.Duration) error {
	raw, err := json.Marshal(results)
	if err != nil {
		return err
	}
	key := fmt.Sprintf(common.RedisKeyRecommendations, profileKey)
	return r.redisClient.Set(ctx, key, raw, ttl).Err()
}

// GetRecommendations returns the cached result list for the profile key.
// The second return value reports whether the key was present.
func (r *quoteCacheRepository) GetRecommendations(ctx context.Context, profileKey string) ([]entity.RecommendationResult, bool, error) {
	key := fmt.Sprintf(common.RedisKeyRecommendations, profileKey)
	raw, err := r.redisClient.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var results []entity.RecommendationResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, false, nil
	}
	return results, true, nil
}

// InvalidateRecommendations removes every cached recommendation list.
// Called when a profile is saved, since the lists were scored against the
// old profile.
func (r *quoteCacheRepository) InvalidateRecommendations(ctx context.Context) error {
	pattern := fmt.Sprintf(common.RedisKeyRecommendations, "*")
	iter := r.redisClient.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := r.redisClient.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
