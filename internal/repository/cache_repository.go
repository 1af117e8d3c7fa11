package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SergeiKhy/url-stats/internal/models"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// CacheRepository кэш нормализованных записей статистики
type CacheRepository interface {
	Get(ctx context.Context, code string) (*models.VisitRecord, error)
	Set(ctx context.Context, record *models.VisitRecord, ttl time.Duration) error
	Delete(ctx context.Context, code string) error
}

type cacheRepository struct {
	redis *RedisDB
}

func NewCacheRepository(redis *RedisDB) CacheRepository {
	return &cacheRepository{redis: redis}
}

func (r *cacheRepository) Get(ctx context.Context, code string) (*models.VisitRecord, error) {
	data, err := r.redis.Client.Get(ctx, r.key(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}

	var record models.VisitRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return &record, nil
}

func (r *cacheRepository) Set(ctx context.Context, record *models.VisitRecord, ttl time.Duration) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	return r.redis.Client.Set(ctx, r.key(record.Code), data, ttl).Err()
}

func (r *cacheRepository) Delete(ctx context.Context, code string) error {
	return r.redis.Client.Del(ctx, r.key(code)).Err()
}

func (r *cacheRepository) key(code string) string {
	return "stats:record:" + code
}

// noopCache используется при REDIS_ENABLED=false
type noopCache struct{}

func NewNoopCacheRepository() CacheRepository {
	return noopCache{}
}

func (noopCache) Get(context.Context, string) (*models.VisitRecord, error) {
	return nil, ErrCacheMiss
}

func (noopCache) Set(context.Context, *models.VisitRecord, time.Duration) error {
	return nil
}

func (noopCache) Delete(context.Context, string) error {
	return nil
}
