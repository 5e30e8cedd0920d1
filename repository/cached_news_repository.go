package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/nkust-web/campus/models"
	"github.com/sirupsen/logrus"
)

const latestKeyPrefix = "news:latest:"

// CachedNewsRepository serves FetchLatest from redis and falls through to the
// wrapped repository on a miss. Cache failures are logged and never surface
// as errors; only the wrapped repository can fail a read.
type CachedNewsRepository struct {
	NewsRepository
	rdb *redis.Client
	ttl time.Duration
	log *logrus.Logger
}

func NewCachedNewsRepository(inner NewsRepository, rdb *redis.Client, ttl time.Duration, log *logrus.Logger) *CachedNewsRepository {
	return &CachedNewsRepository{
		NewsRepository: inner,
		rdb:            rdb,
		ttl:            ttl,
		log:            log,
	}
}

func latestKey(limit int) string {
	return fmt.Sprintf("%s%d", latestKeyPrefix, limit)
}

func (r *CachedNewsRepository) FetchLatest(ctx context.Context, limit int) ([]models.News, error) {
	if limit <= 0 {
		return []models.News{}, nil
	}
	key := latestKey(limit)
	entry := r.log.WithField("key", key)

	cached, err := r.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		var news []models.News
		decodeErr := json.Unmarshal([]byte(cached), &news)
		if decodeErr == nil {
			return news, nil
		}
		entry.WithError(decodeErr).Warn("discarding malformed cache entry")
	case err != redis.Nil:
		entry.WithError(err).Warn("cache read failed, querying database")
	}

	news, err := r.NewsRepository.FetchLatest(ctx, limit)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(news)
	if err != nil {
		entry.WithError(err).Warn("failed to encode news for cache")
		return news, nil
	}
	if err := r.rdb.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		entry.WithError(err).Warn("cache write failed")
	}
	return news, nil
}

// Create stores the item and drops every cached latest-N window.
func (r *CachedNewsRepository) Create(ctx context.Context, news *models.News) error {
	if err := r.NewsRepository.Create(ctx, news); err != nil {
		return err
	}
	if err := r.Invalidate(ctx); err != nil {
		r.log.WithError(err).Warn("cache invalidation failed")
	}
	return nil
}

// Invalidate deletes all cached latest-N windows.
func (r *CachedNewsRepository) Invalidate(ctx context.Context) error {
	iter := r.rdb.Scan(ctx, 0, latestKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.rdb.Del(ctx, keys...).Err()
}
