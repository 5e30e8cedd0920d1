package config

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// OpenRedis connects to the cache and pings it once.
func OpenRedis(ctx context.Context, cfg *Config) (*redis.Client, error) {
	redisConf := cfg.Redis
	client := redis.NewClient(&redis.Options{
		Addr:     redisConf.Addr,
		Password: redisConf.Password,
		DB:       redisConf.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
