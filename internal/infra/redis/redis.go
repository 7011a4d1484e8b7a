package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cdentertainment/site-api/config"
	"github.com/redis/go-redis/v9"
)

const defaultDialTimeout = 10 * time.Second

// Addr returns host:port for cfg, falling back to a local redis.
func Addr(cfg config.RedisConfig) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 6379
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// NewClient builds the redis client backing the public rate limiter and verifies it with PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     Addr(cfg),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, defaultDialTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", Addr(cfg), err)
	}

	return rdb, nil
}
