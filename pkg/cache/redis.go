package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rentrobe/rentrobe/pkg/config"
)

const (
	defaultPoolSize = 10
	connectTimeout  = 2 * time.Second
)

// RedisClient is the shared Redis connection used for the item detail cache
// and for sessions. Every key it hands out is prefixed with the configured
// namespace, so several deployments can share one Redis.
type RedisClient struct {
	client    *redis.Client
	namespace string
}

// NewRedisClient parses cfg.RedisURL, sizes the pool and pings the server.
// The ping is bounded by ctx and a two second deadline.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*RedisClient, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	opts.PoolSize = cfg.RedisPoolSize
	if opts.PoolSize <= 0 {
		opts.PoolSize = defaultPoolSize
	}
	opts.MinIdleConns = max(1, opts.PoolSize/5)
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	// Cache reads sit on the item detail path; fail fast and fall back to Postgres.
	opts.ReadTimeout = 500 * time.Millisecond
	opts.WriteTimeout = 500 * time.Millisecond
	opts.PoolTimeout = time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisClient{client: rdb, namespace: strings.Trim(cfg.RedisKeyPrefix, ":")}, nil
}

// Key joins parts with ':' under the client's namespace, e.g.
// Key("item", id) -> "rentrobe:item:<id>".
func (r *RedisClient) Key(parts ...string) string {
	if r.namespace != "" {
		parts = append([]string{r.namespace}, parts...)
	}
	return strings.Join(parts, ":")
}

// Ping checks the Redis connection health.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close shuts down the connection pool.
func (r *RedisClient) Close() error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}

// Client returns the underlying redis.Client.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}
