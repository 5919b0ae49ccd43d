package dedup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	orderingSvc "dms/internal/domain/services/ordering"
)

const keyPrefix = "dms:delivery:"

// Config holds the redis connection settings
type Config struct {
	Addr     string
	DB       int
	Password string
}

// NewClient creates a redis client and pings it
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Password: cfg.Password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// store is the subset of redis commands the guard uses. *redis.Client satisfies it.
type store interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Guard is a DeliveryGuard backed by redis SETNX
type Guard struct {
	rdb    store
	logger *slog.Logger
}

// NewGuard creates a guard on rdb
func NewGuard(rdb store, logger *slog.Logger) *Guard {
	return &Guard{rdb: rdb, logger: logger}
}

// Claim marks key as handled for ttl. It reports false when key was already claimed.
func (g *Guard) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := g.rdb.SetNX(ctx, keyPrefix+key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim %s: %w", key, err)
	}
	if !ok {
		g.logger.Debug("delivery already claimed", "key", key)
	}
	return ok, nil
}

// Release removes a claim
func (g *Guard) Release(ctx context.Context, key string) error {
	if err := g.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("release %s: %w", key, err)
	}
	return nil
}

var _ orderingSvc.DeliveryGuard = (*Guard)(nil)
