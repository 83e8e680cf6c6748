// Package dedup guards side effects against at-least-once redelivery.
package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "kindred:delivered:"

var (
	_ Guard = (*redisGuard)(nil)
	_ Guard = Noop{}
)

type redisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClient opens a Redis client from a redis:// URL.
func NewClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// NewRedis creates a Guard whose marks expire after ttl.
func NewRedis(client *redis.Client, ttl time.Duration) Guard {
	return &redisGuard{client: client, ttl: ttl}
}

func (g *redisGuard) Seen(ctx context.Context, key string) (bool, error) {
	n, err := g.client.Exists(ctx, keyPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check key %s: %w", key, err)
	}
	return n > 0, nil
}

func (g *redisGuard) Mark(ctx context.Context, key string) error {
	if err := g.client.Set(ctx, keyPrefix+key, time.Now().Unix(), g.ttl).Err(); err != nil {
		return fmt.Errorf("failed to mark key %s: %w", key, err)
	}
	return nil
}

// Noop is the Guard used when no Redis is configured. Nothing is ever seen.
type Noop struct{}

func (Noop) Seen(context.Context, string) (bool, error) { return false, nil }
func (Noop) Mark(context.Context, string) error         { return nil }
