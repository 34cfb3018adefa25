// Package ratelimit counts requests per key in fixed windows.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Result describes the state of a key's window after a hit.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

type Limiter interface {
	Hit(ctx context.Context, key string) (Result, error)
}

// Redis is a fixed-window Limiter shared by every server instance that uses
// the same Redis database.
type Redis struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRedis(client *redis.Client, limit int, window time.Duration) *Redis {
	return &Redis{
		client: client,
		prefix: "ratelimit:",
		limit:  limit,
		window: window,
	}
}

// Connect dials Redis and verifies the connection.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (l *Redis) Hit(ctx context.Context, key string) (Result, error) {
	key = l.prefix + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.window)
	ttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, err
	}

	count := int(incr.Val())
	reset := l.window
	if d := ttl.Val(); d > 0 {
		reset = d
	}

	return Result{
		Allowed:   count <= l.limit,
		Limit:     l.limit,
		Remaining: max(l.limit-count, 0),
		Reset:     time.Now().Add(reset),
	}, nil
}
