// Package redis dials the Redis instance holding carts and sessions.
package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Connect parses a redis:// URL, pings the server and returns the client.
func Connect(ctx context.Context, url string) (*goredis.Client, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("redis URL is empty")
	}
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := goredis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
