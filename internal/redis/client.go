package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Client wraps a Redis connection used as a read-through cache for the
// public post feed.
type Client struct {
	rdb *goredis.Client
}

// NewClient creates a Redis client from a URL and verifies the connection.
func NewClient(redisURL string) (*Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	rdb := goredis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return &Client{rdb: rdb}, nil
}

// Ping checks the Redis connection.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

const (
	feedKey = "feed:posts"

	// FeedTTL bounds staleness if an invalidation is ever missed.
	FeedTTL = 30 * time.Second
)

// GetFeed returns the cached feed JSON, or nil on a cache miss.
func (c *Client) GetFeed(ctx context.Context) ([]byte, error) {
	data, err := c.rdb.Get(ctx, feedKey).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting feed cache: %w", err)
	}
	return data, nil
}

// SetFeed caches the feed JSON with the feed TTL.
func (c *Client) SetFeed(ctx context.Context, data []byte) error {
	return c.rdb.Set(ctx, feedKey, data, FeedTTL).Err()
}

// InvalidateFeed drops the cached feed. Called after every post mutation.
func (c *Client) InvalidateFeed(ctx context.Context) error {
	return c.rdb.Del(ctx, feedKey).Err()
}
