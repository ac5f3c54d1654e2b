package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLs
const (
	TTLPublishedList = 30 * time.Second
	TTLPublishedItem = 2 * time.Minute
	TTLDefault       = 5 * time.Minute
)

// Key prefixes
const (
	PrefixPublishedList = "content:published:"
	PrefixPublishedItem = "content:slug:"
)

// ErrUnavailable is returned by reads when no redis client is configured
var ErrUnavailable = errors.New("cache: redis not available")

// Service is the read-through cache used by the public content endpoints.
// Writes and invalidations are no-ops without redis; reads return ErrUnavailable
// or redis.Nil on a miss.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	GetPublishedList(ctx context.Context, page, limit int, dest interface{}) error
	SetPublishedList(ctx context.Context, page, limit int, data interface{}) error
	GetPublishedItem(ctx context.Context, slug string, dest interface{}) error
	SetPublishedItem(ctx context.Context, slug string, data interface{}) error
	// InvalidatePublished drops every cached listing page and the item's slug entry
	InvalidatePublished(ctx context.Context, slug string) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a cache service. client may be nil.
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsMiss reports whether err means the value was not served from cache
func IsMiss(err error) bool {
	return errors.Is(err, redis.Nil) || errors.Is(err, ErrUnavailable)
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return ErrUnavailable
	}
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return ErrUnavailable
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func publishedListKey(page, limit int) string {
	return fmt.Sprintf("%s%d:%d", PrefixPublishedList, page, limit)
}

func (c *redisCache) GetPublishedList(ctx context.Context, page, limit int, dest interface{}) error {
	return c.Get(ctx, publishedListKey(page, limit), dest)
}

func (c *redisCache) SetPublishedList(ctx context.Context, page, limit int, data interface{}) error {
	return c.Set(ctx, publishedListKey(page, limit), data, TTLPublishedList)
}

func (c *redisCache) GetPublishedItem(ctx context.Context, slug string, dest interface{}) error {
	return c.Get(ctx, PrefixPublishedItem+slug, dest)
}

func (c *redisCache) SetPublishedItem(ctx context.Context, slug string, data interface{}) error {
	return c.Set(ctx, PrefixPublishedItem+slug, data, TTLPublishedItem)
}

func (c *redisCache) InvalidatePublished(ctx context.Context, slug string) error {
	if c.client == nil {
		return nil
	}
	if slug != "" {
		if err := c.client.Del(ctx, PrefixPublishedItem+slug).Err(); err != nil {
			return err
		}
	}
	return c.deleteByPattern(ctx, PrefixPublishedList+"*")
}

func (c *redisCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
