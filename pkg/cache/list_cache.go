package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// ListCacheTTL is the time-to-live for cached list summaries.
	ListCacheTTL = 24 * time.Hour

	listCacheKeyPrefix = "grocery_list"
)

// CachedList is the denormalized list summary mirrored into Redis by the
// list-changed subscriber. Fields are stored as a Redis hash.
type CachedList struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ItemCount   int    `json:"item_count"`
	DateUpdated string `json:"date_updated"`
}

// ListCache reads and writes list summaries.
// Key format: "grocery_list:{listID}"
type ListCache struct {
	client redis.Cmdable
}

// NewListCache creates a ListCache backed by the given RedisClient.
func NewListCache(r *RedisClient) *ListCache {
	return &ListCache{client: r.Client()}
}

// Get retrieves a cached list summary.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ListCache) Get(ctx context.Context, listID string) (*CachedList, error) {
	vals, err := c.client.HGetAll(ctx, c.key(listID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	count, err := strconv.Atoi(vals["item_count"])
	if err != nil {
		return nil, fmt.Errorf("cache parse item_count: %w", err)
	}

	return &CachedList{
		ID:          vals["id"],
		Name:        vals["name"],
		ItemCount:   count,
		DateUpdated: vals["date_updated"],
	}, nil
}

// Set writes a list summary as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL in one round trip.
func (c *ListCache) Set(ctx context.Context, list *CachedList) error {
	key := c.key(list.ID)
	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key,
		"id", list.ID,
		"name", list.Name,
		"item_count", list.ItemCount,
		"date_updated", list.DateUpdated,
	)
	pipe.Expire(ctx, key, ListCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached list summary.
func (c *ListCache) Delete(ctx context.Context, listID string) error {
	if err := c.client.Del(ctx, c.key(listID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "grocery_list:{listID}"
func (c *ListCache) key(listID string) string {
	return fmt.Sprintf("%s:%s", listCacheKeyPrefix, listID)
}
