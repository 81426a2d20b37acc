package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lavanyasahu/CitiFix/models"
)

const feedCacheKey = "issues:feed"

// FeedCache keeps the public issue feed in Redis for a short TTL so the
// home page does not hit the store on every request. It is best-effort:
// a nil cache or any Redis error reads as a miss. Stale reads within the
// TTL are acceptable for the feed.
type FeedCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewFeedCache(rdb *redis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{rdb: rdb, ttl: ttl}
}

func (c *FeedCache) Get(ctx context.Context) ([]models.Issue, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, feedCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var issues []models.Issue
	if err := json.Unmarshal(data, &issues); err != nil {
		return nil, false
	}
	return issues, true
}

func (c *FeedCache) Set(ctx context.Context, issues []models.Issue) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(issues)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, feedCacheKey, data, c.ttl)
}

func (c *FeedCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, feedCacheKey)
}
