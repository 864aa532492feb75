// services/leaderboard_cache.go - Optional Redis read cache for leaderboards
package services

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const leaderboardCacheTTL = 30 * time.Second

// LeaderboardCache fronts the leaderboard query with a short-lived Redis
// cache. It is optional: when REDIS_URL is unset NewLeaderboardCache returns
// nil and callers skip caching entirely.
type LeaderboardCache struct {
	rdb *redis.Client
}

func NewLeaderboardCache() *LeaderboardCache {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("WARNING: invalid REDIS_URL, leaderboard cache disabled: %v", err)
		return nil
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARNING: redis unreachable, leaderboard cache disabled: %v", err)
		return nil
	}

	log.Println("Leaderboard cache connected")
	return &LeaderboardCache{rdb: rdb}
}

// Get returns the cached payload for key, or false on miss or error. Cache
// failures are never surfaced; the caller falls through to the database.
func (c *LeaderboardCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *LeaderboardCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, payload, leaderboardCacheTTL).Err(); err != nil {
		log.Printf("leaderboard cache set failed: %v", err)
	}
}

// Invalidate drops every cached leaderboard page. Called on each accepted
// event and after aggregate rebuilds.
func (c *LeaderboardCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	keys, err := c.rdb.Keys(ctx, "leaderboard:*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("leaderboard cache invalidate failed: %v", err)
	}
}
