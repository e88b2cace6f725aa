package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keys
const (
	BudgetKeyFmt    = "report:budget:%s:%s" // start, end
	RemoteListFmt   = "remote:%s:list"      // table
	ReportKeyPrefix = "report:"
)

var client *redis.Client

// Init initializes the Redis connection. The cache is optional: when Redis
// is unavailable every helper degrades to a miss.
func Init(addr, password string) error {
	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client (nil when the cache is disabled).
func GetClient() *redis.Client {
	return client
}

// BudgetKey builds the cache key for a budget report over [start, end].
func BudgetKey(start, end string) string {
	return fmt.Sprintf(BudgetKeyFmt, start, end)
}

// RemoteListKey builds the cache key for a remote table listing.
func RemoteListKey(table string) string {
	return fmt.Sprintf(RemoteListFmt, table)
}

// GetCached returns cached data for a key.
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL.
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern.
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys.
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}
