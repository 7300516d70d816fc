package history

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"tripplanner/models"

	"github.com/go-redis/redis/v8"
)

const historyCachePrefix = "tripHistory:"

// RedisStore keeps history entries in Redis with a TTL, so a session's trip
// list survives process restarts.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisStore creates a redis-backed history store. A zero ttl defaults to
// 24 hours.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{Client: client, TTL: ttl}
}

var _ Store = (*RedisStore)(nil)

// cacheKey hashes the session key so raw bearer tokens never land in Redis.
func cacheKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return historyCachePrefix + hex.EncodeToString(sum[:])
}

// Replace swaps the cached entries for the key wholesale.
func (s *RedisStore) Replace(ctx context.Context, key string, entries []models.HistoryEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal history entries: %w", err)
	}
	if err := s.Client.Set(ctx, cacheKey(key), data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to save history cache: %w", err)
	}
	return nil
}

// List returns the cached entries for the key, or nil when nothing is cached.
func (s *RedisStore) List(ctx context.Context, key string) ([]models.HistoryEntry, error) {
	data, err := s.Client.Get(ctx, cacheKey(key)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history cache: %w", err)
	}
	var entries []models.HistoryEntry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history cache: %w", err)
	}
	return entries, nil
}
