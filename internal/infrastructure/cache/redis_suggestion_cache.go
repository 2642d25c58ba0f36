package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/erurang/wooyangcrm-sub010/internal/application/suggestion"
	"github.com/erurang/wooyangcrm-sub010/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const suggestionKeyPrefix = "wooyang:"

// RedisSuggestionCache implements suggestion.Cache on Redis. A cache failure
// is never surfaced to the caller: reads degrade to a miss and writes are
// dropped with a warning, so suggestions keep working when Redis is down.
type RedisSuggestionCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisSuggestionCache connects to Redis and returns a suggestion cache
func NewRedisSuggestionCache(cfg config.RedisConfig, logger *zap.Logger) (*RedisSuggestionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisSuggestionCacheWithClient(client, logger), nil
}

// NewRedisSuggestionCacheWithClient wraps an existing Redis client
func NewRedisSuggestionCacheWithClient(client *redis.Client, logger *zap.Logger) *RedisSuggestionCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSuggestionCache{client: client, logger: logger}
}

// Get returns the cached response for the key, or a miss
func (c *RedisSuggestionCache) Get(ctx context.Context, key string) (*suggestion.ListResponse, bool) {
	payload, err := c.client.Get(ctx, suggestionKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("suggestion cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var resp suggestion.ListResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		c.logger.Warn("discarding corrupt suggestion cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &resp, true
}

// Set stores the response under the key with the given TTL
func (c *RedisSuggestionCache) Set(ctx context.Context, key string, value *suggestion.ListResponse, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("failed to encode suggestion cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, suggestionKeyPrefix+key, payload, ttl).Err(); err != nil {
		c.logger.Warn("suggestion cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Close closes the Redis client
func (c *RedisSuggestionCache) Close() error {
	return c.client.Close()
}

// Ensure RedisSuggestionCache implements suggestion.Cache
var _ suggestion.Cache = (*RedisSuggestionCache)(nil)
