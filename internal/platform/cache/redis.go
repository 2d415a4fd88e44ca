// Package cache provides an optional Redis-backed TTL memo for read-heavy
// responses. A nil *RedisClient is valid and disables caching; the database
// remains the source of truth.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisClient holds the Redis client connection.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient initializes a Redis client from REDIS_ADDR.
func NewRedisClient() (*RedisClient, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, fmt.Errorf("REDIS_ADDR environment variable not set")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Println("Successfully connected to Redis!")
	return &RedisClient{client: client}, nil
}

// Close closes the Redis connection.
func (c *RedisClient) Close() {
	if c == nil || c.client == nil {
		return
	}
	c.client.Close()
	log.Println("Redis connection closed.")
}

// GetJSON loads the value at key into dest. It returns false on a miss, on
// an expired key, or when the client is nil.
func (c *RedisClient) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("WARN: redis get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("WARN: redis get %s: bad payload: %v", key, err)
		return false
	}
	return true
}

// SetJSON stores value at key with a TTL. Failures are logged, not returned;
// the memo is best-effort.
func (c *RedisClient) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("WARN: redis set %s: marshal: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("WARN: redis set %s: %v", key, err)
	}
}
