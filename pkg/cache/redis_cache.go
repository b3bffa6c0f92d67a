// -----------------------------------------------------------------------------
// Redis Cache Driver
// -----------------------------------------------------------------------------
// Redis-based cache implementation.
//
// Production ortamı için önerilen driver. Değerler JSON olarak saklanır;
// okurken JSON decode edilir (sayılar float64 olarak döner).
// -----------------------------------------------------------------------------

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache, Redis-based cache implementation.
type RedisCache struct {
	client  *redis.Client
	logger  Logger
	prefix  string // Key prefix (namespace)
	timeout time.Duration
}

// NewRedisCache, yeni bir Redis cache instance oluşturur.
//
// Örnek:
//
//	c := NewRedisCache(redisClient, logger, "atom:")
//	c.Set("session:abc", data, time.Hour)
//	// Gerçek key: "atom:session:abc"
func NewRedisCache(client *redis.Client, logger Logger, prefix string) *RedisCache {
	return &RedisCache{
		client:  client,
		logger:  logger,
		prefix:  prefix,
		timeout: 3 * time.Second,
	}
}

// prefixKey, key'e prefix ekler.
func (r *RedisCache) prefixKey(key string) string {
	return r.prefix + key
}

// Get, cache'den veri okur.
func (r *RedisCache) Get(key string) (interface{}, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	prefixedKey := r.prefixKey(key)
	val, err := r.client.Get(ctx, prefixedKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.logger.Printf("❌ Redis Get hatası [%s]: %v", prefixedKey, err)
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var result interface{}
	if err := json.Unmarshal(val, &result); err != nil {
		r.logger.Printf("❌ JSON decode hatası [%s]: %v", prefixedKey, err)
		return nil, fmt.Errorf("json decode failed: %w", err)
	}
	return result, nil
}

// Set, cache'e veri yazar.
func (r *RedisCache) Set(key string, value interface{}, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("json encode failed: %w", err)
	}

	prefixedKey := r.prefixKey(key)
	if err := r.client.Set(ctx, prefixedKey, data, ttl).Err(); err != nil {
		r.logger.Printf("❌ Redis Set hatası [%s]: %v", prefixedKey, err)
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Delete, cache'den veri siler.
func (r *RedisCache) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.client.Del(ctx, r.prefixKey(key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// Has, key'in varlığını kontrol eder.
func (r *RedisCache) Has(key string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	count, err := r.client.Exists(ctx, r.prefixKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists failed: %w", err)
	}
	return count > 0, nil
}
