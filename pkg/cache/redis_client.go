// -----------------------------------------------------------------------------
// Redis Connection
// -----------------------------------------------------------------------------
// Redis session store'u için bağlantı kurulumu.
//
// SESSION_DRIVER=redis olduğunda uygulama buradan bir client açar ve
// RedisCache'e verir. Bağlantı açılışta PING ile doğrulanır.
// -----------------------------------------------------------------------------

package cache

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig, Redis bağlantı yapılandırması.
type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultRedisConfig, varsayılan Redis yapılandırması.
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Host:         "127.0.0.1",
		Port:         6379,
		PoolSize:     10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// Addr, host:port biçiminde adres döndürür.
func (c *RedisConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// NewRedisClient, yeni bir Redis client oluşturur ve bağlantıyı test eder.
//
// Örnek:
//
//	client, err := cache.NewRedisClient(ctx, cfg, logger)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func NewRedisClient(ctx context.Context, config *RedisConfig, logger Logger) (*redis.Client, error) {
	if config == nil {
		config = DefaultRedisConfig()
	}

	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr(),
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		logger.Printf("❌ Redis bağlantı hatası: %v", err)
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	logger.Printf("✅ Redis bağlantısı başarılı: %s (DB: %d)", config.Addr(), config.DB)
	return client, nil
}
