// -----------------------------------------------------------------------------
// Cache Interface
// -----------------------------------------------------------------------------
// Tüm cache driver'ların implement etmesi gereken interface.
// Driver'lar: Redis, Memory
//
// Session katmanı (pkg/session.CacheHandler) oturum verisini bu interface
// üzerinden saklar; böylece aynı session kodu hem tek süreçli geliştirme
// ortamında (memory) hem de dağıtık ortamda (redis) çalışır.
// -----------------------------------------------------------------------------

package cache

import (
	"time"
)

// Cache, tüm cache driver'ların implement etmesi gereken interface.
//
// Örnek kullanım:
//
//	var c cache.Cache = cache.NewRedisCache(redisClient, logger, "atom:")
//	c.Set("session:abc", data, 2*time.Hour)
type Cache interface {
	// Get, cache'den veri okur. Key bulunamazsa (nil, nil) döner.
	Get(key string) (interface{}, error)

	// Set, cache'e veri yazar. TTL = 0 ise süresiz saklanır.
	Set(key string, value interface{}, ttl time.Duration) error

	// Delete, cache'den veri siler. Key yoksa hata vermez.
	Delete(key string) error

	// Has, key'in cache'de olup olmadığını kontrol eder.
	Has(key string) (bool, error)
}

// Logger interface - dependency injection için
type Logger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}
