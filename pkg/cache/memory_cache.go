// -----------------------------------------------------------------------------
// Memory Cache Driver
// -----------------------------------------------------------------------------
// In-memory cache implementation (non-persistent).
//
// Geliştirme ortamı ve testler için idealdir. Değerler serileştirilmeden
// saklanır; süresi dolan kayıtlar okuma anında veya Prune() ile silinir.
//
// Sınırlamalar:
// - Non-persistent (restart'ta kaybolur)
// - Single-server only (distributed değil)
// -----------------------------------------------------------------------------

package cache

import (
	"sync"
	"time"
)

// MemoryCacheEntry, memory'de saklanan veri yapısı.
type MemoryCacheEntry struct {
	Value     interface{}
	ExpiresAt time.Time // zero value = süresiz
}

// IsExpired, entry'nin expire olup olmadığını kontrol eder.
func (e *MemoryCacheEntry) IsExpired(now time.Time) bool {
	if e.ExpiresAt.IsZero() {
		return false
	}
	return now.After(e.ExpiresAt)
}

// MemoryCache, in-memory cache implementation.
type MemoryCache struct {
	store  map[string]*MemoryCacheEntry
	mu     sync.RWMutex
	logger Logger
	now    func() time.Time
}

// NewMemoryCache, yeni bir Memory cache instance oluşturur.
func NewMemoryCache(logger Logger) *MemoryCache {
	logger.Println("✅ Memory cache başlatıldı")

	return &MemoryCache{
		store:  make(map[string]*MemoryCacheEntry),
		logger: logger,
		now:    time.Now,
	}
}

// Get, cache'den veri okur.
func (m *MemoryCache) Get(key string) (interface{}, error) {
	m.mu.RLock()
	entry, exists := m.store[key]
	m.mu.RUnlock()

	if !exists {
		return nil, nil
	}

	if entry.IsExpired(m.now()) {
		m.mu.Lock()
		delete(m.store, key)
		m.mu.Unlock()
		return nil, nil
	}

	return entry.Value, nil
}

// Set, cache'e veri yazar.
func (m *MemoryCache) Set(key string, value interface{}, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store[key] = &MemoryCacheEntry{
		Value:     value,
		ExpiresAt: expiresAt,
	}
	return nil
}

// Delete, cache'den veri siler.
func (m *MemoryCache) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.store, key)
	return nil
}

// Has, key'in varlığını kontrol eder.
func (m *MemoryCache) Has(key string) (bool, error) {
	val, err := m.Get(key)
	if err != nil {
		return false, err
	}
	return val != nil, nil
}

// Prune, süresi dolmuş tüm kayıtları siler ve silinen kayıt sayısını döndürür.
func (m *MemoryCache) Prune() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	cleaned := 0
	for key, entry := range m.store {
		if entry.IsExpired(now) {
			delete(m.store, key)
			cleaned++
		}
	}

	if cleaned > 0 {
		m.logger.Printf("🧹 Memory cache: %d expired kayıt silindi", cleaned)
	}
	return cleaned
}

// Len, cache'deki kayıt sayısını döndürür (expired dahil).
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}
