// -----------------------------------------------------------------------------
// Session Handlers
// -----------------------------------------------------------------------------
// Handler, oturum verisinin nerede saklandığını belirler.
//
//   - CacheHandler:  veri sunucu tarafında (memory veya redis cache), cookie
//     sadece oturum kimliğini taşır.
//   - CookieHandler: veri istemci tarafında, HS256 ile imzalı bir JWT içinde.
//     Sunucu tarafı durum tutulmaz; JSON'a çevrilemeyen değerler saklanamaz.
// -----------------------------------------------------------------------------

package session

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/biyonik/atom/pkg/cache"
	"github.com/golang-jwt/jwt/v5"
)

// Handler, oturum kalıcılık katmanı.
type Handler interface {
	// Read, cookie değerinden oturum kimliğini ve verisini yükler.
	// Bilinmeyen veya geçersiz değer için ErrNotFound döner.
	Read(ctx context.Context, cookie string) (id string, data map[string]any, err error)

	// Write, oturumu kaydeder ve cookie değerini döndürür.
	Write(ctx context.Context, id string, data map[string]any, ttl time.Duration) (cookie string, err error)

	// Destroy, oturumu siler.
	Destroy(ctx context.Context, id string) error
}

// -----------------------------------------------------------------------------
// Cache Handler
// -----------------------------------------------------------------------------

// CacheHandler, oturumları pkg/cache üzerinde "session:<id>" anahtarıyla saklar.
type CacheHandler struct {
	cache  cache.Cache
	prefix string
}

// NewCacheHandler, yeni bir CacheHandler oluşturur.
func NewCacheHandler(c cache.Cache) *CacheHandler {
	return &CacheHandler{cache: c, prefix: "session:"}
}

func (h *CacheHandler) Read(ctx context.Context, cookie string) (string, map[string]any, error) {
	val, err := h.cache.Get(h.prefix + cookie)
	if err != nil {
		return "", nil, fmt.Errorf("session read failed: %w", err)
	}
	if val == nil {
		return "", nil, ErrNotFound
	}

	data, ok := val.(map[string]any)
	if !ok {
		return "", nil, fmt.Errorf("session read failed: unexpected payload %T", val)
	}
	return cookie, maps.Clone(data), nil
}

func (h *CacheHandler) Write(ctx context.Context, id string, data map[string]any, ttl time.Duration) (string, error) {
	if err := h.cache.Set(h.prefix+id, maps.Clone(data), ttl); err != nil {
		return "", fmt.Errorf("session write failed: %w", err)
	}
	return id, nil
}

func (h *CacheHandler) Destroy(ctx context.Context, id string) error {
	if err := h.cache.Delete(h.prefix + id); err != nil {
		return fmt.Errorf("session destroy failed: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Cookie Handler
// -----------------------------------------------------------------------------

// ErrWeakSecret, CookieHandler için çok kısa imza anahtarı.
var ErrWeakSecret = errors.New("session secret must be at least 32 bytes")

// sessionClaims, JWT payload'u.
type sessionClaims struct {
	Data map[string]any `json:"data"`
	jwt.RegisteredClaims
}

// CookieHandler, oturum verisini imzalı JWT olarak cookie'de saklar.
type CookieHandler struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewCookieHandler, yeni bir CookieHandler oluşturur.
func NewCookieHandler(secret []byte, issuer string) (*CookieHandler, error) {
	if len(secret) < 32 {
		return nil, ErrWeakSecret
	}
	return &CookieHandler{secret: secret, issuer: issuer, now: time.Now}, nil
}

func (h *CookieHandler) Read(ctx context.Context, cookie string) (string, map[string]any, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(cookie, claims, func(t *jwt.Token) (interface{}, error) {
		return h.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(h.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(h.now),
	)
	if err != nil || claims.ID == "" {
		return "", nil, ErrNotFound
	}

	if claims.Data == nil {
		claims.Data = map[string]any{}
	}
	return claims.ID, claims.Data, nil
}

func (h *CookieHandler) Write(ctx context.Context, id string, data map[string]any, ttl time.Duration) (string, error) {
	now := h.now()
	claims := sessionClaims{
		Data: data,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Issuer:    h.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("session write failed: %w", err)
	}
	return signed, nil
}

// Destroy, istemci tarafı oturumda yapılacak bir şey yoktur; cookie'yi
// Manager.Commit expire eder.
func (h *CookieHandler) Destroy(ctx context.Context, id string) error {
	return nil
}
