package session

import (
	"context"
	"net/http"
	"time"
)

// Logger interface - dependency injection için
type Logger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// Manager, istek ile oturum arasındaki cookie köprüsü.
type Manager struct {
	handler    Handler
	cookieName string
	lifetime   time.Duration
	secure     bool
	logger     Logger
}

// Option, Manager yapılandırma seçeneği.
type Option func(*Manager)

// WithCookieName, oturum cookie adını ayarlar (varsayılan: "atom_session").
func WithCookieName(name string) Option {
	return func(m *Manager) { m.cookieName = name }
}

// WithLifetime, oturum ömrünü ayarlar (varsayılan: 2 saat).
func WithLifetime(d time.Duration) Option {
	return func(m *Manager) { m.lifetime = d }
}

// WithSecure, cookie'nin sadece HTTPS üzerinden gönderilmesini sağlar.
func WithSecure(secure bool) Option {
	return func(m *Manager) { m.secure = secure }
}

// NewManager, yeni bir Manager oluşturur.
func NewManager(handler Handler, logger Logger, opts ...Option) *Manager {
	m := &Manager{
		handler:    handler,
		cookieName: "atom_session",
		lifetime:   2 * time.Hour,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CookieName, oturum cookie adını döndürür.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// Load, isteğin cookie'sine bağlı, başlatılmamış bir oturum döndürür.
// Handler'a erişim ancak Start() çağrıldığında yapılır.
func (m *Manager) Load(r *http.Request) *Session {
	var value string
	if c, err := r.Cookie(m.cookieName); err == nil {
		value = c.Value
	}
	return New(m.handler, value, m.lifetime)
}

// Commit, oturumu kaydeder ve cookie'yi yanıta yazar.
//
//   - Aktif oturum: kaydedilir, cookie yenilenir.
//   - Destroy edilmiş oturum: cookie expire edilir.
//   - Hiç başlatılmamış oturum: cookie'ye dokunulmaz.
//
// Header'lar yazılmadan önce çağrılmalıdır.
func (m *Manager) Commit(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if !s.IsActive() {
		if s.Destroyed() {
			http.SetCookie(w, m.cookie("", -1))
		}
		return nil
	}

	value, err := s.Save(ctx)
	if err != nil {
		m.logger.Printf("❌ Session kaydedilemedi: %v", err)
		return err
	}

	http.SetCookie(w, m.cookie(value, int(m.lifetime/time.Second)))
	return nil
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
