// -----------------------------------------------------------------------------
// Session Package
// -----------------------------------------------------------------------------
// İstek başına oturum nesnesi ve yaşam döngüsü.
//
// Bir Session iki durumdan birindedir: StatusNone (henüz başlatılmadı) veya
// StatusActive. Start(), cookie'deki değeri Handler üzerinden yükler; değer
// yoksa veya geçersizse yeni bir ID üretir. Veri Save() ile Handler'a yazılır.
//
// Kullanım (Manager ve middleware üzerinden):
//
//	s := manager.Load(r)
//	s.Start(ctx)
//	s.Set("user_id", 42)
//	manager.Commit(ctx, w, s)
// -----------------------------------------------------------------------------

package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"maps"
	"sync"
	"time"
)

// ErrNotFound, handler'da karşılığı olmayan (veya geçersiz) oturum için döner.
var ErrNotFound = errors.New("session not found")

// Status, oturumun yaşam döngüsü durumu.
type Status int

const (
	StatusNone Status = iota
	StatusActive
)

func (s Status) String() string {
	if s == StatusActive {
		return "active"
	}
	return "none"
}

// Session, tek bir isteğe ait oturum.
type Session struct {
	mu        sync.Mutex
	handler   Handler
	lifetime  time.Duration
	cookie    string // istemciden gelen cookie değeri
	id        string
	status    Status
	values    map[string]any
	destroyed bool
}

// New, cookie değeri ile bağlanmış, başlatılmamış bir oturum oluşturur.
func New(handler Handler, cookie string, lifetime time.Duration) *Session {
	return &Session{
		handler:  handler,
		lifetime: lifetime,
		cookie:   cookie,
		values:   map[string]any{},
	}
}

// NewID, 32 byte rastgele veriden base64url oturum kimliği üretir.
func NewID() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// Start, oturumu başlatır. Zaten aktifse bir şey yapmaz.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusActive {
		return nil
	}

	s.id = ""
	s.values = map[string]any{}

	if s.cookie != "" {
		id, data, err := s.handler.Read(ctx, s.cookie)
		switch {
		case err == nil:
			s.id = id
			if data != nil {
				s.values = data
			}
		case !errors.Is(err, ErrNotFound):
			return err
		}
	}

	// Bilinmeyen cookie değerleri kabul edilmez, yeni kimlik üretilir.
	if s.id == "" {
		s.id = NewID()
	}

	s.status = StatusActive
	return nil
}

// IsActive, oturumun başlatılmış olup olmadığını döndürür.
func (s *Session) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status == StatusActive
}

// Status, oturum durumunu döndürür.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// ID, oturum kimliğini döndürür. Başlatılmamış oturumda boştur.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Get, oturum değerini okur.
func (s *Session) Get(name string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[name]
	return v, ok
}

// All, tüm oturum değerlerinin kopyasını döndürür.
func (s *Session) All() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.values)
}

// Set, oturuma değer yazar.
func (s *Session) Set(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
}

// Unset, tek bir değeri siler.
func (s *Session) Unset(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, name)
}

// Clear, tüm oturum değerlerini siler; oturum aktif kalır.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = map[string]any{}
}

// Destroy, oturumu handler'dan siler ve başlatılmamış duruma döner.
// Sonraki Start() yeni bir kimlik üretir.
func (s *Session) Destroy(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.id != "" {
		if err := s.handler.Destroy(ctx, s.id); err != nil {
			return err
		}
	}

	s.id = ""
	s.cookie = ""
	s.values = map[string]any{}
	s.status = StatusNone
	s.destroyed = true
	return nil
}

// Destroyed, bu istek içinde Destroy() çağrılıp çağrılmadığını döndürür.
func (s *Session) Destroyed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyed
}

// Save, aktif oturumu handler'a yazar ve istemciye gönderilecek cookie
// değerini döndürür. Aktif olmayan oturum için boş değer döner.
func (s *Session) Save(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusActive {
		return "", nil
	}

	cookie, err := s.handler.Write(ctx, s.id, maps.Clone(s.values), s.lifetime)
	if err != nil {
		return "", err
	}
	s.cookie = cookie
	return cookie, nil
}

type contextKey struct{}

// NewContext, oturumu context'e ekler.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext, context'teki oturumu döndürür.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok
}
