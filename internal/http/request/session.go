package request

import (
	"errors"

	"github.com/biyonik/atom/pkg/session"
)

// ErrNoSession, isteğe bağlı bir oturum yok (Session middleware eksik).
var ErrNoSession = errors.New("no session attached to request")

// Sess, isteğe bağlı oturumu döndürür (yoksa nil).
func (r *Request) Sess() *session.Session {
	return r.session
}

// SessionStart, oturumu başlatır.
func (r *Request) SessionStart() error {
	if r.session == nil {
		return ErrNoSession
	}
	return r.session.Start(r.Context())
}

// ensureSession, oturum başlatılmamışsa başlatır.
func (r *Request) ensureSession() bool {
	if r.session == nil {
		return false
	}
	if r.session.IsActive() {
		return true
	}
	return r.session.Start(r.Context()) == nil
}

// SessionID, oturum kimliğini döndürür.
func (r *Request) SessionID() string {
	if !r.ensureSession() {
		return ""
	}
	return r.session.ID()
}

// Session, oturum değerini okur. Değer yoksa (false, false) döner.
// Boş isim verilirse tüm oturum verisi döner.
//
// Örnek:
//
//	if id, ok := r.Session("user_id"); ok {
//	    ...
//	}
func (r *Request) Session(name string) (any, bool) {
	if !r.ensureSession() {
		return false, false
	}
	if name == "" {
		return r.session.All(), true
	}
	if v, ok := r.session.Get(name); ok {
		return v, true
	}
	return false, false
}

// SessionAll, tüm oturum verisinin kopyasını döndürür.
func (r *Request) SessionAll() map[string]any {
	if !r.ensureSession() {
		return map[string]any{}
	}
	return r.session.All()
}

// SetSession, oturuma değer yazar. Boş isim yok sayılır.
func (r *Request) SetSession(name string, value any) {
	if name == "" || !r.ensureSession() {
		return
	}
	r.session.Set(name, value)
}

// UnsetSession, oturumdan tek bir değeri siler.
func (r *Request) UnsetSession(name string) {
	if !r.ensureSession() {
		return
	}
	r.session.Unset(name)
}

// FreeSession, tüm oturum değerlerini siler; oturum aktif kalır.
func (r *Request) FreeSession() {
	if !r.ensureSession() {
		return
	}
	r.session.Clear()
}

// DestroySession, oturumu tamamen yok eder.
func (r *Request) DestroySession() error {
	if !r.ensureSession() {
		return ErrNoSession
	}
	return r.session.Destroy(r.Context())
}
