// Package request, HTTP isteklerinin daha okunabilir, daha yönetilebilir
// ve framework seviyesinde hissettiren bir yapı ile ele alınmasını sağlar.
//
// Request; URI, path, method, server değişkenleri, GET/POST parametreleri,
// yüklenen dosyalar ve oturum erişimi için tek giriş noktasıdır.
package request

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/biyonik/atom/pkg/session"
)

// @author    Ahmet Altun
// @email     ahmet.altun60@gmail.com
// @github    github.com/biyonik
// @linkedin  linkedin.com/in/biyonik

// RequestParamsKeyType, Go context içinde route parametrelerini güvenli bir
// şekilde saklamak için kullanılan özel anahtar tipidir.
type RequestParamsKeyType struct{}

// RequestParamsKey global key instance
var RequestParamsKey = RequestParamsKeyType{}

// Request yapısı, http.Request yapısının üzerine inşa edilmiş bir sarmalayıcıdır.
type Request struct {
	*http.Request

	apiMode     bool
	session     *session.Session
	requestTime time.Time
	server      map[string]string
}

// Option, Request yapılandırma seçeneği.
type Option func(*Request)

// WithAPIMode, API modunu ayarlar. API modunda URI'nin ilk 4 karakteri
// ("/api") atılır.
func WithAPIMode(on bool) Option {
	return func(r *Request) { r.apiMode = on }
}

// WithSession, isteğe oturum bağlar. Verilmezse context'teki oturum kullanılır.
func WithSession(s *session.Session) Option {
	return func(r *Request) { r.session = s }
}

// New, alınan *http.Request nesnesini bizim Request modelimize dönüştüren
// bir yapıcı fonksiyondur.
func New(r *http.Request, opts ...Option) *Request {
	req := &Request{Request: r, requestTime: time.Now()}
	if s, ok := session.FromContext(r.Context()); ok {
		req.session = s
	}
	for _, opt := range opts {
		opt(req)
	}
	return req
}

// IsJSON, gelen HTTP isteğinin Content-Type başlığında "application/json"
// içerip içermediğini kontrol eder.
func (r *Request) IsJSON() bool {
	contentType := r.Header.Get("Content-Type")
	return strings.Contains(contentType, "application/json")
}

// Query, URL query parametrelerinden bir anahtar üzerinden değer okur.
func (r *Request) Query(key string, defaultValue string) string {
	vals, exists := r.URL.Query()[key]
	if !exists || len(vals) == 0 {
		return defaultValue
	}
	return vals[0]
}

// RouteParam, route parametrelerini almak için kullanılır.
func (r *Request) RouteParam(key string) string {
	params, ok := r.Context().Value(RequestParamsKey).(map[string]string)
	if !ok {
		return ""
	}
	return params[key]
}

// ParseJSON, request body'deki JSON'ı parse eder ve verilen struct'a doldurur.
//
// Örnek:
//
//	var input CreateUserRequest
//	if err := r.ParseJSON(&input); err != nil {
//	    response.InvalidJSON(w)
//	    return
//	}
//
// Güvenlik Notu:
// - Request body 10MB ile sınırlıdır
func (r *Request) ParseJSON(dest interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 10<<20))
	if err != nil {
		return err
	}
	defer r.Body.Close()

	return json.Unmarshal(body, dest)
}

// GetIP, client'ın IP adresini döndürür.
// Reverse proxy arkasındaysa X-Forwarded-For header'ını kontrol eder.
//
// Güvenlik Notu:
// X-Forwarded-For header'ı spoof edilebilir!
// Sadece güvenilir reverse proxy'lerden geliyorsa kullanın.
func (r *Request) GetIP() string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		ips := strings.Split(forwarded, ",")
		return strings.TrimSpace(ips[0])
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	return r.Server("REMOTE_ADDR")
}

// UserAgent, client'ın User-Agent header'ını döndürür.
func (r *Request) UserAgent() string {
	return r.Header.Get("User-Agent")
}
