// -----------------------------------------------------------------------------
// Middleware Package
// -----------------------------------------------------------------------------
// Middleware, bir http.Handler'ı alıp yeni bir http.Handler üreten
// fonksiyondur. İstek işlenmeden önce veya sonra ek işlemler (logging, panic
// recovery, oturum yükleme) bu yapı üzerine kurulur.
// -----------------------------------------------------------------------------

package middleware

import (
	"net/http"
	"time"

	"github.com/biyonik/atom/internal/http/request"
	"github.com/biyonik/atom/internal/logging"
)

// Middleware, bir sonraki http.Handler'ı alıp onu yeni bir handler olarak
// saran fonksiyon tipidir.
type Middleware func(next http.Handler) http.Handler

// Logger interface - dependency injection için
type Logger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// statusRecorder, handler'ın yazdığı statü kodunu yakalar.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Unwrap, http.ResponseController için alttaki writer'ı döndürür.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// Logging, gelen her HTTP isteğini method, path, statü ve süre ile loglar.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		req := request.New(r)
		logging.Debugf("-> %s %s ip=%s ua=%q", r.Method, r.URL.Path, req.GetIP(), req.UserAgent())

		next.ServeHTTP(rec, r)

		logging.Infof("<- %s %s %d (%s) ip=%s", r.Method, r.URL.Path, rec.status, time.Since(start), req.GetIP())
	})
}
