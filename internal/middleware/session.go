package middleware

import (
	"net/http"
	"sync"

	"github.com/biyonik/atom/pkg/session"
)

// Session, her isteğe başlatılmamış bir oturum bağlar ve yanıt yazılmadan
// hemen önce oturumu kaydeder. Oturuma hiç dokunulmayan isteklerde store'a
// erişilmez ve cookie gönderilmez.
func Session(manager *session.Manager) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := manager.Load(r)
			r = r.WithContext(session.NewContext(r.Context(), s))

			sw := &sessionWriter{ResponseWriter: w}
			sw.commit = func() {
				// Kayıt hatası Manager tarafından loglanır; yanıt yine de gönderilir.
				manager.Commit(r.Context(), w, s)
			}

			next.ServeHTTP(sw, r)
			sw.flush()
		})
	}
}

// sessionWriter, ilk WriteHeader/Write çağrısından önce oturumu commit eder;
// Set-Cookie ancak header'lar gönderilmeden yazılabilir.
type sessionWriter struct {
	http.ResponseWriter
	once   sync.Once
	commit func()
}

func (sw *sessionWriter) flush() {
	sw.once.Do(sw.commit)
}

func (sw *sessionWriter) WriteHeader(code int) {
	sw.flush()
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *sessionWriter) Write(b []byte) (int, error) {
	sw.flush()
	return sw.ResponseWriter.Write(b)
}

// Unwrap, http.ResponseController için alttaki writer'ı döndürür.
func (sw *sessionWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}
