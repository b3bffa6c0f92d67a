package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/biyonik/atom/internal/http/response"
)

// PanicRecovery, bir handler'da panic oluştuğunda sunucunun çökmesini engeller
// ve istemciye standart bir JSON 500 hatası döndürür.
func PanicRecovery(logger Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					logger.Printf("PANIC: %v\n%s", err, debug.Stack())

					response.ServerError(w, "")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
