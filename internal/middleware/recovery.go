// AngelaMos | 2026
// recovery.go

package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/carterperez-dev/apartment-api/internal/core"
)

// Recoverer turns a handler panic into a 500 response. The stack goes to
// the log, never to the client.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", GetRequestID(r.Context()),
					"stack", string(debug.Stack()),
				)

				core.JSONError(w, core.InternalError())
			}()

			next.ServeHTTP(w, r)
		})
	}
}
