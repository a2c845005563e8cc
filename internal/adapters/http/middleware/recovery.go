package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/dto"
)

// Recovery returns middleware that turns a handler panic into an RFC 9457 500
// response. The panic value and stack are logged, never sent to the client.
// If the handler already wrote headers only the log entry is emitted.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := record(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("panic", fmt.Sprint(v)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", requestIDOf(r, rw)),
				)

				if !rw.committed {
					dto.WriteErrorResponse(rw, r, fmt.Errorf("panic: %v", v))
				}
			}()

			next.ServeHTTP(rw, r)
		})
	}
}
