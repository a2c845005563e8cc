package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/jsamuelsen11/todo-service/internal/platform/telemetry"
)

// Chain composes middleware so that the first argument is the outermost
// wrapper: Chain(a, b)(h) is a(b(h)).
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		for _, mw := range slices.Backward(middlewares) {
			handler = mw(handler)
		}
		return handler
	}
}

// PipelineConfig holds the dependencies of the todo API request pipeline.
type PipelineConfig struct {
	Logger         *slog.Logger
	Metrics        *telemetry.Metrics // nil disables request metrics
	AllowedOrigins []string
	Timeout        time.Duration
}

// Pipeline returns the middleware stack mounted in front of the todo router:
//
//	Recovery → CORS → RequestID → CorrelationID → OpenTelemetry → Logging → Timeout
//
// Recovery sits outside everything so a panic anywhere still yields a
// problem response. CORS answers preflight requests before an ID is minted
// or a log line is written. Timeout is innermost so Logging and
// OpenTelemetry observe the 504 it produces.
func Pipeline(cfg PipelineConfig) func(http.Handler) http.Handler {
	return Chain(
		Recovery(cfg.Logger),
		CORS(cfg.AllowedOrigins),
		RequestID(),
		CorrelationID(),
		OpenTelemetry(cfg.Metrics),
		Logging(cfg.Logger),
		Timeout(cfg.Timeout),
	)
}
