// Package logging builds the service's slog logger and carries it through
// request contexts.
//
// The logger is built once at startup from the log and database settings:
//
//	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr,
//	    logging.WithDatabaseURL(cfg.Database.URL),
//	    logging.WithAttrs(slog.String("service", cfg.Telemetry.ServiceName)),
//	)
//
// Middleware stores a request-scoped child in the context and handlers pull
// it back out with FromContext, so every line carries request_id and
// correlation_id:
//
//	logging.FromContext(ctx).ErrorContext(ctx, "failed to toggle todo",
//	    slog.Int64("todo_id", id),
//	    slog.Any("error", err),
//	)
package logging

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"
)

type contextKey struct{}

// minSecretLength is the shortest configured secret masked by substring.
// Shorter values are left to the DSN pattern, which still covers them when
// they appear inside a connection URL.
const minSecretLength = 4

// Option customizes a logger built by New.
type Option func(*options)

type options struct {
	secrets []string
	attrs   []slog.Attr
}

// WithDatabaseURL masks the password embedded in the database connection
// string wherever it shows up in a logged string, including error chains
// that quote the DSN back. Both URL and key/value forms are understood.
// A connection string without a password adds nothing.
func WithDatabaseURL(dsn string) Option {
	return func(o *options) {
		if pw := dsnPassword(dsn); len(pw) >= minSecretLength {
			o.secrets = append(o.secrets, pw)
		}
	}
}

// WithAttrs attaches attrs to every record the logger emits.
func WithAttrs(attrs ...slog.Attr) Option {
	return func(o *options) {
		o.attrs = append(o.attrs, attrs...)
	}
}

// New creates a configured *slog.Logger.
//
// level is one of "debug", "info", "warn" or "error" (case-insensitive,
// unknown values mean info). format "text" selects the text handler, anything
// else JSON. At debug level the source location is included.
func New(level, format string, w io.Writer, opts ...Option) *slog.Logger {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	lvl := parseLevel(level)
	handlerOpts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl == slog.LevelDebug,
		ReplaceAttr: newRedactAttr(o.secrets...),
	}

	var handler slog.Handler
	switch format {
	case "text":
		handler = slog.NewTextHandler(w, handlerOpts)
	default:
		handler = slog.NewJSONHandler(w, handlerOpts)
	}
	if len(o.attrs) > 0 {
		handler = handler.WithAttrs(o.attrs)
	}

	return slog.New(handler)
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

func parseLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// dsnPassword extracts the password from a postgres:// URL or from a
// key/value connection string ("host=db password=secret").
func dsnPassword(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" && u.User != nil {
		pw, _ := u.User.Password()
		return pw
	}
	for _, field := range strings.Fields(dsn) {
		if key, value, ok := strings.Cut(field, "="); ok && strings.EqualFold(key, "password") {
			return strings.Trim(value, `'`)
		}
	}
	return ""
}
