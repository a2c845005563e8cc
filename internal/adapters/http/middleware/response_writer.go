// Package middleware holds the HTTP middleware mounted in front of the todo
// API. Pipeline assembles them in production order:
//
//	Recovery → CORS → RequestID → CorrelationID → OpenTelemetry → Logging → Timeout → router
package middleware

import "net/http"

// recorder wraps an http.ResponseWriter and remembers the status and body
// size sent through it, for Recovery, OpenTelemetry and Logging.
type recorder struct {
	http.ResponseWriter
	status    int
	committed bool
	bytes     int64
}

func record(w http.ResponseWriter) *recorder {
	return &recorder{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the final status. Informational 1xx responses are
// passed through without committing; after commit further calls are dropped.
func (rec *recorder) WriteHeader(code int) {
	if rec.committed {
		return
	}
	if code >= 100 && code < 200 && code != http.StatusSwitchingProtocols {
		rec.ResponseWriter.WriteHeader(code)
		return
	}
	rec.status = code
	rec.committed = true
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *recorder) Write(b []byte) (int, error) {
	rec.committed = true
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rec *recorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}
