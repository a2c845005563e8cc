package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecorder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		write         func(w http.ResponseWriter)
		wantStatus    int
		wantCommitted bool
		wantBytes     int64
	}{
		{
			name:       "nothing written",
			write:      func(http.ResponseWriter) {},
			wantStatus: http.StatusOK,
		},
		{
			name:          "no content",
			write:         func(w http.ResponseWriter) { w.WriteHeader(http.StatusNoContent) },
			wantStatus:    http.StatusNoContent,
			wantCommitted: true,
		},
		{
			name: "implicit 200 on body",
			write: func(w http.ResponseWriter) {
				_, _ = w.Write([]byte(`[{"id":1}]`))
			},
			wantStatus:    http.StatusOK,
			wantCommitted: true,
			wantBytes:     10,
		},
		{
			name: "second status ignored",
			write: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusCreated)
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("{}"))
				_, _ = w.Write([]byte("\n"))
			},
			wantStatus:    http.StatusCreated,
			wantCommitted: true,
			wantBytes:     3,
		},
		{
			name: "early hints do not commit",
			write: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusEarlyHints)
				w.WriteHeader(http.StatusNotFound)
			},
			wantStatus:    http.StatusNotFound,
			wantCommitted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := record(httptest.NewRecorder())
			tt.write(rec)

			if rec.status != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.status, tt.wantStatus)
			}
			if rec.committed != tt.wantCommitted {
				t.Errorf("committed = %v, want %v", rec.committed, tt.wantCommitted)
			}
			if rec.bytes != tt.wantBytes {
				t.Errorf("bytes = %d, want %d", rec.bytes, tt.wantBytes)
			}
		})
	}
}

func TestRecorder_ReachesUnderlyingWriter(t *testing.T) {
	t.Parallel()

	inner := httptest.NewRecorder()
	rec := record(inner)

	rec.WriteHeader(http.StatusConflict)

	if inner.Code != http.StatusConflict {
		t.Errorf("inner Code = %d, want %d", inner.Code, http.StatusConflict)
	}
	if rec.Unwrap() != inner {
		t.Error("Unwrap() did not return the wrapped writer")
	}
	if err := http.NewResponseController(rec).Flush(); err != nil {
		t.Errorf("Flush through recorder: %v", err)
	}
	if !inner.Flushed {
		t.Error("inner writer not flushed")
	}
}
