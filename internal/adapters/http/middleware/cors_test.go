package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS_AllowsAnyOrigin(t *testing.T) {
	t.Parallel()

	handler := middleware.CORS([]string{"*"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/todos", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "*")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestCORS_Preflight(t *testing.T) {
	t.Parallel()

	called := false
	handler := middleware.CORS([]string{"https://todo.example.com"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/todos/1/toggle", http.NoBody)
	req.Header.Set("Origin", "https://todo.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if called {
		t.Error("preflight reached the handler, want it answered by CORS")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://todo.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "https://todo.example.com")
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != http.MethodPatch {
		t.Errorf("Access-Control-Allow-Methods = %q, want %q", got, http.MethodPatch)
	}
}

func TestCORS_RejectsUnknownOrigin(t *testing.T) {
	t.Parallel()

	handler := middleware.CORS([]string{"https://todo.example.com"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/todos", http.NoBody)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q, want empty", got)
	}
}
