package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	adapthttp "github.com/jsamuelsen11/todo-service/internal/adapters/http"
	"github.com/jsamuelsen11/todo-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-service/mocks"
)

func newTestRouter(t *testing.T) (http.Handler, *mocks.MockTodoService) {
	t.Helper()
	svc := mocks.NewMockTodoService(t)
	registry := mocks.NewMockHealthRegistry(t)

	th := handlers.NewTodoHandler(svc)
	hh := handlers.NewHealthHandler(registry)

	router := adapthttp.NewRouter(th, hh)
	return router, svc
}

func TestRouter_AllRoutesRegistered(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	expectedRoutes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/health/live"},
		{http.MethodGet, "/health/ready"},
		{http.MethodGet, "/api/v1/todos/"},
		{http.MethodPost, "/api/v1/todos/"},
		{http.MethodGet, "/api/v1/todos/{id}"},
		{http.MethodPut, "/api/v1/todos/{id}"},
		{http.MethodDelete, "/api/v1/todos/{id}"},
		{http.MethodPatch, "/api/v1/todos/{id}/toggle"},
		{http.MethodGet, "/api/v1/todos/status/{completed}"},
		{http.MethodGet, "/api/v1/todos/search"},
		{http.MethodGet, "/api/v1/todos/incomplete"},
		{http.MethodGet, "/api/v1/todos/completed"},
	}

	chiRouter, ok := router.(*chi.Mux)
	if !ok {
		t.Fatal("router is not *chi.Mux")
	}

	registered := make(map[string]bool)
	err := chi.Walk(chiRouter, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	})
	if err != nil {
		t.Fatalf("chi.Walk error: %v", err)
	}

	for _, expected := range expectedRoutes {
		key := expected.method + " " + expected.path
		if !registered[key] {
			t.Errorf("route %s not registered", key)
		}
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	t.Parallel()

	svc := mocks.NewMockTodoService(t)
	registry := mocks.NewMockHealthRegistry(t)

	th := handlers.NewTodoHandler(svc)
	hh := handlers.NewHealthHandler(registry)

	called := false
	testMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}

	router := adapthttp.NewRouter(th, hh, testMW)

	registry.EXPECT().CheckAll(mock.Anything).Return(map[string]error{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	router.ServeHTTP(rec, req)

	if !called {
		t.Error("middleware was not called")
	}
}

func TestRouter_ListTodos(t *testing.T) {
	t.Parallel()

	router, svc := newTestRouter(t)

	svc.EXPECT().ListTodos(mock.Anything).Return([]todo.Todo{}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/todos", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRouter_StaticSegmentsBeforeID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		path  string
		setup func(svc *mocks.MockTodoService)
	}{
		{
			name: "incomplete",
			path: "/api/v1/todos/incomplete",
			setup: func(svc *mocks.MockTodoService) {
				svc.EXPECT().ListIncompleteTodos(mock.Anything).Return([]todo.Todo{}, nil)
			},
		},
		{
			name: "completed",
			path: "/api/v1/todos/completed",
			setup: func(svc *mocks.MockTodoService) {
				svc.EXPECT().ListCompletedTodos(mock.Anything).Return([]todo.Todo{}, nil)
			},
		},
		{
			name: "search",
			path: "/api/v1/todos/search?title=milk",
			setup: func(svc *mocks.MockTodoService) {
				svc.EXPECT().SearchTodos(mock.Anything, "milk").Return([]todo.Todo{}, nil)
			},
		},
		{
			name: "status",
			path: "/api/v1/todos/status/true",
			setup: func(svc *mocks.MockTodoService) {
				svc.EXPECT().ListTodosByStatus(mock.Anything, true).Return([]todo.Todo{}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router, svc := newTestRouter(t)
			tt.setup(svc)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
			}
		})
	}
}

func TestRouter_ToggleThenGetUnknown(t *testing.T) {
	t.Parallel()

	router, svc := newTestRouter(t)

	toggled := todo.Todo{ID: 1, Title: "Buy milk", Completed: true}
	svc.EXPECT().ToggleTodo(mock.Anything, int64(1)).Return(&toggled, nil)
	svc.EXPECT().GetTodo(mock.Anything, int64(999)).Return(nil, domain.ErrNotFound)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/v1/todos/1/toggle", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("toggle status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"completed":true`) {
		t.Errorf("toggle body = %s, want completed true", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/todos/999", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("get status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRouter_NotFoundReturns404(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/todos/1", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
