package handlers

import (
	"log/slog"
	"maps"
	"net/http"
	"slices"

	"github.com/jsamuelsen11/todo-service/internal/platform/logging"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

const (
	checkUp   = "up"
	checkDown = "down"
)

// healthResponse is the body of both probes. Checks is omitted on liveness.
type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthHandler serves the liveness and readiness endpoints.
type HealthHandler struct {
	registry ports.HealthRegistry
}

func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live. The process answering is enough.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, healthResponse{Status: checkUp})
}

// Readiness handles GET /health/ready: 200 when every registered dependency
// (the PostgreSQL pool) answers, 503 otherwise. Failure causes are logged,
// not returned, since driver errors can quote connection details.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	results := h.registry.CheckAll(ctx)

	resp := healthResponse{Status: checkUp, Checks: make(map[string]string, len(results))}
	for _, name := range slices.Sorted(maps.Keys(results)) {
		if err := results[name]; err != nil {
			logging.FromContext(ctx).WarnContext(ctx, "readiness check failed",
				slog.String("check", name),
				slog.Any("error", err),
			)
			resp.Checks[name] = checkDown
			resp.Status = checkDown
			continue
		}
		resp.Checks[name] = checkUp
	}

	code := http.StatusOK
	if resp.Status == checkDown {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, r, code, resp)
}
