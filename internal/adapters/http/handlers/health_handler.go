package handlers

import (
	"net/http"

	"taskmanager-api/internal/ports"
)

const (
	healthStatusOK       = "ok"
	healthStatusReady    = "ready"
	healthStatusNotReady = "not_ready"
)

// HealthHandler serves the liveness and readiness probes. Liveness is
// unconditional; readiness runs every registered dependency check, which in
// this service means the Postgres pool.
type HealthHandler struct {
	registry ports.HealthRegistry
}

func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live. It answers 200 as long as the process
// can serve HTTP at all.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": healthStatusOK})
}

// Readiness handles GET /health/ready: 200 when every check passes, 503
// otherwise, with per-check detail either way.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	results := h.registry.CheckAll(r.Context())

	status, code := healthStatusReady, http.StatusOK
	checks := make(map[string]string, len(results))
	for name, err := range results {
		if err != nil {
			checks[name] = err.Error()
			status, code = healthStatusNotReady, http.StatusServiceUnavailable
		} else {
			checks[name] = healthStatusOK
		}
	}

	writeJSON(w, code, map[string]any{
		"status": status,
		"checks": checks,
	})
}
