// Package health implements the checker registry behind the readiness probe.
package health

import (
	"context"
	"sync"

	"taskmanager-api/internal/ports"
)

var _ ports.HealthRegistry = (*Registry)(nil)

// Registry holds the components to verify on each readiness probe. Register
// and CheckAll are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	checkers []ports.HealthChecker
}

func New() *Registry {
	return &Registry{}
}

// Register adds a checker. Registration happens at startup in main, but the
// lock makes late registration safe too.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers = append(r.checkers, checker)
}

// CheckAll runs every registered check and returns results keyed by checker
// name; nil means healthy. The checker slice is snapshotted under the read
// lock so slow checks never block Register.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := make([]ports.HealthChecker, len(r.checkers))
	copy(checkers, r.checkers)
	r.mu.RUnlock()

	results := make(map[string]error, len(checkers))
	for _, c := range checkers {
		results[c.Name()] = c.HealthCheck(ctx)
	}
	return results
}
