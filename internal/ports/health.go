package ports

import "context"

// HealthChecker is implemented by components the readiness probe should
// verify. In this service that is the Postgres store.
type HealthChecker interface {
	// Name identifies the component in probe output (e.g. "postgres").
	Name() string

	// HealthCheck returns nil when the component is usable. Implementations
	// respect ctx cancellation and deadlines.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry collects checkers at startup and runs them for the
// readiness endpoint.
type HealthRegistry interface {
	Register(checker HealthChecker)

	// CheckAll runs every registered check, keyed by checker name; a nil
	// value means healthy.
	CheckAll(ctx context.Context) map[string]error
}
