// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"taskmanager-api/internal/adapters/http/handlers"
	"taskmanager-api/internal/adapters/http/middleware"
	"taskmanager-api/internal/domain/role"
	"taskmanager-api/internal/ports"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Global middleware is applied in the order given. Authentication and role
// checks are mounted per route group, before any path parameter parsing, so
// an unauthorized caller is turned away without the request being inspected
// further.
func NewRouter(
	authHandler *handlers.AuthHandler,
	projectHandler *handlers.ProjectHandler,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
	tokens ports.TokenProvider,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix, unauthenticated).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		// Public authentication endpoints.
		r.Post("/auth/signin", authHandler.SignIn)
		r.Post("/auth/signup", authHandler.SignUp)

		// Project reads and writes, open to any authenticated user.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(tokens))
			r.Use(middleware.RequireRoles(role.User, role.Admin))

			r.Get("/project", projectHandler.ListProjects)
			r.Post("/project", projectHandler.CreateProject)
			r.Get("/project/{id}", projectHandler.GetProject)
			r.Get("/project/{id}/tasks", projectHandler.GetProjectTasks)
			r.Delete("/project/{id}", projectHandler.DeleteProject)
		})

		// Administrative endpoints.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(tokens))
			r.Use(middleware.RequireRoles(role.Admin))

			r.Get("/projects/user/{userId}", projectHandler.ListProjectsByUser)
			r.Get("/users", userHandler.ListUsers)
			r.Get("/users/{userId}", userHandler.GetUser)
		})
	})

	return r
}
