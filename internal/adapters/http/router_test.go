package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	adapthttp "taskmanager-api/internal/adapters/http"
	"taskmanager-api/internal/adapters/http/handlers"
	"taskmanager-api/internal/auth"
	"taskmanager-api/internal/domain/project"
	"taskmanager-api/internal/domain/role"
	"taskmanager-api/internal/domain/task"
	"taskmanager-api/internal/domain/user"
	"taskmanager-api/internal/ports"
)

// stubProjectService serves a single fixed project.
type stubProjectService struct{ calls int }

func (s *stubProjectService) ListProjects(context.Context) ([]project.Project, error) {
	s.calls++
	return []project.Project{}, nil
}

func (s *stubProjectService) GetProject(context.Context, int64) (*project.Project, error) {
	s.calls++
	return &project.Project{ID: 1, Name: "p", UserID: 1}, nil
}

func (s *stubProjectService) GetProjectTasks(context.Context, int64) ([]task.Task, error) {
	s.calls++
	return []task.Task{}, nil
}

func (s *stubProjectService) ListProjectsByUser(context.Context, int64) ([]project.Project, error) {
	s.calls++
	return []project.Project{}, nil
}

func (s *stubProjectService) CreateProject(_ context.Context, p *project.Project, _ string) (*project.Project, error) {
	s.calls++
	created := *p
	created.ID = 1
	return &created, nil
}

func (s *stubProjectService) DeleteProject(context.Context, int64) (*project.Project, error) {
	s.calls++
	return &project.Project{ID: 1, Name: "p", UserID: 1}, nil
}

// stubUserService serves a single fixed user.
type stubUserService struct{}

func (stubUserService) SignIn(context.Context, string, string) (string, error) {
	return "token", nil
}

func (stubUserService) SignUp(context.Context, string, string, string, string) (*user.User, error) {
	return &user.User{ID: 1, Username: "alice"}, nil
}

func (stubUserService) ListUsers(context.Context) ([]user.User, error) {
	return []user.User{}, nil
}

func (stubUserService) GetUser(context.Context, int64) (*user.User, error) {
	return &user.User{ID: 1, Username: "alice"}, nil
}

type stubRegistry struct{}

func (stubRegistry) Register(ports.HealthChecker)                  {}
func (stubRegistry) CheckAll(context.Context) map[string]error { return map[string]error{} }

const routerTestSecret = "router-test-secret-32-bytes-long!"

func newTestRouter(t *testing.T) (http.Handler, *stubProjectService, *auth.JWTProvider) {
	t.Helper()

	svc := &stubProjectService{}
	tokens := auth.NewJWTProvider(routerTestSecret, time.Hour)

	router := adapthttp.NewRouter(
		handlers.NewAuthHandler(stubUserService{}),
		handlers.NewProjectHandler(svc),
		handlers.NewUserHandler(stubUserService{}),
		handlers.NewHealthHandler(stubRegistry{}),
		tokens,
	)
	return router, svc, tokens
}

func mintToken(t *testing.T, tokens *auth.JWTProvider, roles ...string) string {
	t.Helper()
	token, err := tokens.Issue("alice", roles)
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}
	return token
}

func TestRouter_AllRoutesRegistered(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)

	expectedRoutes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/health/live"},
		{http.MethodGet, "/health/ready"},
		{http.MethodPost, "/api/v1/auth/signin"},
		{http.MethodPost, "/api/v1/auth/signup"},
		{http.MethodGet, "/api/v1/project"},
		{http.MethodPost, "/api/v1/project"},
		{http.MethodGet, "/api/v1/project/{id}"},
		{http.MethodGet, "/api/v1/project/{id}/tasks"},
		{http.MethodDelete, "/api/v1/project/{id}"},
		{http.MethodGet, "/api/v1/projects/user/{userId}"},
		{http.MethodGet, "/api/v1/users"},
		{http.MethodGet, "/api/v1/users/{userId}"},
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

	called := false
	testMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}

	svc := &stubProjectService{}
	tokens := auth.NewJWTProvider(routerTestSecret, time.Hour)
	router := adapthttp.NewRouter(
		handlers.NewAuthHandler(stubUserService{}),
		handlers.NewProjectHandler(svc),
		handlers.NewUserHandler(stubUserService{}),
		handlers.NewHealthHandler(stubRegistry{}),
		tokens,
		testMW,
	)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if !called {
		t.Error("middleware was not called")
	}
}

func TestRouter_ProjectRoutesRequireAuthentication(t *testing.T) {
	t.Parallel()

	router, svc, _ := newTestRouter(t)

	requests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/project"},
		{http.MethodPost, "/api/v1/project"},
		{http.MethodGet, "/api/v1/project/1"},
		{http.MethodGet, "/api/v1/project/1/tasks"},
		{http.MethodDelete, "/api/v1/project/1"},
		{http.MethodGet, "/api/v1/projects/user/1"},
		{http.MethodGet, "/api/v1/users"},
		{http.MethodGet, "/api/v1/users/1"},
	}

	for _, req := range requests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(req.method, req.path, nil))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: status = %d, want 401", req.method, req.path, rec.Code)
		}
	}
	if svc.calls != 0 {
		t.Errorf("service called %d times for unauthenticated requests, want 0", svc.calls)
	}
}

func TestRouter_UserTokenReachesProjectRoutes(t *testing.T) {
	t.Parallel()

	router, _, tokens := newTestRouter(t)
	token := mintToken(t, tokens, role.User)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/project", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_AdminRoutesRejectUserRole(t *testing.T) {
	t.Parallel()

	router, svc, tokens := newTestRouter(t)
	token := mintToken(t, tokens, role.User)

	for _, path := range []string{"/api/v1/projects/user/1", "/api/v1/users", "/api/v1/users/1"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("GET %s with USER role: status = %d, want 403", path, rec.Code)
		}
	}
	if svc.calls != 0 {
		t.Errorf("service called %d times for forbidden requests, want 0", svc.calls)
	}
}

// Authorization runs before path validation: a USER hitting an admin route
// with a malformed id gets 403, not 400.
func TestRouter_AuthorizationPrecedesValidation(t *testing.T) {
	t.Parallel()

	router, _, tokens := newTestRouter(t)
	token := mintToken(t, tokens, role.User)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/user/0", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestRouter_AdminTokenReachesAdminRoutes(t *testing.T) {
	t.Parallel()

	router, _, tokens := newTestRouter(t)
	token := mintToken(t, tokens, role.Admin)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_SignInIsPublic(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin",
		strings.NewReader(`{"username":"alice","password":"pw1"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_NotFoundReturns404(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/auth/signin", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
