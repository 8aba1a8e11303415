package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"taskmanager-api/internal/adapters/http/middleware"
	"taskmanager-api/internal/domain/project"
	"taskmanager-api/internal/domain/role"
	"taskmanager-api/internal/domain/task"
	"taskmanager-api/internal/domain/user"
	"taskmanager-api/internal/ports"
)

var testTime = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func withIdentity(r *http.Request, username string, roles ...string) *http.Request {
	id := &ports.Identity{Username: username, Roles: roles}
	return r.WithContext(middleware.WithIdentity(r.Context(), id))
}

func validProject() project.Project {
	return project.Project{
		ID:     1,
		Name:   "task-manager",
		UserID: 7,
		Tasks: []task.Task{
			{ID: 10, Description: "write handlers", Status: task.StatusInProgress, ProjectID: 1, CreatedAt: testTime, UpdatedAt: testTime},
		},
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

func validUser() user.User {
	return user.User{
		ID:           7,
		Username:     "alice",
		PasswordHash: "$2a$10$secret",
		FirstName:    "Alice",
		LastName:     "Smith",
		Roles:        []role.Role{{ID: 1, Name: role.User}},
		CreatedAt:    testTime,
		UpdatedAt:    testTime,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

// fakeProjectService implements ports.ProjectService with overridable
// function fields; unset operations fail the test if invoked.
type fakeProjectService struct {
	t *testing.T

	listFn       func(ctx context.Context) ([]project.Project, error)
	getFn        func(ctx context.Context, id int64) (*project.Project, error)
	getTasksFn   func(ctx context.Context, id int64) ([]task.Task, error)
	listByUserFn func(ctx context.Context, userID int64) ([]project.Project, error)
	createFn     func(ctx context.Context, p *project.Project, owner string) (*project.Project, error)
	deleteFn     func(ctx context.Context, id int64) (*project.Project, error)
}

func (f *fakeProjectService) ListProjects(ctx context.Context) ([]project.Project, error) {
	if f.listFn == nil {
		f.t.Fatal("unexpected call to ListProjects")
	}
	return f.listFn(ctx)
}

func (f *fakeProjectService) GetProject(ctx context.Context, id int64) (*project.Project, error) {
	if f.getFn == nil {
		f.t.Fatal("unexpected call to GetProject")
	}
	return f.getFn(ctx, id)
}

func (f *fakeProjectService) GetProjectTasks(ctx context.Context, id int64) ([]task.Task, error) {
	if f.getTasksFn == nil {
		f.t.Fatal("unexpected call to GetProjectTasks")
	}
	return f.getTasksFn(ctx, id)
}

func (f *fakeProjectService) ListProjectsByUser(ctx context.Context, userID int64) ([]project.Project, error) {
	if f.listByUserFn == nil {
		f.t.Fatal("unexpected call to ListProjectsByUser")
	}
	return f.listByUserFn(ctx, userID)
}

func (f *fakeProjectService) CreateProject(ctx context.Context, p *project.Project, owner string) (*project.Project, error) {
	if f.createFn == nil {
		f.t.Fatal("unexpected call to CreateProject")
	}
	return f.createFn(ctx, p, owner)
}

func (f *fakeProjectService) DeleteProject(ctx context.Context, id int64) (*project.Project, error) {
	if f.deleteFn == nil {
		f.t.Fatal("unexpected call to DeleteProject")
	}
	return f.deleteFn(ctx, id)
}

// fakeUserService implements ports.UserService the same way.
type fakeUserService struct {
	t *testing.T

	signInFn  func(ctx context.Context, username, password string) (string, error)
	signUpFn  func(ctx context.Context, username, password, firstName, lastName string) (*user.User, error)
	listFn    func(ctx context.Context) ([]user.User, error)
	getUserFn func(ctx context.Context, id int64) (*user.User, error)
}

func (f *fakeUserService) SignIn(ctx context.Context, username, password string) (string, error) {
	if f.signInFn == nil {
		f.t.Fatal("unexpected call to SignIn")
	}
	return f.signInFn(ctx, username, password)
}

func (f *fakeUserService) SignUp(ctx context.Context, username, password, firstName, lastName string) (*user.User, error) {
	if f.signUpFn == nil {
		f.t.Fatal("unexpected call to SignUp")
	}
	return f.signUpFn(ctx, username, password, firstName, lastName)
}

func (f *fakeUserService) ListUsers(ctx context.Context) ([]user.User, error) {
	if f.listFn == nil {
		f.t.Fatal("unexpected call to ListUsers")
	}
	return f.listFn(ctx)
}

func (f *fakeUserService) GetUser(ctx context.Context, id int64) (*user.User, error) {
	if f.getUserFn == nil {
		f.t.Fatal("unexpected call to GetUser")
	}
	return f.getUserFn(ctx, id)
}

// fakeHealthRegistry returns a fixed result set from CheckAll.
type fakeHealthRegistry struct {
	results map[string]error
}

func (f *fakeHealthRegistry) Register(ports.HealthChecker) {}

func (f *fakeHealthRegistry) CheckAll(context.Context) map[string]error {
	return f.results
}
