package ports

import (
	"context"

	"taskmanager-api/internal/domain/project"
	"taskmanager-api/internal/domain/task"
	"taskmanager-api/internal/domain/user"
)

// UserService defines the service port for account and authentication
// operations. Implemented by the application layer; called by inbound
// adapters (handlers).
//
// Sign-in and sign-up distinguish "operation declined" from "operation
// errored": a declined outcome (unknown username on sign-in, duplicate
// username on sign-up) returns zero values with a nil error, while
// infrastructure and authentication failures are returned as errors.
type UserService interface {
	// SignIn authenticates a username/password pair and issues a signed
	// token carrying the user's role claims. An unknown username yields
	// ("", nil). A wrong password yields an error wrapping
	// domain.ErrUnauthorized.
	SignIn(ctx context.Context, username, password string) (string, error)

	// SignUp creates a new user with the default role and a hashed
	// password. A duplicate username yields (nil, nil) and leaves the
	// existing record unchanged.
	SignUp(ctx context.Context, username, password, firstName, lastName string) (*user.User, error)

	// ListUsers returns all users. No pagination.
	ListUsers(ctx context.Context) ([]user.User, error)

	// GetUser returns a single user by ID.
	// Returns domain.ErrNotFound if the user does not exist.
	GetUser(ctx context.Context, id int64) (*user.User, error)
}

// ProjectService defines the service port for project aggregate operations.
// Read operations hydrate each project's task list.
type ProjectService interface {
	// ListProjects returns all projects with their task lists populated.
	ListProjects(ctx context.Context) ([]project.Project, error)

	// GetProject returns a single project by ID with its tasks populated.
	// Returns domain.ErrNotFound if the project does not exist.
	GetProject(ctx context.Context, id int64) (*project.Project, error)

	// GetProjectTasks returns the task list of a single project.
	// Returns domain.ErrNotFound if the project does not exist.
	GetProjectTasks(ctx context.Context, id int64) ([]task.Task, error)

	// ListProjectsByUser returns all projects owned by the given user.
	// Returns domain.ErrNotFound if the user does not exist.
	ListProjectsByUser(ctx context.Context, userID int64) ([]project.Project, error)

	// CreateProject validates and persists a new project owned by the user
	// identified by ownerUsername (taken from the authenticated identity).
	// Returns domain.ErrValidation if the project fails validation.
	CreateProject(ctx context.Context, p *project.Project, ownerUsername string) (*project.Project, error)

	// DeleteProject deletes a project and returns the deleted
	// representation, tasks included.
	// Returns domain.ErrNotFound if the project does not exist.
	DeleteProject(ctx context.Context, id int64) (*project.Project, error)
}
