package ports

import (
	"context"

	"taskmanager-api/internal/domain/project"
	"taskmanager-api/internal/domain/role"
	"taskmanager-api/internal/domain/task"
	"taskmanager-api/internal/domain/user"
)

// UserRepository persists user records. Lookups return domain.ErrNotFound
// when no record matches; Save returns domain.ErrConflict when the username
// is already taken.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindAll(ctx context.Context) ([]user.User, error)
	Save(ctx context.Context, u *user.User) (*user.User, error)
}

// RoleRepository reads the static role reference data.
type RoleRepository interface {
	// FindByName returns the role with the given name.
	// Returns domain.ErrNotFound if no such role exists.
	FindByName(ctx context.Context, name string) (*role.Role, error)
}

// ProjectRepository persists project records. Task lists are not populated
// by this port; services hydrate them through TaskRepository.
type ProjectRepository interface {
	FindByID(ctx context.Context, id int64) (*project.Project, error)
	FindAll(ctx context.Context) ([]project.Project, error)
	FindByUserID(ctx context.Context, userID int64) ([]project.Project, error)
	Save(ctx context.Context, p *project.Project) (*project.Project, error)
	// Delete removes a project and its tasks.
	// Returns domain.ErrNotFound if the project does not exist.
	Delete(ctx context.Context, id int64) error
}

// TaskRepository reads task records. Tasks are read-only through this
// service's HTTP surface.
type TaskRepository interface {
	FindByProjectID(ctx context.Context, projectID int64) ([]task.Task, error)
}
