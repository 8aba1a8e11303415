package app

import (
	"context"
	"fmt"
	"log/slog"

	"taskmanager-api/internal/app/fanout"
	"taskmanager-api/internal/domain/project"
	"taskmanager-api/internal/domain/task"
	"taskmanager-api/internal/ports"
)

// maxHydrateWorkers bounds the number of concurrent task-list fetches when
// hydrating a slice of projects.
const maxHydrateWorkers = 4

// Compile-time check that ProjectService implements ports.ProjectService.
var _ ports.ProjectService = (*ProjectService)(nil)

// ProjectService implements ports.ProjectService by orchestrating the project
// and task repositories. Read paths hydrate each project's task list; the
// owner of a created project is resolved from the authenticated username.
type ProjectService struct {
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	users    ports.UserRepository
	logger   *slog.Logger
}

// NewProjectService creates a ProjectService. A nil logger is replaced with
// a no-op logger.
func NewProjectService(
	projects ports.ProjectRepository,
	tasks ports.TaskRepository,
	users ports.UserRepository,
	logger *slog.Logger,
) *ProjectService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ProjectService{
		projects: projects,
		tasks:    tasks,
		users:    users,
		logger:   logger,
	}
}

// ListProjects returns all projects with their task lists populated.
func (s *ProjectService) ListProjects(ctx context.Context) ([]project.Project, error) {
	s.logger.InfoContext(ctx, "listing projects")

	projects, err := s.projects.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list projects",
			slog.String("operation", "ListProjects"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return s.hydrateTasks(ctx, projects)
}

// GetProject returns a single project by ID with its tasks populated.
func (s *ProjectService) GetProject(ctx context.Context, id int64) (*project.Project, error) {
	s.logger.InfoContext(ctx, "fetching project", slog.Int64("id", id))

	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch project",
			slog.String("operation", "GetProject"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	tasks, err := s.tasks.FindByProjectID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch project tasks",
			slog.String("operation", "GetProject"),
			slog.Int64("project_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	p.Tasks = tasks
	return p, nil
}

// GetProjectTasks returns the task list of a single project. The project is
// fetched first so that a missing project surfaces as domain.ErrNotFound
// rather than an empty list.
func (s *ProjectService) GetProjectTasks(ctx context.Context, id int64) ([]task.Task, error) {
	p, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.Tasks, nil
}

// ListProjectsByUser returns all projects owned by the given user, tasks
// included. Returns domain.ErrNotFound if the user does not exist.
func (s *ProjectService) ListProjectsByUser(ctx context.Context, userID int64) ([]project.Project, error) {
	s.logger.InfoContext(ctx, "listing projects by user", slog.Int64("user_id", userID))

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to verify user",
			slog.String("operation", "ListProjectsByUser"),
			slog.Int64("user_id", userID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("verifying user: %w", err)
	}

	projects, err := s.projects.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list projects by user",
			slog.String("operation", "ListProjectsByUser"),
			slog.Int64("user_id", userID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return s.hydrateTasks(ctx, projects)
}

// CreateProject validates and persists a new project. The owner is resolved
// from ownerUsername, which the handler takes from the authenticated identity.
func (s *ProjectService) CreateProject(ctx context.Context, p *project.Project, ownerUsername string) (*project.Project, error) {
	s.logger.InfoContext(ctx, "creating project",
		slog.String("name", p.Name),
		slog.String("owner", ownerUsername),
	)

	if err := p.Validate(); err != nil {
		return nil, err
	}

	owner, err := s.users.FindByUsername(ctx, ownerUsername)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to resolve project owner",
			slog.String("operation", "CreateProject"),
			slog.String("owner", ownerUsername),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("resolving owner: %w", err)
	}
	p.UserID = owner.ID

	created, err := s.projects.Save(ctx, p)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create project",
			slog.String("operation", "CreateProject"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return created, nil
}

// DeleteProject deletes a project and returns the deleted representation,
// tasks included.
func (s *ProjectService) DeleteProject(ctx context.Context, id int64) (*project.Project, error) {
	s.logger.InfoContext(ctx, "deleting project", slog.Int64("id", id))

	p, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete project",
			slog.String("operation", "DeleteProject"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return p, nil
}

// hydrateTasks populates the task list of each project, fetching at most
// maxHydrateWorkers lists concurrently. The first fetch failure fails the
// whole operation.
func (s *ProjectService) hydrateTasks(ctx context.Context, projects []project.Project) ([]project.Project, error) {
	results := fanout.Run(ctx, maxHydrateWorkers, projects,
		func(ctx context.Context, p project.Project) ([]task.Task, error) {
			return s.tasks.FindByProjectID(ctx, p.ID)
		},
	)

	for i, r := range results {
		if r.Err != nil {
			s.logger.ErrorContext(ctx, "failed to hydrate project tasks",
				slog.Int64("project_id", projects[i].ID),
				slog.Any("error", r.Err),
			)
			return nil, fmt.Errorf("fetching tasks for project %d: %w", projects[i].ID, r.Err)
		}
		projects[i].Tasks = r.Value
	}

	return projects, nil
}
