package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"taskmanager-api/internal/domain"
	"taskmanager-api/internal/domain/project"
	"taskmanager-api/internal/ports"
)

// Compile-time check that ProjectRepository implements ports.ProjectRepository.
var _ ports.ProjectRepository = (*ProjectRepository)(nil)

// ProjectRepository persists project records. Task lists are hydrated by the
// service layer, not here.
type ProjectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository creates a ProjectRepository on the given pool.
func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

const projectColumns = "id, name, user_id, created_at, updated_at"

// FindByID returns the project with the given id.
func (r *ProjectRepository) FindByID(ctx context.Context, id int64) (*project.Project, error) {
	var p project.Project
	err := r.pool.QueryRow(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE id = $1", id,
	).Scan(&p.ID, &p.Name, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapError("fetching project", err)
	}
	return &p, nil
}

// FindAll returns every project ordered by id.
func (r *ProjectRepository) FindAll(ctx context.Context) ([]project.Project, error) {
	return r.queryProjects(ctx,
		"SELECT "+projectColumns+" FROM projects ORDER BY id ASC")
}

// FindByUserID returns the projects owned by the given user, ordered by id.
func (r *ProjectRepository) FindByUserID(ctx context.Context, userID int64) ([]project.Project, error) {
	return r.queryProjects(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE user_id = $1 ORDER BY id ASC", userID)
}

// Save inserts a new project and returns it with its generated id and
// timestamps.
func (r *ProjectRepository) Save(ctx context.Context, p *project.Project) (*project.Project, error) {
	saved := *p
	err := r.pool.QueryRow(ctx,
		`INSERT INTO projects (name, user_id) VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		p.Name, p.UserID,
	).Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return nil, mapError("inserting project", err)
	}
	return &saved, nil
}

// Delete removes a project; tasks go with it via ON DELETE CASCADE.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		return mapError("deleting project", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) queryProjects(ctx context.Context, sql string, args ...any) ([]project.Project, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError("listing projects", err)
	}
	defer rows.Close()

	projects := make([]project.Project, 0)
	for rows.Next() {
		var p project.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, mapError("scanning project", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("listing projects", err)
	}
	return projects, nil
}
