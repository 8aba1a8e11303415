package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"taskmanager-api/internal/domain/task"
	"taskmanager-api/internal/ports"
)

// Compile-time check that TaskRepository implements ports.TaskRepository.
var _ ports.TaskRepository = (*TaskRepository)(nil)

// TaskRepository reads task records. The HTTP surface never mutates tasks,
// so this repository is read-only.
type TaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a TaskRepository on the given pool.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// FindByProjectID returns the tasks belonging to a project, ordered by id.
func (r *TaskRepository) FindByProjectID(ctx context.Context, projectID int64) ([]task.Task, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, description, status, project_id, created_at, updated_at
		 FROM tasks WHERE project_id = $1 ORDER BY id ASC`, projectID)
	if err != nil {
		return nil, mapError("listing tasks", err)
	}
	defer rows.Close()

	tasks := make([]task.Task, 0)
	for rows.Next() {
		var t task.Task
		var status string
		if err := rows.Scan(&t.ID, &t.Description, &status, &t.ProjectID,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, mapError("scanning task", err)
		}
		t.Status = task.Status(status)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("listing tasks", err)
	}
	return tasks, nil
}
