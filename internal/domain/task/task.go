// Package task defines the Task entity. Tasks are read-only through the HTTP
// surface; they are created and mutated by the persistence layer's owners.
package task

import (
	"fmt"
	"strings"
	"time"

	"taskmanager-api/internal/domain"
)

// Task represents a unit of work belonging to exactly one project.
type Task struct {
	ID          int64
	Description string
	Status      Status
	ProjectID   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks business rules for the Task entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (t *Task) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(t.Description) == "" {
		fields["description"] = domain.MsgRequired
	}
	if !t.Status.IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", t.Status)
	}
	if t.ProjectID <= 0 {
		fields["project_id"] = fmt.Sprintf("must be positive, got %d", t.ProjectID)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
