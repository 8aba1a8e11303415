// Package project defines the Project entity.
package project

import (
	"strings"
	"time"

	"taskmanager-api/internal/domain"
	"taskmanager-api/internal/domain/task"
)

// Project represents a named collection of tasks owned by a single user.
// Tasks is populated only on read paths that hydrate the task list.
type Project struct {
	ID        int64
	Name      string
	UserID    int64
	Tasks     []task.Task
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks business rules for the Project entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (p *Project) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(p.Name) == "" {
		fields["name"] = domain.MsgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
