// Package user defines the User entity.
package user

import (
	"strings"
	"time"

	"taskmanager-api/internal/domain"
	"taskmanager-api/internal/domain/role"
)

// User represents an account that can authenticate and own projects.
// PasswordHash is the bcrypt hash of the credential; the plaintext password
// never appears on the entity.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Roles        []role.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks business rules for the User entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (u *User) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(u.Username) == "" {
		fields["username"] = domain.MsgRequired
	}
	if u.PasswordHash == "" {
		fields["password"] = domain.MsgRequired
	}
	if len(u.Roles) == 0 {
		fields["roles"] = domain.MsgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// HasRole reports whether the user carries the given role name.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
