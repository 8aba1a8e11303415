// Package role defines the Role entity and the role names recognized by
// route-level authorization.
package role

// Role names attached to users and carried as token claims.
const (
	User  = "ROLE_USER"
	Admin = "ADMIN"
)

// Role is a named permission group. Roles are static reference data seeded
// at startup; users reference them at sign-up.
type Role struct {
	ID   int64
	Name string
}

// Names extracts the role names from a slice of roles, preserving order.
func Names(roles []Role) []string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.Name
	}
	return names
}
