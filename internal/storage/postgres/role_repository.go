package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"taskmanager-api/internal/domain/role"
	"taskmanager-api/internal/ports"
)

// Compile-time check that RoleRepository implements ports.RoleRepository.
var _ ports.RoleRepository = (*RoleRepository)(nil)

// RoleRepository reads the role reference data seeded at bootstrap.
type RoleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository creates a RoleRepository on the given pool.
func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

// FindByName returns the role with the given name.
func (r *RoleRepository) FindByName(ctx context.Context, name string) (*role.Role, error) {
	var ro role.Role
	err := r.pool.QueryRow(ctx,
		"SELECT id, name FROM roles WHERE name = $1", name,
	).Scan(&ro.ID, &ro.Name)
	if err != nil {
		return nil, mapError(fmt.Sprintf("fetching role %q", name), err)
	}
	return &ro, nil
}
