package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"taskmanager-api/internal/domain/role"
	"taskmanager-api/internal/domain/user"
	"taskmanager-api/internal/ports"
)

// Compile-time check that UserRepository implements ports.UserRepository.
var _ ports.UserRepository = (*UserRepository)(nil)

// UserRepository persists users and their role assignments.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a UserRepository on the given pool.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = "id, username, password_hash, first_name, last_name, created_at, updated_at"

// FindByID returns the user with the given id, roles included.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return r.scanUser(ctx, row)
}

// FindByUsername returns the user with the given username, roles included.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = $1", username)
	return r.scanUser(ctx, row)
}

// FindAll returns every user, roles included, ordered by id.
func (r *UserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id ASC")
	if err != nil {
		return nil, mapError("listing users", err)
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash,
			&u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, mapError("scanning user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("listing users", err)
	}

	for i := range users {
		roles, err := r.rolesForUser(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
		users[i].Roles = roles
	}
	return users, nil
}

// Save inserts a new user and its role assignments in one transaction.
// A taken username surfaces as domain.ErrConflict.
func (r *UserRepository) Save(ctx context.Context, u *user.User) (*user.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, mapError("beginning transaction", err)
	}
	defer tx.Rollback(ctx)

	saved := *u
	err = tx.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, first_name, last_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		u.Username, u.PasswordHash, u.FirstName, u.LastName,
	).Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return nil, mapError(fmt.Sprintf("inserting user %q", u.Username), err)
	}

	for _, ro := range u.Roles {
		if _, err := tx.Exec(ctx,
			"INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)",
			saved.ID, ro.ID); err != nil {
			return nil, mapError("assigning role", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapError("committing user", err)
	}
	return &saved, nil
}

func (r *UserRepository) scanUser(ctx context.Context, row pgx.Row) (*user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapError("fetching user", err)
	}

	roles, err := r.rolesForUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Roles = roles
	return &u, nil
}

func (r *UserRepository) rolesForUser(ctx context.Context, userID int64) ([]role.Role, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT r.id, r.name FROM roles r
		 JOIN user_roles ur ON ur.role_id = r.id
		 WHERE ur.user_id = $1
		 ORDER BY r.id ASC`, userID)
	if err != nil {
		return nil, mapError("fetching roles", err)
	}
	defer rows.Close()

	roles := make([]role.Role, 0)
	for rows.Next() {
		var ro role.Role
		if err := rows.Scan(&ro.ID, &ro.Name); err != nil {
			return nil, mapError("scanning role", err)
		}
		roles = append(roles, ro)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("fetching roles", err)
	}
	return roles, nil
}
