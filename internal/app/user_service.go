// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"taskmanager-api/internal/domain"
	"taskmanager-api/internal/domain/role"
	"taskmanager-api/internal/domain/user"
	"taskmanager-api/internal/ports"
)

// Compile-time check that UserService implements ports.UserService.
var _ ports.UserService = (*UserService)(nil)

// UserService implements ports.UserService. It orchestrates sign-in
// (credential verification plus token issuance), sign-up (default role
// attachment plus password hashing), and user lookups.
type UserService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	hasher ports.PasswordHasher
	tokens ports.TokenProvider
	logger *slog.Logger
}

// NewUserService creates a UserService. A nil logger is replaced with a
// no-op logger.
func NewUserService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenProvider,
	logger *slog.Logger,
) *UserService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &UserService{
		users:  users,
		roles:  roles,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// SignIn authenticates a username/password pair and issues a token carrying
// the user's role claims.
//
// An unknown username is an expected business outcome, not an error: it
// yields ("", nil) and the boundary treats the empty token as access denied.
// A wrong password returns an error wrapping domain.ErrUnauthorized.
func (s *UserService) SignIn(ctx context.Context, username, password string) (string, error) {
	s.logger.InfoContext(ctx, "sign-in attempt", slog.String("username", username))

	u, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.InfoContext(ctx, "sign-in for unknown username",
			slog.String("username", username),
		)
		return "", nil
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to look up user",
			slog.String("operation", "SignIn"),
			slog.String("username", username),
			slog.Any("error", err),
		)
		return "", err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		s.logger.InfoContext(ctx, "sign-in rejected",
			slog.String("username", username),
		)
		return "", err
	}

	token, err := s.tokens.Issue(u.Username, role.Names(u.Roles))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to issue token",
			slog.String("operation", "SignIn"),
			slog.String("username", username),
			slog.Any("error", err),
		)
		return "", fmt.Errorf("issuing token: %w", err)
	}

	s.logger.InfoContext(ctx, "sign-in success", slog.String("username", username))
	return token, nil
}

// SignUp creates a new user with the default role and a hashed password.
//
// A duplicate username is an expected business outcome: it yields (nil, nil)
// and leaves the existing record unchanged. The default role is seeded at
// startup, so its absence is an infrastructure failure and propagates as an
// error.
func (s *UserService) SignUp(ctx context.Context, username, password, firstName, lastName string) (*user.User, error) {
	s.logger.InfoContext(ctx, "sign-up attempt", slog.String("username", username))

	_, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		s.logger.InfoContext(ctx, "sign-up for existing username",
			slog.String("username", username),
		)
		return nil, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	defaultRole, err := s.roles.FindByName(ctx, role.User)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to look up default role",
			slog.String("operation", "SignUp"),
			slog.String("role", role.User),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("looking up default role %q: %w", role.User, err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		Username:     username,
		PasswordHash: hashed,
		FirstName:    firstName,
		LastName:     lastName,
		Roles:        []role.Role{*defaultRole},
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	created, err := s.users.Save(ctx, u)
	if errors.Is(err, domain.ErrConflict) {
		// Lost a race against a concurrent sign-up for the same username.
		// Same outcome as the pre-check: declined, existing record wins.
		return nil, nil
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create user",
			slog.String("operation", "SignUp"),
			slog.String("username", username),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "user created",
		slog.String("username", created.Username),
		slog.Int64("id", created.ID),
	)
	return created, nil
}

// ListUsers returns all users. No pagination.
func (s *UserService) ListUsers(ctx context.Context) ([]user.User, error) {
	s.logger.InfoContext(ctx, "listing users")

	users, err := s.users.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list users",
			slog.String("operation", "ListUsers"),
			slog.Any("error", err),
		)
		return nil, err
	}
	return users, nil
}

// GetUser returns a single user by ID.
func (s *UserService) GetUser(ctx context.Context, id int64) (*user.User, error) {
	s.logger.InfoContext(ctx, "fetching user", slog.Int64("id", id))

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch user",
			slog.String("operation", "GetUser"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}
	return u, nil
}
