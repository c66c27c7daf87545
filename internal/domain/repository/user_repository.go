// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"corpgate/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their normalized email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// List returns all users ordered by creation time.
	List(ctx context.Context) ([]*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// UpdatePassword replaces the stored password hash for a user.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// UpdateLastLogin stamps the user's last successful login time.
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error

	// UpdateStatus switches an account between Active and Inactive.
	UpdateStatus(ctx context.Context, email string, status entity.Status) error

	// UpdateRole replaces the user's role.
	UpdateRole(ctx context.Context, email string, role string) error

	// UpdateAllowedPages replaces the user's page allowlist.
	UpdateAllowedPages(ctx context.Context, email string, pages []string) error

	// ResetPassword replaces the hash and forces the account Inactive,
	// so the owner has to pick a new password on next login.
	ResetPassword(ctx context.Context, email string, passwordHash string) error

	// Delete removes a user by email.
	Delete(ctx context.Context, email string) error
}
