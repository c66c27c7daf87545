package usecase

import (
	"context"

	"corpgate/internal/domain/entity"
)

// CreateUserInput defines the data required to provision a new account.
type CreateUserInput struct {
	Email        string
	Username     string
	Role         string
	AllowedPages []string
}

// CreateUserOutput returns the new account together with its generated
// temporary password. The password is shown exactly once.
type CreateUserOutput struct {
	User         *entity.User
	TempPassword string
}

// AdminUsecase defines the interface for account administration.
type AdminUsecase interface {
	// ListUsers returns every account.
	ListUsers(ctx context.Context) ([]*entity.User, error)

	// CreateUser provisions an Inactive account with a temporary password.
	CreateUser(ctx context.Context, input CreateUserInput) (*CreateUserOutput, error)

	// SetAllowedPages replaces a user's page allowlist.
	SetAllowedPages(ctx context.Context, email string, pages []string) error

	// SetUserStatus switches an account between Active and Inactive.
	SetUserStatus(ctx context.Context, email string, status entity.Status) error

	// SetUserRole replaces a user's role.
	SetUserRole(ctx context.Context, email string, role string) error

	// DeleteUser removes an account. Admins cannot delete themselves.
	DeleteUser(ctx context.Context, actorEmail, email string) error

	// ResetPassword issues a new temporary password and forces the
	// account Inactive so the owner has to pick a new one.
	ResetPassword(ctx context.Context, email string) (string, error)
}
