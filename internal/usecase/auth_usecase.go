// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"corpgate/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// LoginInput defines the data required for a user to log in.
// IPAddress and UserAgent are recorded on the created session.
type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

// ChangePasswordInput defines the data required to change a password.
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// --- Output DTOs ---

// LoginOutput returns the generated tokens after a successful login.
// RefreshToken is empty and NeedsPasswordSetup true when the account has
// not picked its own password yet.
type LoginOutput struct {
	AccessToken        string
	RefreshToken       string
	NeedsPasswordSetup bool
	User               *entity.User
}

// RefreshOutput returns a new access token for a live session.
// The refresh token itself is not rotated.
type RefreshOutput struct {
	AccessToken string
	User        *entity.User
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Login authenticates with email and password.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// Logout deletes the session holding the token. Unknown tokens are
	// treated as already logged out.
	Logout(ctx context.Context, refreshToken string) error

	// Refresh exchanges a live refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (*RefreshOutput, error)

	// SetInitialPassword lets an account that never picked its own
	// password store one. Allowed only while the account is Inactive.
	SetInitialPassword(ctx context.Context, userID uuid.UUID, newPassword string) error

	// ChangePassword replaces the password after verifying the current
	// one, and revokes every session of the user.
	ChangePassword(ctx context.Context, input ChangePasswordInput) error

	// Me returns the caller's user record.
	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// CleanupExpiredSessions deletes all expired sessions and returns
	// how many were removed.
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}
