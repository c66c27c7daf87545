package repository

import (
	"context"
	"errors"

	"corpgate/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when no session matches the given refresh token.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository defines persistence operations for login sessions.
type SessionRepository interface {
	// Create persists a new session row.
	Create(ctx context.Context, session *entity.Session) error

	// FindByToken looks up a session by its refresh-token value together
	// with the owning user, regardless of expiry. Expiry handling is the
	// caller's concern.
	FindByToken(ctx context.Context, refreshToken string) (*entity.Session, *entity.User, error)

	// DeleteByToken removes the session holding the given token.
	// Deleting an absent token is not an error.
	DeleteByToken(ctx context.Context, refreshToken string) error

	// DeleteByUserID removes every session belonging to the user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	// DeleteExpired removes all sessions past their expiry and reports how many.
	DeleteExpired(ctx context.Context) (int64, error)
}
