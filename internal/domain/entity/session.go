package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session represents one persisted login session, keyed by its opaque
// refresh token. A user may hold any number of concurrent sessions.
type Session struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	RefreshToken string // Opaque high-entropy value; unique across all sessions.
	ExpiresAt    time.Time
	IPAddress    string
	UserAgent    string
	CreatedAt    time.Time
}

// Expired reports whether the session has passed its expiry instant.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
