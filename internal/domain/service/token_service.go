package service

import (
	"time"

	"corpgate/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims is the identity carried by a signed access token.
// Exactly these three fields are recoverable from a verified token;
// everything else about the user is re-fetched from storage.
type AccessClaims struct {
	UserID uuid.UUID
	Email  string
	Role   string
	jwt.RegisteredClaims
}

// TokenService issues and verifies access tokens and mints the opaque
// refresh-token values that key persisted sessions.
type TokenService interface {
	// IssueAccessToken creates a short-lived signed token for the user.
	IssueAccessToken(user *entity.User) (string, error)

	// VerifyAccessToken checks signature and expiry of a token string.
	// It returns the embedded claims, or nil on any failure; it never
	// reports why verification failed.
	VerifyAccessToken(tokenString string) *AccessClaims

	// NewRefreshToken mints a fresh opaque session token.
	NewRefreshToken() (string, error)

	// RefreshTokenTTL returns the configured session lifetime.
	RefreshTokenTTL() time.Duration
}
