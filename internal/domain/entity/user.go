// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a user account.
type Status string

const (
	// StatusActive marks an account that may log in and use the portal.
	StatusActive Status = "Active"

	// StatusInactive marks a freshly provisioned account that still has to
	// set its own password, or an account an admin has switched off.
	StatusInactive Status = "Inactive"
)

// Valid reports whether the status is one of the known states.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// AdminRole is the privileged role name. Comparison is case-insensitive.
const AdminRole = "admin"

// User is the core entity of the portal, representing one account.
type User struct {
	ID           uuid.UUID  // The unique identifier for the user.
	Email        string     // The login identifier; stored lowercased and trimmed.
	Username     string     // Display name shown in the portal.
	PasswordHash string     // bcrypt hash of the current password.
	Role         string     // Free-form role name; "admin" (any casing) is privileged.
	Status       Status     // Active or Inactive.
	AllowedPages []string   // Pages the user may open; set semantics.
	LastLogin    *time.Time // Timestamp of the most recent successful login.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user carries the privileged role.
func (u *User) IsAdmin() bool {
	return strings.EqualFold(u.Role, AdminRole)
}

// CanAccessPage reports whether the user may open the given page.
// Admins bypass the page allowlist entirely.
func (u *User) CanAccessPage(page string) bool {
	if u.IsAdmin() {
		return true
	}

	return slices.Contains(u.AllowedPages, page)
}

// NormalizeEmail canonicalizes an email for lookup and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
