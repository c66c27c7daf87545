package usecase

import (
	"context"

	"corpgate/internal/domain/entity"

	"github.com/google/uuid"
)

// SaveProfileInput carries the employment-profile fields a user may edit.
type SaveProfileInput struct {
	EmployeeID   string
	NationalID   string
	SCFHSID      string
	DOB          string
	Gender       string
	JobTitle     string
	Specialty    string
	NetworkID    string
	SupervisorID string
	FullNameAR   string
	FullNameEN   string
	FacilityID   string
	Phone        string
	Address      string
	Comments     string
}

// ProfileUsecase defines the interface for employment-profile operations.
type ProfileUsecase interface {
	// GetProfile returns the user's profile, or an empty one if none has
	// been saved yet.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// SaveProfile inserts or updates the user's profile.
	SaveProfile(ctx context.Context, userID uuid.UUID, input SaveProfileInput) (*entity.Profile, error)
}
