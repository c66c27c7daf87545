package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the employment details a user maintains about themselves.
// At most one profile exists per user; saving is an upsert.
type Profile struct {
	ID           int64
	UserID       uuid.UUID
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
	UpdatedAt    time.Time
}
