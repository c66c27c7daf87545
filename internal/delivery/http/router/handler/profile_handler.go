package handler

import (
	"log/slog"
	"net/http"
	"time"

	"corpgate/internal/delivery/http/middleware"
	"corpgate/internal/delivery/http/response"
	"corpgate/internal/domain/entity"
	domainerrors "corpgate/internal/domain/errors"
	"corpgate/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler serves the caller's employment profile.
type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		uc:     uc,
		logger: logger,
	}
}

type profilePayload struct {
	EmployeeID   string     `json:"employeeId"`
	NationalID   string     `json:"nationalId"`
	SCFHSID      string     `json:"scfhsId"`
	DOB          string     `json:"dob"`
	Gender       string     `json:"gender"`
	JobTitle     string     `json:"jobTitle"`
	Specialty    string     `json:"specialty"`
	NetworkID    string     `json:"networkId"`
	SupervisorID string     `json:"supervisorId"`
	FullNameAR   string     `json:"fullnameAr"`
	FullNameEN   string     `json:"fullnameEn"`
	FacilityID   string     `json:"facilityId"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	Comments     string     `json:"comments"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

func toProfilePayload(profile *entity.Profile) profilePayload {
	payload := profilePayload{
		EmployeeID:   profile.EmployeeID,
		NationalID:   profile.NationalID,
		SCFHSID:      profile.SCFHSID,
		DOB:          profile.DOB,
		Gender:       profile.Gender,
		JobTitle:     profile.JobTitle,
		Specialty:    profile.Specialty,
		NetworkID:    profile.NetworkID,
		SupervisorID: profile.SupervisorID,
		FullNameAR:   profile.FullNameAR,
		FullNameEN:   profile.FullNameEN,
		FacilityID:   profile.FacilityID,
		Phone:        profile.Phone,
		Address:      profile.Address,
		Comments:     profile.Comments,
	}
	if !profile.UpdatedAt.IsZero() {
		updatedAt := profile.UpdatedAt
		payload.UpdatedAt = &updatedAt
	}

	return payload
}

type profileResponse struct {
	response.Envelope
	Profile profilePayload `json:"profile"`
}

// Get returns the caller's profile, empty if never saved.
func (h *ProfileHandler) Get(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
	}

	profile, err := h.uc.GetProfile(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, profileResponse{
		Envelope: response.Success(),
		Profile:  toProfilePayload(profile),
	})
}

type upsertProfileRequest struct {
	EmployeeID   string `json:"employeeId"`
	NationalID   string `json:"nationalId"`
	SCFHSID      string `json:"scfhsId"`
	DOB          string `json:"dob"`
	Gender       string `json:"gender"`
	JobTitle     string `json:"jobTitle"`
	Specialty    string `json:"specialty"`
	NetworkID    string `json:"networkId"`
	SupervisorID string `json:"supervisorId"`
	FullNameAR   string `json:"fullnameAr"`
	FullNameEN   string `json:"fullnameEn"`
	FacilityID   string `json:"facilityId"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Comments     string `json:"comments"`
}

// Upsert saves the caller's profile.
func (h *ProfileHandler) Upsert(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
	}

	var input upsertProfileRequest
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed)
	}

	profile, err := h.uc.SaveProfile(c.Request().Context(), user.ID, usecase.SaveProfileInput{
		EmployeeID:   input.EmployeeID,
		NationalID:   input.NationalID,
		SCFHSID:      input.SCFHSID,
		DOB:          input.DOB,
		Gender:       input.Gender,
		JobTitle:     input.JobTitle,
		Specialty:    input.Specialty,
		NetworkID:    input.NetworkID,
		SupervisorID: input.SupervisorID,
		FullNameAR:   input.FullNameAR,
		FullNameEN:   input.FullNameEN,
		FacilityID:   input.FacilityID,
		Phone:        input.Phone,
		Address:      input.Address,
		Comments:     input.Comments,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, profileResponse{
		Envelope: response.Success(),
		Profile:  toProfilePayload(profile),
	})
}
