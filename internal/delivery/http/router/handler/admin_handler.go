package handler

import (
	"log/slog"
	"net/http"

	"corpgate/internal/delivery/http/middleware"
	"corpgate/internal/delivery/http/response"
	"corpgate/internal/domain/entity"
	domainerrors "corpgate/internal/domain/errors"
	"corpgate/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for account-administration handlers.
// Every route behind it already passed the admin gate.
type AdminHandler struct {
	uc     usecase.AdminUsecase
	logger *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		uc:     uc,
		logger: logger,
	}
}

type listUsersResponse struct {
	response.Envelope
	Users []userPayload `json:"users"`
}

// ListUsers returns every account.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	payloads := make([]userPayload, 0, len(users))
	for _, user := range users {
		payloads = append(payloads, toUserPayload(user))
	}

	return c.JSON(http.StatusOK, listUsersResponse{
		Envelope: response.Success(),
		Users:    payloads,
	})
}

type createUserRequest struct {
	Email        string   `json:"email" validate:"required,email"`
	Username     string   `json:"username"`
	Role         string   `json:"role"`
	AllowedPages []string `json:"allowedPages"`
}

type createUserResponse struct {
	response.Envelope
	User         userPayload `json:"user"`
	TempPassword string      `json:"tempPassword"`
}

// CreateUser provisions a new Inactive account. The temporary password
// appears in this response and nowhere else.
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var input createUserRequest
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CreateUser(c.Request().Context(), usecase.CreateUserInput{
		Email:        input.Email,
		Username:     input.Username,
		Role:         input.Role,
		AllowedPages: input.AllowedPages,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, createUserResponse{
		Envelope:     response.Success(),
		User:         toUserPayload(output.User),
		TempPassword: output.TempPassword,
	})
}

type setAllowedPagesRequest struct {
	Email        string   `json:"email" validate:"required,email"`
	AllowedPages []string `json:"allowedPages"`
}

// SetAllowedPages replaces a user's page allowlist.
func (h *AdminHandler) SetAllowedPages(c echo.Context) error {
	var input setAllowedPagesRequest
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.SetAllowedPages(c.Request().Context(), input.Email, input.AllowedPages); err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("Pages updated"))
}

type setUserStatusRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Status string `json:"status" validate:"required"`
}

// SetUserStatus switches an account between Active and Inactive.
func (h *AdminHandler) SetUserStatus(c echo.Context) error {
	var input setUserStatusRequest
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.SetUserStatus(c.Request().Context(), input.Email, entity.Status(input.Status)); err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("Status updated"))
}

type setUserRoleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

// SetUserRole replaces a user's role.
func (h *AdminHandler) SetUserRole(c echo.Context) error {
	var input setUserRoleRequest
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.SetUserRole(c.Request().Context(), input.Email, input.Role); err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("Role updated"))
}

type deleteUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// DeleteUser removes an account. Deleting your own account is refused.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return response.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
	}

	var input deleteUserRequest
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.DeleteUser(c.Request().Context(), actor.Email, input.Email); err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("User deleted"))
}

type resetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordResponse struct {
	response.Envelope
	TempPassword string `json:"tempPassword"`
}

// ResetPassword issues a new temporary password and forces the account
// Inactive.
func (h *AdminHandler) ResetPassword(c echo.Context) error {
	var input resetPasswordRequest
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	tempPassword, err := h.uc.ResetPassword(c.Request().Context(), input.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, resetPasswordResponse{
		Envelope:     response.Success(),
		TempPassword: tempPassword,
	})
}
