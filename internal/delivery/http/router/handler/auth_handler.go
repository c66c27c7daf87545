// Package handler contains the HTTP handlers for the application.
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

// userPayload is the user summary embedded in auth responses.
type userPayload struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	Role         string     `json:"role"`
	Status       string     `json:"status"`
	AllowedPages []string   `json:"allowedPages"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}

func toUserPayload(user *entity.User) userPayload {
	pages := user.AllowedPages
	if pages == nil {
		pages = []string{}
	}

	return userPayload{
		ID:           user.ID.String(),
		Email:        user.Email,
		Username:     user.Username,
		Role:         user.Role,
		Status:       string(user.Status),
		AllowedPages: pages,
		LastLogin:    user.LastLogin,
	}
}

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	response.Envelope
	AccessToken        string      `json:"accessToken"`
	RefreshToken       string      `json:"refreshToken,omitempty"`
	NeedsPasswordSetup bool        `json:"needsPasswordSetup,omitempty"`
	User               userPayload `json:"user"`
	Pages              []string    `json:"pages"`
}

// Login handles the login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:     input.Email,
		Password:  input.Password,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	user := toUserPayload(output.User)

	return c.JSON(http.StatusOK, loginResponse{
		Envelope:           response.Success(),
		AccessToken:        output.AccessToken,
		RefreshToken:       output.RefreshToken,
		NeedsPasswordSetup: output.NeedsPasswordSetup,
		User:               user,
		Pages:              user.AllowedPages,
	})
}

type tokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Logout handles the logout request. Unknown tokens still succeed.
func (h *AuthHandler) Logout(c echo.Context) error {
	var input tokenRequest
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed)
	}

	if err := h.uc.Logout(c.Request().Context(), input.RefreshToken); err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("Logged out"))
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type refreshResponse struct {
	response.Envelope
	AccessToken string      `json:"accessToken"`
	User        userPayload `json:"user"`
}

// Refresh handles the access-token refresh request.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var input refreshRequest
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Refresh(c.Request().Context(), input.RefreshToken)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, refreshResponse{
		Envelope:    response.Success(),
		AccessToken: output.AccessToken,
		User:        toUserPayload(output.User),
	})
}

type setInitialPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=4"`
}

// SetInitialPassword stores the first self-chosen password of an
// Inactive account. The route carries the inactive-access capability.
func (h *AuthHandler) SetInitialPassword(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
	}

	var input setInitialPasswordRequest
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.SetInitialPassword(c.Request().Context(), user.ID, input.NewPassword); err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("Password set"))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=4"`
}

// ChangePassword replaces the caller's password and revokes all of
// their sessions.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
	}

	var input changePasswordRequest
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	err := h.uc.ChangePassword(c.Request().Context(), usecase.ChangePasswordInput{
		UserID:          user.ID,
		CurrentPassword: input.CurrentPassword,
		NewPassword:     input.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("Password changed"))
}

type meResponse struct {
	response.Envelope
	User userPayload `json:"user"`
}

// Me returns the caller's own account.
func (h *AuthHandler) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
	}

	found, err := h.uc.Me(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, meResponse{
		Envelope: response.Success(),
		User:     toUserPayload(found),
	})
}
