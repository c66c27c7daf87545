package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"corpgate/internal/delivery/http/middleware"
	"corpgate/internal/delivery/http/validator"
	"corpgate/internal/domain/entity"
	"corpgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthUsecase records the password-setup call; other operations are
// not exercised by these tests.
type stubAuthUsecase struct {
	usecase.AuthUsecase

	setUserID   uuid.UUID
	setPassword string
}

func (s *stubAuthUsecase) SetInitialPassword(_ context.Context, userID uuid.UUID, newPassword string) error {
	s.setUserID = userID
	s.setPassword = newPassword

	return nil
}

func newSetupContext(body string, user *entity.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(http.MethodPost, "/user/setInitialPassword", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetCurrentUser(c, user)

	return c, rec
}

func TestSetInitialPassword_BindsNewPasswordField(t *testing.T) {
	uc := &stubAuthUsecase{}
	h := NewAuthHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	user := &entity.User{ID: uuid.New(), Email: "new@example.com", Status: entity.StatusInactive}

	c, rec := newSetupContext(`{"newPassword":"chosen1"}`, user)
	require.NoError(t, h.SetInitialPassword(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID, uc.setUserID)
	assert.Equal(t, "chosen1", uc.setPassword)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
}

func TestSetInitialPassword_RejectsWrongFieldName(t *testing.T) {
	uc := &stubAuthUsecase{}
	h := NewAuthHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	user := &entity.User{ID: uuid.New(), Email: "new@example.com", Status: entity.StatusInactive}

	c, _ := newSetupContext(`{"password":"chosen1"}`, user)
	err := h.SetInitialPassword(c)
	require.Error(t, err)
	assert.Empty(t, uc.setPassword)
}

func TestSetInitialPassword_RejectsShortPassword(t *testing.T) {
	uc := &stubAuthUsecase{}
	h := NewAuthHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	user := &entity.User{ID: uuid.New(), Email: "new@example.com", Status: entity.StatusInactive}

	c, _ := newSetupContext(`{"newPassword":"abc"}`, user)
	err := h.SetInitialPassword(c)
	require.Error(t, err)
	assert.Empty(t, uc.setPassword)
}
