package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "corpgate/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderError(t *testing.T, err error) (int, map[string]any) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.HandleHTTPError(err, c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec.Code, body
}

func TestHandleHTTPError_BusinessError(t *testing.T) {
	code, body := renderError(t, domainerrors.ErrInvalidCredentials)

	assert.Equal(t, http.StatusOK, code, "business failures ride on HTTP 200")
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Invalid email or password", body["message"])
}

func TestHandleHTTPError_WrappedBusinessError(t *testing.T) {
	wrapped := errors.Wrap(domainerrors.ErrTokenExpired, "refresh failed")

	code, body := renderError(t, wrapped)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Refresh token expired", body["message"])
}

func TestHandleHTTPError_TransportError(t *testing.T) {
	code, body := renderError(t, domainerrors.ErrForbidden)

	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Access denied", body["message"])
}

func TestHandleHTTPError_EchoHTTPError(t *testing.T) {
	code, body := renderError(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"))

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, body["ok"])
}

func TestHandleHTTPError_UnexpectedError(t *testing.T) {
	code, body := renderError(t, errors.New("pq: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, false, body["ok"])
	// Internals never leak to the client.
	assert.Equal(t, "Internal server error", body["message"])
}

func TestHandleHTTPError_CommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, c.NoContent(http.StatusOK))

	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.HandleHTTPError(errors.New("late failure"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String(), "committed responses are left alone")
}
