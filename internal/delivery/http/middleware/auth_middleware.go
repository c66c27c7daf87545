package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"corpgate/internal/delivery/http/response"
	"corpgate/internal/domain/entity"
	"corpgate/internal/domain/repository"
	"corpgate/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RouteCapability tags a route with behavior the middleware chain keys
// on. Tags are declared explicitly at registration time; nothing is
// inferred from the request path.
type RouteCapability string

// CapInactiveAccess admits Inactive accounts. Only the initial password
// setup route carries it.
const CapInactiveAccess RouteCapability = "inactive-access"

// contextKeyUser is where Authenticate stores the freshly fetched user.
const contextKeyUser = "auth.user"

// AuthMiddleware provides the ordered authorization gates. Every request
// re-fetches the user, so role or status changes take effect on the
// next call without waiting for token expiry.
type AuthMiddleware struct {
	tokens    service.TokenService
	userRepo  repository.UserRepository
	tableRepo repository.TableRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(
	tokens service.TokenService,
	userRepo repository.UserRepository,
	tableRepo repository.TableRepository,
) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:    tokens,
		userRepo:  userRepo,
		tableRepo: tableRepo,
	}
}

// CurrentUser returns the authenticated user set by Authenticate, or nil.
func CurrentUser(c echo.Context) *entity.User {
	user, _ := c.Get(contextKeyUser).(*entity.User)

	return user
}

// SetCurrentUser attaches the authenticated user to the request context.
func SetCurrentUser(c echo.Context, user *entity.User) {
	c.Set(contextKeyUser, user)
}

// Authenticate validates the bearer token, re-fetches the user and runs
// the status gate. Capabilities widen what the route admits.
func (m *AuthMiddleware) Authenticate(caps ...RouteCapability) echo.MiddlewareFunc {
	allowInactive := false
	for _, cap := range caps {
		if cap == CapInactiveAccess {
			allowInactive = true
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return response.Fail(c, http.StatusUnauthorized, "Authorization header is missing")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return response.Fail(c, http.StatusUnauthorized, "Invalid token format, must be Bearer token")
			}

			claims := m.tokens.VerifyAccessToken(tokenString)
			if claims == nil {
				return response.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
			}

			// Claims only identify the user; everything else comes from
			// storage so revocations are seen immediately.
			user, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return response.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
				}

				return errors.Wrap(err, "failed to load user for auth")
			}

			if user.Status != entity.StatusActive && !allowInactive {
				return response.Fail(c, http.StatusForbidden, "User account is inactive")
			}

			SetCurrentUser(c, user)

			return next(c)
		}
	}
}

// RequireAdmin admits only admin accounts. Must run after Authenticate.
func (m *AuthMiddleware) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil || !user.IsAdmin() {
				return response.Fail(c, http.StatusForbidden, "Access denied")
			}

			return next(c)
		}
	}
}

// RequirePageAccess admits users whose allowlist contains the page.
// Admins bypass the allowlist. Must run after Authenticate.
func (m *AuthMiddleware) RequirePageAccess(page string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil || !user.CanAccessPage(page) {
				return response.Fail(c, http.StatusForbidden, "Access denied")
			}

			return next(c)
		}
	}
}

// ownershipRequest is the slice of the request body the ownership gate
// needs. The full body is restored for the handler afterwards.
type ownershipRequest struct {
	Table    string `json:"table"`
	RecordID string `json:"recordId"`
	ID       string `json:"id"`
}

// RequireOwnership admits the creator of the addressed record, or any
// admin. The record id is taken from the body, falling back to the
// param and query. Must run after Authenticate.
func (m *AuthMiddleware) RequireOwnership() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return response.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
			}
			if user.IsAdmin() {
				return next(c)
			}

			req, err := m.peekOwnershipRequest(c)
			if err != nil {
				return errors.Wrap(err, "failed to read request body")
			}

			recordID := req.RecordID
			if recordID == "" {
				recordID = req.ID
			}
			if recordID == "" {
				recordID = c.Param("id")
			}
			if recordID == "" {
				recordID = c.QueryParam("id")
			}
			if recordID == "" {
				return response.Fail(c, http.StatusBadRequest, "Record id is required")
			}

			cfg, ok := entity.LookupTable(req.Table)
			if !ok || !cfg.OwnershipScoped() {
				return response.Fail(c, http.StatusBadRequest, "Invalid table name")
			}

			owner, err := m.tableRepo.FindOwner(c.Request().Context(), cfg, recordID)
			if err != nil {
				if errors.Is(err, repository.ErrRecordNotFound) {
					return response.Fail(c, http.StatusNotFound, "Record not found")
				}

				return errors.Wrap(err, "failed to resolve record owner")
			}

			if owner != user.ID {
				return response.Fail(c, http.StatusForbidden, "Access denied")
			}

			return next(c)
		}
	}
}

// peekOwnershipRequest reads the body for the gate's fields and puts it
// back so the handler can still bind it.
func (m *AuthMiddleware) peekOwnershipRequest(c echo.Context) (*ownershipRequest, error) {
	req := &ownershipRequest{}

	body := c.Request().Body
	if body == nil {
		return req, nil
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	c.Request().Body = io.NopCloser(bytes.NewReader(raw))

	if len(raw) > 0 {
		// Malformed JSON is left for the handler's bind to reject.
		_ = json.Unmarshal(raw, req)
	}

	return req, nil
}
