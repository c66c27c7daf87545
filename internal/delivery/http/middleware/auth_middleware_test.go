package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"corpgate/internal/domain/entity"
	"corpgate/internal/domain/repository"
	"corpgate/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTokenService resolves tokens from a fixed map.
type stubTokenService struct {
	claims map[string]*service.AccessClaims
}

func (s *stubTokenService) IssueAccessToken(user *entity.User) (string, error) {
	return "access-" + user.Email, nil
}

func (s *stubTokenService) VerifyAccessToken(tokenString string) *service.AccessClaims {
	return s.claims[tokenString]
}

func (s *stubTokenService) NewRefreshToken() (string, error) { return "refresh", nil }

func (s *stubTokenService) RefreshTokenTTL() time.Duration { return time.Hour }

// stubUserRepo only serves FindByID; the gates need nothing else.
type stubUserRepo struct {
	repository.UserRepository
	users map[uuid.UUID]*entity.User
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}

	return nil, repository.ErrUserNotFound
}

// stubTableRepo only serves FindOwner.
type stubTableRepo struct {
	repository.TableRepository
	owners map[string]uuid.UUID
}

func (s *stubTableRepo) FindOwner(_ context.Context, _ entity.TableConfig, recordID string) (uuid.UUID, error) {
	if owner, ok := s.owners[recordID]; ok {
		return owner, nil
	}

	return uuid.Nil, repository.ErrRecordNotFound
}

type authEnv struct {
	middleware *AuthMiddleware
	users      *stubUserRepo
	tables     *stubTableRepo
	tokens     *stubTokenService
}

func newAuthEnv() *authEnv {
	users := &stubUserRepo{users: make(map[uuid.UUID]*entity.User)}
	tables := &stubTableRepo{owners: make(map[string]uuid.UUID)}
	tokens := &stubTokenService{claims: make(map[string]*service.AccessClaims)}

	return &authEnv{
		middleware: NewAuthMiddleware(tokens, users, tables),
		users:      users,
		tables:     tables,
		tokens:     tokens,
	}
}

func (env *authEnv) addUser(user *entity.User) string {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	env.users.users[user.ID] = user

	token := "token-" + user.Email
	env.tokens.claims[token] = &service.AccessClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}

	return token
}

func runRequest(t *testing.T, mw echo.MiddlewareFunc, mutate func(req *http.Request)) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := mw(func(c echo.Context) error {
		reached = true

		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	return rec, reached
}

func chain(mws ...echo.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}

		return next
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	env := newAuthEnv()

	rec, reached := runRequest(t, env.middleware.Authenticate(), nil)
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_BadScheme(t *testing.T) {
	env := newAuthEnv()

	rec, reached := runRequest(t, env.middleware.Authenticate(), func(req *http.Request) {
		req.Header.Set("Authorization", "Basic abc123")
	})
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	env := newAuthEnv()

	rec, reached := runRequest(t, env.middleware.Authenticate(), func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer forged")
	})
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_VanishedUser(t *testing.T) {
	env := newAuthEnv()
	env.tokens.claims["orphan"] = &service.AccessClaims{UserID: uuid.New()}

	rec, reached := runRequest(t, env.middleware.Authenticate(), func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer orphan")
	})
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_InactiveBlocked(t *testing.T) {
	env := newAuthEnv()
	token := env.addUser(&entity.User{Email: "new@example.com", Role: "user", Status: entity.StatusInactive})

	rec, reached := runRequest(t, env.middleware.Authenticate(), func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthenticate_InactiveAdmittedWithCapability(t *testing.T) {
	env := newAuthEnv()
	token := env.addUser(&entity.User{Email: "new@example.com", Role: "user", Status: entity.StatusInactive})

	_, reached := runRequest(t, env.middleware.Authenticate(CapInactiveAccess), func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.True(t, reached)
}

func TestAuthenticate_SetsFreshUser(t *testing.T) {
	env := newAuthEnv()
	user := &entity.User{Email: "alice@example.com", Role: "user", Status: entity.StatusActive}
	token := env.addUser(user)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := env.middleware.Authenticate()(func(c echo.Context) error {
		current := CurrentUser(c)
		require.NotNil(t, current)
		assert.Equal(t, user.ID, current.ID)
		assert.Equal(t, "alice@example.com", current.Email)

		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	env := newAuthEnv()
	adminToken := env.addUser(&entity.User{Email: "root@example.com", Role: "ADMIN", Status: entity.StatusActive})
	userToken := env.addUser(&entity.User{Email: "user@example.com", Role: "user", Status: entity.StatusActive})

	gate := chain(env.middleware.Authenticate(), env.middleware.RequireAdmin())

	_, reached := runRequest(t, gate, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+adminToken)
	})
	assert.True(t, reached, "role comparison is case-insensitive")

	rec, reached := runRequest(t, gate, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+userToken)
	})
	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequirePageAccess(t *testing.T) {
	env := newAuthEnv()
	allowed := env.addUser(&entity.User{Email: "a@example.com", Role: "user", Status: entity.StatusActive, AllowedPages: []string{"orders"}})
	denied := env.addUser(&entity.User{Email: "b@example.com", Role: "user", Status: entity.StatusActive})
	admin := env.addUser(&entity.User{Email: "root@example.com", Role: "admin", Status: entity.StatusActive})

	gate := chain(env.middleware.Authenticate(), env.middleware.RequirePageAccess("orders"))

	_, reached := runRequest(t, gate, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+allowed)
	})
	assert.True(t, reached)

	rec, reached := runRequest(t, gate, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+denied)
	})
	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	_, reached = runRequest(t, gate, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+admin)
	})
	assert.True(t, reached, "admins bypass the allowlist")
}

func ownershipBody(table, recordID string) *strings.Reader {
	payload, _ := json.Marshal(map[string]string{
		"table":    table,
		"recordId": recordID,
		"status":   "Solved",
	})

	return strings.NewReader(string(payload))
}

func TestRequireOwnership(t *testing.T) {
	env := newAuthEnv()
	owner := &entity.User{Email: "owner@example.com", Role: "user", Status: entity.StatusActive}
	ownerToken := env.addUser(owner)
	strangerToken := env.addUser(&entity.User{Email: "other@example.com", Role: "user", Status: entity.StatusActive})
	adminToken := env.addUser(&entity.User{Email: "root@example.com", Role: "admin", Status: entity.StatusActive})
	env.tables.owners["7"] = owner.ID

	gate := chain(env.middleware.Authenticate(), env.middleware.RequireOwnership())

	newReq := func(token, table, recordID string) func(req *http.Request) {
		return func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
			req.Body = httptest.NewRequest(http.MethodPost, "/", ownershipBody(table, recordID)).Body
		}
	}

	_, reached := runRequest(t, gate, newReq(ownerToken, "Issues", "7"))
	assert.True(t, reached, "creator passes")

	rec, reached := runRequest(t, gate, newReq(strangerToken, "Issues", "7"))
	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	_, reached = runRequest(t, gate, newReq(adminToken, "Issues", "7"))
	assert.True(t, reached, "admins bypass ownership")

	rec, reached = runRequest(t, gate, newReq(ownerToken, "Issues", "404"))
	assert.False(t, reached)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, reached = runRequest(t, gate, newReq(ownerToken, "Issues", ""))
	assert.False(t, reached)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, reached = runRequest(t, gate, newReq(ownerToken, "Facilities", "7"))
	assert.False(t, reached)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "non-ownership tables cannot be gated")
}
