package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// レスポンス確認用
// =====================

type mwErrorResponse struct {
	Error string `json:"error"`
}

type mwOKResponse struct {
	UserID       int64  `json:"user_id"`
	Role         string `json:"role"`
	TokenVersion int    `json:"token_version"`
}

// =====================
// UserRepository モック（middleware専用：名前衝突回避）
// =====================

type MockUserRepoForMiddleware struct {
	mock.Mock
}

func (m *MockUserRepoForMiddleware) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepoForMiddleware) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepoForMiddleware) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepoForMiddleware) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepoForMiddleware) IncrementTokenVersion(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ repository.UserRepository = (*MockUserRepoForMiddleware)(nil)

// =====================
// helper
// =====================

func mustMakeJWT(t *testing.T, secret string, sub int64, role string, tv int) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"tv":   tv,
		"iat":  1,
		"exp":  9999999999,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	return s
}

func newAuthTestEcho(cfg config.Config, extra ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()

	mws := append([]echo.MiddlewareFunc{middleware.AuthJWT(cfg)}, extra...)

	e.GET("/me", func(c echo.Context) error {
		return c.JSON(http.StatusOK, mwOKResponse{
			UserID:       c.Get(middleware.CtxUserIDKey).(int64),
			Role:         c.Get(middleware.CtxUserRoleKey).(string),
			TokenVersion: c.Get(middleware.CtxTokenVersionKey).(int),
		})
	}, mws...)

	return e
}

func runRequest(t *testing.T, e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// =====================
// AuthJWT tests
// =====================

func TestAuthJWT_ValidToken_SetsClaims(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	e := newAuthTestEcho(cfg)

	token := mustMakeJWT(t, "test-secret", 7, "seller", 2)

	rec := runRequest(t, e, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body mwOKResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body.UserID)
	assert.Equal(t, "seller", body.Role)
	assert.Equal(t, 2, body.TokenVersion)
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	e := newAuthTestEcho(cfg)

	rec := runRequest(t, e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_NotBearer(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	e := newAuthTestEcho(cfg)

	rec := runRequest(t, e, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	e := newAuthTestEcho(cfg)

	token := mustMakeJWT(t, "other-secret", 7, "buyer", 0)

	rec := runRequest(t, e, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body mwErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized", body.Error)
}

// =====================
// TokenVersionGuard tests
// =====================

func TestTokenVersionGuard_Match_Passes(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}

	users := new(MockUserRepoForMiddleware)
	users.On("FindByID", mock.Anything, int64(7)).Return(&model.User{
		ID: 7, Role: model.RoleBuyer, TokenVersion: 2, IsActive: true,
	}, nil)

	e := newAuthTestEcho(cfg, middleware.TokenVersionGuard(users))

	token := mustMakeJWT(t, "test-secret", 7, "buyer", 2)

	rec := runRequest(t, e, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTokenVersionGuard_Mismatch_Unauthorized(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}

	//DB側のtoken_versionは3（tv=2のJWTは失効済み）
	users := new(MockUserRepoForMiddleware)
	users.On("FindByID", mock.Anything, int64(7)).Return(&model.User{
		ID: 7, Role: model.RoleBuyer, TokenVersion: 3, IsActive: true,
	}, nil)

	e := newAuthTestEcho(cfg, middleware.TokenVersionGuard(users))

	token := mustMakeJWT(t, "test-secret", 7, "buyer", 2)

	rec := runRequest(t, e, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenVersionGuard_UnknownUser_Unauthorized(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}

	users := new(MockUserRepoForMiddleware)
	users.On("FindByID", mock.Anything, int64(7)).Return(nil, nil)

	e := newAuthTestEcho(cfg, middleware.TokenVersionGuard(users))

	token := mustMakeJWT(t, "test-secret", 7, "buyer", 2)

	rec := runRequest(t, e, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// =====================
// RoleGuard tests
// =====================

func TestRoleGuard_WrongRole_Forbidden(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	e := newAuthTestEcho(cfg, middleware.RoleGuard(model.RoleSeller))

	token := mustMakeJWT(t, "test-secret", 7, "buyer", 0)

	rec := runRequest(t, e, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRoleGuard_MatchingRole_Passes(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	e := newAuthTestEcho(cfg, middleware.RoleGuard(model.RoleSeller))

	token := mustMakeJWT(t, "test-secret", 7, "seller", 0)

	rec := runRequest(t, e, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}
