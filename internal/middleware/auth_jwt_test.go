package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shawarma/internal/config"
	"shawarma/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func validClaims(role string) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":   "7",
		"email": "ali@example.com",
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
}

// AuthJWT+AdminRoleGuardを通した先でcontextの値を返すだけのサーバー
func newTestServer(adminOnly bool) *echo.Echo {
	cfg := config.Config{JWTSecret: testSecret}

	e := echo.New()
	mws := []echo.MiddlewareFunc{middleware.AuthJWT(cfg)}
	if adminOnly {
		mws = append(mws, middleware.AdminRoleGuard())
	}

	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"userID": c.Get(middleware.CtxUserIDKey),
			"role":   c.Get(middleware.CtxUserRoleKey),
		})
	}, mws...)

	return e
}

func doRequest(e *echo.Echo, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec := doRequest(newTestServer(false), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_NotBearer(t *testing.T) {
	rec := doRequest(newTestServer(false), "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_GarbageToken(t *testing.T) {
	rec := doRequest(newTestServer(false), "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// 署名シークレットが違うトークンは拒否
func TestAuthJWT_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", validClaims("Customer"))
	rec := doRequest(newTestServer(false), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	claims := validClaims("Customer")
	claims["exp"] = time.Now().Add(-time.Hour).Unix()

	token := signToken(t, testSecret, claims)
	rec := doRequest(newTestServer(false), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_RoleMissing(t *testing.T) {
	claims := validClaims("Customer")
	delete(claims, "role")

	token := signToken(t, testSecret, claims)
	rec := doRequest(newTestServer(false), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, validClaims("Customer"))
	rec := doRequest(newTestServer(false), "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userID":7`)
	assert.Contains(t, rec.Body.String(), `"role":"Customer"`)
}

// =====================
// AdminRoleGuard
// =====================

func TestAdminRoleGuard_CustomerForbidden(t *testing.T) {
	token := signToken(t, testSecret, validClaims("Customer"))
	rec := doRequest(newTestServer(true), "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin only")
}

func TestAdminRoleGuard_AdminAllowed(t *testing.T) {
	token := signToken(t, testSecret, validClaims("Admin"))
	rec := doRequest(newTestServer(true), "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
}
