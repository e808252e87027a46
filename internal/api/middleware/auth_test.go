package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type stubRevocations map[string]bool

func (s stubRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	if jti == "broken" {
		return false, errors.New("redis down")
	}
	return s[jti], nil
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validClaims(jti string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":        "2",
		"username":   "joao.silva",
		"role":       "user",
		"category":   "vendedor",
		"company_id": "c1",
		"jti":        jti,
		"exp":        time.Now().Add(time.Hour).Unix(),
	}
}

func runAuth(t *testing.T, header string, revoked RevocationChecker, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Auth("secret", revoked)(next)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func mustNotRun(t *testing.T) echo.HandlerFunc {
	return func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	called := false
	rec := runAuth(t, "Bearer "+signToken(t, validClaims("j1")), nil, func(c echo.Context) error {
		called = true
		if c.Get(CtxUserID) != "2" {
			t.Fatalf("user id not set")
		}
		if c.Get(CtxRole) != "user" || c.Get(CtxCategory) != "vendedor" || c.Get(CtxCompanyID) != "c1" {
			t.Fatalf("audience claims not set")
		}
		if c.Get(CtxTokenID) != "j1" {
			t.Fatalf("jti not set")
		}
		if exp, _ := c.Get(CtxExpiresAt).(time.Time); exp.IsZero() {
			t.Fatalf("expiry not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	if rec := runAuth(t, "", nil, mustNotRun(t)); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	if rec := runAuth(t, "Token abc", nil, mustNotRun(t)); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	if rec := runAuth(t, "Bearer not-a-token", nil, mustNotRun(t)); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	claims := validClaims("j1")
	claims["exp"] = time.Now().Add(-time.Minute).Unix()
	if rec := runAuth(t, "Bearer "+signToken(t, claims), nil, mustNotRun(t)); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingSubject(t *testing.T) {
	claims := validClaims("j1")
	delete(claims, "sub")
	if rec := runAuth(t, "Bearer "+signToken(t, claims), nil, mustNotRun(t)); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	revoked := stubRevocations{"j-out": true}
	if rec := runAuth(t, "Bearer "+signToken(t, validClaims("j-out")), revoked, mustNotRun(t)); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec := runAuth(t, "Bearer "+signToken(t, validClaims("j-in")), revoked, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for live token, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RevocationStoreDown(t *testing.T) {
	revoked := stubRevocations{}
	if rec := runAuth(t, "Bearer "+signToken(t, validClaims("broken")), revoked, mustNotRun(t)); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
