package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/ayel/intranet/internal/core/domain"
	"github.com/ayel/intranet/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.User, error)
	logoutFn   func(ctx context.Context, jti string, expiresAt time.Time) error
	meFn       func(ctx context.Context, userID string) (*domain.User, error)
	assignFn   func(ctx context.Context, userID, companyID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	return s.logoutFn(ctx, jti, expiresAt)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

func (s *stubAuthService) AssignCompany(ctx context.Context, userID, companyID string) (*domain.User, error) {
	return s.assignFn(ctx, userID, companyID)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Username != "alice" || in.Category != "tecnico" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{Username: in.Username, Role: domain.RoleUser, Category: domain.CategoryTecnico}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/auth/register",
		`{"username":"alice","password":"secret1","full_name":"Alice Souza","category":"tecnico","company_id":"c1","birth_date":"1990-03-02"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusCreated)

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["username"] != "alice" || user["role"] != "user" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}
	if _, ok := user["company_id"]; ok {
		t.Fatalf("self-registered users must not get a company: %+v", user)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/auth/register",
		`{"username":"bob","password":"secret1","full_name":"Bob","category":"rh"}`)
	if err := handler.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"not json", "not-json", http.StatusBadRequest},
		{"short password", `{"username":"bob","password":"123","full_name":"Bob","category":"rh"}`, http.StatusUnprocessableEntity},
		{"unknown category", `{"username":"bob","password":"123456","full_name":"Bob","category":"gerente"}`, http.StatusUnprocessableEntity},
		{"bad birth date", `{"username":"bob","password":"123456","full_name":"Bob","category":"rh","birth_date":"02/03/1990"}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/auth/register", tt.body)
			expectHTTPError(t, handler.Register(c), tt.code)
		})
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			if username != "admin" || password != "admin123" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "token123", &domain.User{Username: "admin", Role: domain.RoleAdmin}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/auth/login", `{"username":"admin","password":"admin123"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "admin" || user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Login_UnknownUserLooksLikeBadPassword(t *testing.T) {
	for _, cause := range []error{domain.ErrUserNotFound, domain.ErrInvalidCredentials} {
		stub := &stubAuthService{
			loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
				return "", nil, cause
			},
		}
		c, _ := newContext(http.MethodPost, "/auth/login", `{"username":"ghost","password":"pwd"}`)
		if err := NewAuthHandler(stub).Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("cause %v: expected ErrInvalidCredentials, got %v", cause, err)
		}
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/auth/login", "not-json")
	expectHTTPError(t, handler.Login(c), http.StatusBadRequest)

	c, _ = newContext(http.MethodPost, "/auth/login", `{"username":"admin"}`)
	expectHTTPError(t, handler.Login(c), http.StatusUnprocessableEntity)
}

func TestAuthHandler_Logout(t *testing.T) {
	var gotJTI string
	var gotExp time.Time
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, jti string, expiresAt time.Time) error {
			gotJTI, gotExp = jti, expiresAt
			return nil
		},
	}
	c, rec := newContext(http.MethodPost, "/auth/logout", "")
	authenticate(c, joao)

	if err := NewAuthHandler(stub).Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusNoContent)
	if gotJTI != "jti-2" || gotExp.Year() != 2030 {
		t.Fatalf("unexpected session: %s %v", gotJTI, gotExp)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAuthService{
		meFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != "2" {
				t.Fatalf("unexpected user id %s", userID)
			}
			return &domain.User{ID: "2", Username: "joao", FullName: "João Silva"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(http.MethodGet, "/auth/me", "")
	expectHTTPError(t, handler.Me(c), http.StatusUnauthorized)

	c, rec := newContext(http.MethodGet, "/auth/me", "")
	authenticate(c, joao)
	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)
}

func TestAuthHandler_AssignCompany(t *testing.T) {
	stub := &stubAuthService{
		assignFn: func(ctx context.Context, userID, companyID string) (*domain.User, error) {
			if userID != "5" {
				t.Fatalf("unexpected user id %q", userID)
			}
			if companyID != "c2" {
				return nil, domain.ErrCompanyNotFound
			}
			return &domain.User{ID: userID, Username: "ana", CompanyID: companyID}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPut, "/users/5/company", `{"company_id":"c2"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")
	if err := handler.AssignCompany(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	c, _ = newContext(http.MethodPut, "/users/5/company", `{"company_id":"nope"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")
	if err := handler.AssignCompany(c); !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}
