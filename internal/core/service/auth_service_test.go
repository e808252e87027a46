package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayel/intranet/internal/core/domain"
	"github.com/ayel/intranet/internal/core/ports"
)

func registerInput(username, password string) ports.RegisterInput {
	return ports.RegisterInput{
		Username: username,
		Password: password,
		Email:    username + "@ayel.com.br",
		FullName: "Test " + username,
		Category: "vendedor",
	}
}

func testCompanies() *stubRepo[domain.Company] {
	return newStubRepo(domain.ErrCompanyNotFound, domain.Company{ID: "c1", Name: "Ayel Tecnologia"})
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testCompanies(), nil, "secret", time.Hour, discardLogger)

	user, err := svc.Register(context.Background(), registerInput("alice", "pass123"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("self-registration must create a regular user, got %s", user.Role)
	}
	if user.Category != domain.CategoryVendedor || user.CompanyID != "" {
		t.Fatalf("unexpected audience fields: %+v", user)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testCompanies(), nil, "secret", time.Hour, discardLogger)

	if _, err := svc.Register(context.Background(), registerInput("", "pass")); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	in := registerInput("bob", "pass")
	in.Category = "marketing"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad category, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testCompanies(), nil, "secret", time.Hour, discardLogger)

	_, _ = svc.Register(context.Background(), registerInput("bob", "pass"))
	if _, err := svc.Register(context.Background(), registerInput("bob", "pass2")); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testCompanies(), nil, "secret", time.Hour, discardLogger)

	registered, err := svc.Register(context.Background(), registerInput("carol", "s3cret"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.AssignCompany(context.Background(), registered.ID, "c1"); err != nil {
		t.Fatalf("assign company failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != registered.ID {
		t.Fatalf("expected sub %s, got %v", registered.ID, claims["sub"])
	}
	if claims["role"] != string(domain.RoleUser) || claims["category"] != "vendedor" || claims["company_id"] != "c1" {
		t.Fatalf("unexpected audience claims: %+v", claims)
	}
	if claims["full_name"] != "Test carol" {
		t.Fatalf("expected full_name claim, got %v", claims["full_name"])
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Fatalf("expected jti claim")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testCompanies(), nil, "secret", time.Hour, discardLogger)

	_, _ = svc.Register(context.Background(), registerInput("dave", "goodpass"))
	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testCompanies(), nil, "secret", time.Hour, discardLogger)

	if _, _, err := svc.Login(context.Background(), "ghost", "pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	revoker := &stubRevoker{}
	svc := NewAuthService(newStubUserRepo(), testCompanies(), revoker, "secret", time.Hour, discardLogger)

	exp := fixedNow.Add(time.Hour)
	if err := svc.Logout(context.Background(), "jti-1", exp); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if got, ok := revoker.revoked["jti-1"]; !ok || !got.Equal(exp) {
		t.Fatalf("expected jti-1 revoked until %v, got %v", exp, got)
	}

	revoker.err = errBoom
	if err := svc.Logout(context.Background(), "jti-2", exp); !errors.Is(err, errBoom) {
		t.Fatalf("expected wrapped revoker error, got %v", err)
	}
}

func TestAuthService_Logout_WithoutRevoker(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testCompanies(), nil, "secret", time.Hour, discardLogger)
	if err := svc.Logout(context.Background(), "jti", fixedNow); err != nil {
		t.Fatalf("expected no-op logout, got %v", err)
	}
}

func TestAuthService_Me(t *testing.T) {
	repo := newStubUserRepo(domain.User{ID: "7", Username: "eve"})
	svc := NewAuthService(repo, testCompanies(), nil, "secret", time.Hour, discardLogger)

	user, err := svc.Me(context.Background(), "7")
	if err != nil || user.Username != "eve" {
		t.Fatalf("unexpected result: %+v, %v", user, err)
	}
	if _, err := svc.Me(context.Background(), "8"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_AssignCompany(t *testing.T) {
	repo := newStubUserRepo(domain.User{ID: "7", Username: "eve"})
	svc := NewAuthService(repo, testCompanies(), nil, "secret", time.Hour, discardLogger)

	if _, err := svc.AssignCompany(context.Background(), "7", "does-not-exist"); !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
	if repo.items[0].CompanyID != "" {
		t.Fatalf("unknown company must not be stored, got %q", repo.items[0].CompanyID)
	}

	user, err := svc.AssignCompany(context.Background(), "7", " c1 ")
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if user.CompanyID != "c1" || repo.items[0].CompanyID != "c1" {
		t.Fatalf("expected company c1, got %+v", user)
	}

	if _, err := svc.AssignCompany(context.Background(), "8", "c1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	user, err = svc.AssignCompany(context.Background(), "7", "")
	if err != nil || user.CompanyID != "" {
		t.Fatalf("expected company cleared, got %+v, %v", user, err)
	}
}
