package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayel/intranet/internal/core/domain"
	"github.com/ayel/intranet/internal/core/ports"
)

// AuthService implements registration, login and logout.
type AuthService struct {
	repo      ports.UserRepository
	companies ports.CompanyRepository
	revoker   ports.TokenRevoker // nil disables server-side logout
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

func NewAuthService(repo ports.UserRepository, companies ports.CompanyRepository, revoker ports.TokenRevoker, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		companies: companies,
		revoker:   revoker,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// Register creates a regular user account with no company. Admin accounts
// come from seeding.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" || strings.TrimSpace(in.FullName) == "" {
		return nil, domain.ErrInvalidCredentials
	}
	category, err := domain.ParseCategory(in.Category)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		Phone:        in.Phone,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		Role:         domain.RoleUser,
		Category:     category,
		Sector:       in.Sector,
		BirthDate:    in.BirthDate,
		PhotoURL:     in.PhotoURL,
		CreatedAt:    s.now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return &created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Logout revokes the token identified by jti until it would have expired.
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.revoker == nil || jti == "" {
		return nil
	}
	if err := s.revoker.Revoke(ctx, jti, expiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AssignCompany sets the company of userID. The change reaches the user's
// token on the next login.
func (s *AuthService) AssignCompany(ctx context.Context, userID, companyID string) (*domain.User, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID != "" {
		if _, err := s.companies.Get(ctx, companyID); err != nil {
			return nil, err
		}
	}

	user, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.CompanyID = companyID
	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("assign company: %w", err)
	}
	s.logger.Info().Str("user_id", updated.ID).Str("company_id", companyID).Msg("company assigned")
	return &updated, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":        user.ID,
		"username":   user.Username,
		"full_name":  user.FullName,
		"role":       string(user.Role),
		"category":   string(user.Category),
		"company_id": user.CompanyID,
		"jti":        uuid.NewString(),
		"iat":        now.Unix(),
		"exp":        now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
