package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ayel/intranet/internal/core/domain"
	"github.com/ayel/intranet/internal/core/ports"
)

type CompanyService struct {
	repo   ports.CompanyRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewCompanyService(repo ports.CompanyRepository, logger zerolog.Logger) *CompanyService {
	return &CompanyService{repo: repo, logger: logger, now: time.Now}
}

// List returns every company ordered by name.
func (s *CompanyService) List(ctx context.Context) ([]domain.Company, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (s *CompanyService) Get(ctx context.Context, id string) (*domain.Company, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func applyCompanyInput(c *domain.Company, in ports.CompanyInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	c.Name = name
	c.CNPJ = strings.TrimSpace(in.CNPJ)
	c.Logo = in.Logo
	c.BrandColor = in.BrandColor
	return nil
}

func (s *CompanyService) Create(ctx context.Context, in ports.CompanyInput) (*domain.Company, error) {
	c := domain.Company{ID: uuid.NewString(), CreatedAt: s.now().UTC()}
	if err := applyCompanyInput(&c, in); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("company_id", created.ID).Str("name", created.Name).Msg("company created")
	return &created, nil
}

func (s *CompanyService) Update(ctx context.Context, id string, in ports.CompanyInput) (*domain.Company, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyCompanyInput(&c, in); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *CompanyService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
