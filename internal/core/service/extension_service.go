package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ayel/intranet/internal/core/domain"
	"github.com/ayel/intranet/internal/core/ports"
)

type ExtensionService struct {
	repo   ports.ExtensionRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewExtensionService(repo ports.ExtensionRepository, logger zerolog.Logger) *ExtensionService {
	return &ExtensionService{repo: repo, logger: logger, now: time.Now}
}

// List groups the phone list by sector. Regular users always get their own
// company; admins may pick one, "" or "all" meaning every company.
func (s *ExtensionService) List(ctx context.Context, viewer *domain.User, companyID string) ([]domain.SectorGroup, error) {
	if viewer != nil && !viewer.IsAdmin() {
		companyID = viewer.CompanyID
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list extensions: %w", err)
	}

	scoped := make([]domain.Extension, 0, len(all))
	for _, e := range all {
		if companyID == "" || companyID == domain.All || e.CompanyID == companyID {
			scoped = append(scoped, e)
		}
	}
	return domain.GroupExtensionsBySector(scoped), nil
}

func applyExtensionInput(e *domain.Extension, in ports.ExtensionInput) error {
	name := strings.TrimSpace(in.Name)
	sector := strings.TrimSpace(in.Sector)
	ext := strings.TrimSpace(in.Extension)
	if name == "" || sector == "" || ext == "" {
		return fmt.Errorf("%w: name, sector and extension are required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.CompanyID) == "" {
		return fmt.Errorf("%w: company is required", domain.ErrInvalidInput)
	}
	e.Name = name
	e.Sector = sector
	e.Extension = ext
	e.Phone = strings.TrimSpace(in.Phone)
	e.Email = strings.TrimSpace(in.Email)
	e.CompanyID = in.CompanyID
	return nil
}

func (s *ExtensionService) Create(ctx context.Context, in ports.ExtensionInput) (*domain.Extension, error) {
	e := domain.Extension{ID: uuid.NewString(), CreatedAt: s.now().UTC()}
	if err := applyExtensionInput(&e, in); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("extension_id", created.ID).Str("sector", created.Sector).Msg("extension created")
	return &created, nil
}

func (s *ExtensionService) Update(ctx context.Context, id string, in ports.ExtensionInput) (*domain.Extension, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyExtensionInput(&e, in); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	e.UpdatedAt = &now
	updated, err := s.repo.Update(ctx, e)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *ExtensionService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
