package service

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ayel/intranet/internal/core/domain"
	"github.com/ayel/intranet/internal/core/ports"
)

type ShortcutService struct {
	repo   ports.ShortcutRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewShortcutService(repo ports.ShortcutRepository, logger zerolog.Logger) *ShortcutService {
	return &ShortcutService{repo: repo, logger: logger, now: time.Now}
}

// List returns every shortcut ordered by title.
func (s *ShortcutService) List(ctx context.Context) ([]domain.Shortcut, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shortcuts: %w", err)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Title < all[j].Title })
	return all, nil
}

func applyShortcutInput(sc *domain.Shortcut, in ports.ShortcutInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	u, err := url.Parse(strings.TrimSpace(in.URL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: url must be an absolute http(s) address", domain.ErrInvalidInput)
	}
	sc.Title = title
	sc.URL = u.String()
	sc.Description = strings.TrimSpace(in.Description)
	sc.Icon = in.Icon
	sc.Category = in.Category
	sc.CompanyID = in.CompanyID
	return nil
}

func (s *ShortcutService) Create(ctx context.Context, creator *domain.User, in ports.ShortcutInput) (*domain.Shortcut, error) {
	if creator == nil {
		return nil, domain.ErrForbidden
	}
	sc := domain.Shortcut{ID: uuid.NewString(), CreatedBy: creator.ID, CreatedAt: s.now().UTC()}
	if err := applyShortcutInput(&sc, in); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, sc)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("shortcut_id", created.ID).Msg("shortcut created")
	return &created, nil
}

func (s *ShortcutService) Update(ctx context.Context, id string, in ports.ShortcutInput) (*domain.Shortcut, error) {
	sc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyShortcutInput(&sc, in); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, sc)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *ShortcutService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
