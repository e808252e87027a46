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

// TrainingService manages learning content. Trainings are scoped by company
// and category only, not by audience.
type TrainingService struct {
	repo   ports.TrainingRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewTrainingService(repo ports.TrainingRepository, logger zerolog.Logger) *TrainingService {
	return &TrainingService{repo: repo, logger: logger, now: time.Now}
}

func (s *TrainingService) List(ctx context.Context, companyID, category string) ([]domain.Training, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trainings: %w", err)
	}
	out := domain.FilterTrainings(all, companyID, category)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *TrainingService) Get(ctx context.Context, id string) (*domain.Training, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func applyTrainingInput(t *domain.Training, in ports.TrainingInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.CompanyID) == "" {
		return fmt.Errorf("%w: company is required", domain.ErrInvalidInput)
	}
	cat, err := domain.ParseTrainingCategory(in.Category)
	if err != nil {
		return err
	}
	t.Title = title
	t.ShortDescription = strings.TrimSpace(in.ShortDescription)
	t.ImageURL = in.ImageURL
	t.Category = cat
	t.Content = in.Content
	t.CompanyID = in.CompanyID
	return nil
}

func (s *TrainingService) Create(ctx context.Context, in ports.TrainingInput) (*domain.Training, error) {
	t := domain.Training{ID: uuid.NewString(), CreatedAt: s.now().UTC()}
	if err := applyTrainingInput(&t, in); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("training_id", created.ID).Str("category", string(created.Category)).Msg("training created")
	return &created, nil
}

func (s *TrainingService) Update(ctx context.Context, id string, in ports.TrainingInput) (*domain.Training, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyTrainingInput(&t, in); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	t.UpdatedAt = &now
	updated, err := s.repo.Update(ctx, t)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *TrainingService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
