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

type EventService struct {
	repo   ports.EventRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewEventService(repo ports.EventRepository, logger zerolog.Logger) *EventService {
	return &EventService{repo: repo, logger: logger, now: time.Now}
}

// List returns the events viewer may see, ordered by date. month selects a
// calendar month (1-12); 0 returns every month.
func (s *EventService) List(ctx context.Context, viewer *domain.User, month int) ([]domain.Event, error) {
	if month < 0 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", domain.ErrInvalidInput)
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	visible := domain.FilterItemsForUser(all, viewer)
	if month != 0 {
		inMonth := make([]domain.Event, 0, len(visible))
		for _, e := range visible {
			if e.Month() == time.Month(month) {
				inMonth = append(inMonth, e)
			}
		}
		visible = inMonth
	}
	return domain.SortEventsByDate(visible), nil
}

func (s *EventService) Get(ctx context.Context, viewer *domain.User, id string) (*domain.Event, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.MatchesUserAudience(e, viewer) {
		return nil, domain.ErrEventNotFound
	}
	return &e, nil
}

func applyEventInput(e *domain.Event, in ports.EventInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if _, err := time.Parse(domain.DateLayout, in.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	typ, err := domain.ParseEventType(in.Type)
	if err != nil {
		return err
	}
	role, err := domain.ParseRoleTarget(in.RoleTarget)
	if err != nil {
		return err
	}

	e.Title = title
	e.Description = strings.TrimSpace(in.Description)
	e.Date = in.Date
	e.Type = typ
	e.Color = in.Color
	if e.Color == "" {
		e.Color = typ.DefaultColor()
	}
	e.Audience = domain.Audience{RoleTarget: role, CompanyTarget: domain.ParseCompanyTarget(in.CompanyTarget)}
	if in.CompanyID != "" {
		e.CompanyID = in.CompanyID
	}
	return nil
}

func (s *EventService) Create(ctx context.Context, creator *domain.User, in ports.EventInput) (*domain.Event, error) {
	if creator == nil {
		return nil, domain.ErrForbidden
	}
	e := domain.Event{
		ID:        uuid.NewString(),
		CreatedBy: creator.ID,
		CompanyID: creator.CompanyID,
		CreatedAt: s.now().UTC(),
	}
	if err := applyEventInput(&e, in); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("event_id", created.ID).Str("date", created.Date).Msg("event created")
	return &created, nil
}

func (s *EventService) Update(ctx context.Context, id string, in ports.EventInput) (*domain.Event, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyEventInput(&e, in); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, e)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
