package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/ayel/intranet/internal/core/domain"
	"github.com/ayel/intranet/internal/core/ports"
)

// DirectoryService answers collaborator lookups and birthday queries.
type DirectoryService struct {
	users     ports.UserRepository
	companies ports.CompanyRepository
	logger    zerolog.Logger
	now       func() time.Time
}

func NewDirectoryService(users ports.UserRepository, companies ports.CompanyRepository, logger zerolog.Logger) *DirectoryService {
	return &DirectoryService{users: users, companies: companies, logger: logger, now: time.Now}
}

// collaborators lists the directory as seen by viewer: regular users only see
// colleagues of their own company. Users not yet assigned to a company only
// see others in the same state.
func (s *DirectoryService) collaborators(ctx context.Context, viewer *domain.User) ([]domain.Collaborator, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	scoped := viewer != nil && !viewer.IsAdmin()

	out := make([]domain.Collaborator, 0, len(users))
	for _, u := range users {
		if scoped && u.CompanyID != viewer.CompanyID {
			continue
		}
		out = append(out, domain.CollaboratorFromUser(u))
	}
	sort.SliceStable(out, func(i, j int) bool { return domain.Fold(out[i].FullName) < domain.Fold(out[j].FullName) })
	return out, nil
}

func (s *DirectoryService) companyNames(ctx context.Context) map[string]string {
	names := make(map[string]string)
	companies, err := s.companies.List(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("company names unavailable for directory search")
		return names
	}
	for _, c := range companies {
		names[c.ID] = c.Name
	}
	return names
}

func (s *DirectoryService) Search(ctx context.Context, viewer *domain.User, query string) ([]domain.Collaborator, error) {
	list, err := s.collaborators(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return domain.SearchCollaborators(list, query, s.companyNames(ctx)), nil
}

// Birthdays lists collaborators born in month; 0 means the current month.
func (s *DirectoryService) Birthdays(ctx context.Context, viewer *domain.User, month time.Month) ([]domain.Collaborator, error) {
	if month < 0 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", domain.ErrInvalidInput)
	}
	if month == 0 {
		month = s.now().Month()
	}
	list, err := s.collaborators(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return domain.BirthdaysInMonth(list, month), nil
}

// NextBirthday returns nil when no collaborator has a usable birth date.
func (s *DirectoryService) NextBirthday(ctx context.Context, viewer *domain.User) (*domain.UpcomingBirthday, error) {
	list, err := s.collaborators(ctx, viewer)
	if err != nil {
		return nil, err
	}
	next, ok := domain.NextBirthday(list, s.now())
	if !ok {
		return nil, nil
	}
	return &next, nil
}
