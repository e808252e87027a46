package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ayel/intranet/internal/core/domain"
	"github.com/ayel/intranet/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubRepo[T ports.Entity] struct {
	items     []T
	notFound  error
	createErr error
	updates   int
}

func newStubRepo[T ports.Entity](notFound error, seed ...T) *stubRepo[T] {
	return &stubRepo[T]{items: append([]T(nil), seed...), notFound: notFound}
}

func (r *stubRepo[T]) List(_ context.Context) ([]T, error) {
	return append([]T(nil), r.items...), nil
}

func (r *stubRepo[T]) Get(_ context.Context, id string) (T, error) {
	for _, it := range r.items {
		if it.EntityID() == id {
			return it, nil
		}
	}
	var zero T
	return zero, r.notFound
}

func (r *stubRepo[T]) Create(_ context.Context, item T) (T, error) {
	if r.createErr != nil {
		var zero T
		return zero, r.createErr
	}
	r.items = append(r.items, item)
	return item, nil
}

func (r *stubRepo[T]) Update(_ context.Context, item T) (T, error) {
	for i, it := range r.items {
		if it.EntityID() == item.EntityID() {
			r.items[i] = item
			r.updates++
			return item, nil
		}
	}
	var zero T
	return zero, r.notFound
}

func (r *stubRepo[T]) Delete(_ context.Context, id string) error {
	for i, it := range r.items {
		if it.EntityID() == id {
			r.items = append(r.items[:i:i], r.items[i+1:]...)
			return nil
		}
	}
	return r.notFound
}

type stubPostRepo struct {
	*stubRepo[domain.Post]
	afterList func()
}

func newStubPostRepo(seed ...domain.Post) *stubPostRepo {
	return &stubPostRepo{stubRepo: newStubRepo(domain.ErrPostNotFound, seed...)}
}

func (r *stubPostRepo) List(ctx context.Context) ([]domain.Post, error) {
	out, err := r.stubRepo.List(ctx)
	if r.afterList != nil {
		r.afterList()
	}
	return out, err
}

func (r *stubPostRepo) ToggleLike(_ context.Context, id, userID string) (bool, int, error) {
	for i, p := range r.items {
		if p.ID != id {
			continue
		}
		liked := !p.HasLike(userID)
		likes := make([]string, 0, len(p.Likes)+1)
		for _, uid := range p.Likes {
			if uid != userID {
				likes = append(likes, uid)
			}
		}
		if liked {
			likes = append(likes, userID)
		}
		r.items[i].Likes = likes
		return liked, len(likes), nil
	}
	return false, 0, domain.ErrPostNotFound
}

func (r *stubPostRepo) MarkPublished(_ context.Context, id string, at time.Time) (bool, error) {
	for i, p := range r.items {
		if p.ID != id {
			continue
		}
		if p.Status != domain.StatusScheduled || p.ScheduledFor == nil || !p.ScheduledFor.Equal(at) {
			return false, nil
		}
		r.items[i].Status = domain.StatusPublished
		r.items[i].PublishedAt = ptrTime(at)
		return true, nil
	}
	return false, domain.ErrPostNotFound
}

type stubUserRepo struct {
	*stubRepo[domain.User]
}

func newStubUserRepo(seed ...domain.User) *stubUserRepo {
	return &stubUserRepo{newStubRepo(domain.ErrUserNotFound, seed...)}
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.items {
		if u.Username == username {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// stubIdempotency mirrors the Redis store: claims hold a pending marker
// until Remember replaces it.
type stubIdempotency struct {
	mu       sync.Mutex
	keys     map[string]string
	claimErr error
}

const stubPending = "pending"

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Claim(_ context.Context, scope, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claimErr != nil {
		return "", false, s.claimErr
	}
	id, ok := s.keys[scope+":"+key]
	if !ok {
		s.keys[scope+":"+key] = stubPending
		return "", true, nil
	}
	if id == stubPending {
		return "", false, nil
	}
	return id, false, nil
}

func (s *stubIdempotency) Remember(_ context.Context, scope, key, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[scope+":"+key] = id
	return nil
}

func (s *stubIdempotency) Release(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, scope+":"+key)
	return nil
}

type stubRevoker struct {
	revoked map[string]time.Time
	err     error
}

func (s *stubRevoker) Revoke(_ context.Context, jti string, exp time.Time) error {
	if s.err != nil {
		return s.err
	}
	if s.revoked == nil {
		s.revoked = make(map[string]time.Time)
	}
	s.revoked[jti] = exp
	return nil
}

func (s *stubRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := s.revoked[jti]
	return ok, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var (
	discardLogger = zerolog.Nop()
	errBoom       = errors.New("boom")
	fixedNow      = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
)

func fixedClock() time.Time { return fixedNow }

func ptrTime(t time.Time) *time.Time { return &t }

func adminUser() *domain.User {
	return &domain.User{ID: "1", Username: "admin", FullName: "Administrador Sistema", Role: domain.RoleAdmin, Category: domain.CategoryAdministrativo}
}

func regularUser(id string, category domain.Category, companyID string) *domain.User {
	return &domain.User{ID: id, Username: "user" + id, FullName: "User " + id, Role: domain.RoleUser, Category: category, CompanyID: companyID}
}
