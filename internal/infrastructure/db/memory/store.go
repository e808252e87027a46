// Package memory holds the process-local storage driver used in development
// and tests.
package memory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ayel/intranet/internal/core/domain"
	"github.com/ayel/intranet/internal/core/ports"
)

// UserTable adds username lookups. Usernames are unique, compared
// case-insensitively.
type UserTable struct {
	*Table[domain.User]
}

func NewUserTable() *UserTable {
	return &UserTable{NewTable[domain.User](domain.ErrUserNotFound, nil)}
}

func (t *UserTable) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, u := range t.rows {
		if strings.EqualFold(u.Username, username) {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (t *UserTable) Create(_ context.Context, u domain.User) (domain.User, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, existing := range t.rows {
		if strings.EqualFold(existing.Username, u.Username) {
			return domain.User{}, domain.ErrUserExists
		}
	}
	return t.insertLocked(u)
}

// errUnchanged aborts a Mutate without reporting a failure.
var errUnchanged = errors.New("unchanged")

// PostTable serializes like toggles and publication sweeps per store.
type PostTable struct {
	*Table[domain.Post]
}

func NewPostTable() *PostTable {
	return &PostTable{NewTable(domain.ErrPostNotFound, clonePost)}
}

func (t *PostTable) ToggleLike(ctx context.Context, id, userID string) (bool, int, error) {
	var liked bool
	p, err := t.Mutate(ctx, id, func(p *domain.Post) error {
		liked = !p.HasLike(userID)
		likes := make([]string, 0, len(p.Likes)+1)
		for _, uid := range p.Likes {
			if uid != userID {
				likes = append(likes, uid)
			}
		}
		if liked {
			likes = append(likes, userID)
		}
		p.Likes = likes
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return liked, len(p.Likes), nil
}

func (t *PostTable) MarkPublished(ctx context.Context, id string, scheduledFor time.Time) (bool, error) {
	_, err := t.Mutate(ctx, id, func(p *domain.Post) error {
		if p.Status != domain.StatusScheduled || p.ScheduledFor == nil || !p.ScheduledFor.Equal(scheduledFor) {
			return errUnchanged
		}
		at := scheduledFor
		p.Status = domain.StatusPublished
		p.PublishedAt = &at
		return nil
	})
	switch {
	case errors.Is(err, errUnchanged):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

func clonePost(p domain.Post) domain.Post {
	if p.Likes != nil {
		p.Likes = append([]string(nil), p.Likes...)
	}
	p.ScheduledFor = cloneTime(p.ScheduledFor)
	p.PublishedAt = cloneTime(p.PublishedAt)
	return p
}

func cloneTraining(t domain.Training) domain.Training {
	t.UpdatedAt = cloneTime(t.UpdatedAt)
	return t
}

func cloneExtension(e domain.Extension) domain.Extension {
	e.UpdatedAt = cloneTime(e.UpdatedAt)
	return e
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// NewStore returns an empty in-memory store.
func NewStore() ports.Store {
	return ports.Store{
		Users:      NewUserTable(),
		Posts:      NewPostTable(),
		Comments:   NewTable[domain.Comment](domain.ErrCommentNotFound, nil),
		Events:     NewTable[domain.Event](domain.ErrEventNotFound, nil),
		Trainings:  NewTable(domain.ErrTrainingNotFound, cloneTraining),
		Companies:  NewTable[domain.Company](domain.ErrCompanyNotFound, nil),
		Extensions: NewTable(domain.ErrExtensionNotFound, cloneExtension),
		Shortcuts:  NewTable[domain.Shortcut](domain.ErrShortcutNotFound, nil),
	}
}
