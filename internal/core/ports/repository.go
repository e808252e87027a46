package ports

import (
	"context"
	"time"

	"github.com/ayel/intranet/internal/core/domain"
)

// Entity is any stored record addressable by id.
type Entity interface {
	EntityID() string
}

// Repository is the CRUD contract shared by every collection. Implementations
// return fresh slices; callers may modify them without touching stored state.
type Repository[T Entity] interface {
	// List returns every record in insertion order.
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	// Create stores item as-is; the caller assigns the id.
	Create(ctx context.Context, item T) (T, error)
	// Update replaces the record with the same id.
	Update(ctx context.Context, item T) (T, error)
	Delete(ctx context.Context, id string) error
}

// UserRepository adds credential lookups on top of the CRUD contract.
type UserRepository interface {
	Repository[domain.User]
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// PostRepository adds the post writes that must not race with other
// writers of the same document.
type PostRepository interface {
	Repository[domain.Post]
	// ToggleLike adds userID to the likes of post id, or removes it when
	// already present, and returns the resulting state.
	ToggleLike(ctx context.Context, id, userID string) (liked bool, count int, err error)
	// MarkPublished publishes post id only while it is still scheduled for
	// scheduledFor. It reports false when the post changed in the meantime.
	MarkPublished(ctx context.Context, id string, scheduledFor time.Time) (bool, error)
}

type (
	CommentRepository   = Repository[domain.Comment]
	EventRepository     = Repository[domain.Event]
	TrainingRepository  = Repository[domain.Training]
	CompanyRepository   = Repository[domain.Company]
	ExtensionRepository = Repository[domain.Extension]
	ShortcutRepository  = Repository[domain.Shortcut]
)

// Store bundles every repository a running portal needs.
type Store struct {
	Users      UserRepository
	Posts      PostRepository
	Comments   CommentRepository
	Events     EventRepository
	Trainings  TrainingRepository
	Companies  CompanyRepository
	Extensions ExtensionRepository
	Shortcuts  ShortcutRepository
}
