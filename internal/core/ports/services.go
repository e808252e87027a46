package ports

import (
	"context"
	"time"

	"github.com/ayel/intranet/internal/core/domain"
)

// RegisterInput carries a self-service account request. The company is
// assigned later by an administrator.
type RegisterInput struct {
	Username  string
	Password  string
	Email     string
	Phone     string
	FullName  string
	Category  string
	Sector    string
	BirthDate string
	PhotoURL  string
}

// AuthService handles accounts and sessions.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	Me(ctx context.Context, userID string) (*domain.User, error)
	// AssignCompany moves a user to an existing company, or clears it when
	// companyID is empty.
	AssignCompany(ctx context.Context, userID, companyID string) (*domain.User, error)
}

// PostView is a post together with its publication state at request time.
type PostView struct {
	Post domain.Post
	Meta domain.PublicationMeta
}

// FeedQuery carries the feed toggles. Role and company selectors only apply
// to admins; regular users are always filtered by their own audience.
type FeedQuery struct {
	RoleFilter    string
	CompanyFilter string
	Mode          domain.FeedMode
}

// PostInput is the editable part of a post.
type PostInput struct {
	Title         string
	Content       string
	ImageURL      string
	RoleTarget    string
	CompanyTarget string
	IsImportant   bool
	// Schedule is nil to publish immediately.
	Schedule *time.Time
}

// CreatePostInput adds request-scoped metadata to PostInput.
type CreatePostInput struct {
	PostInput
	IdempotencyKey string
}

// CreatePostResult is returned by PostService.Create.
type CreatePostResult struct {
	Post PostView
	// AlreadyExisted is true when the Idempotency-Key matched an earlier post.
	AlreadyExisted bool
}

// LikeResult reports the like state after a toggle.
type LikeResult struct {
	Liked bool
	Count int
}

// PostService is the mural use-case surface.
type PostService interface {
	Feed(ctx context.Context, viewer *domain.User, q FeedQuery) ([]PostView, error)
	Important(ctx context.Context, viewer *domain.User) ([]PostView, error)
	Get(ctx context.Context, viewer *domain.User, id string) (*PostView, error)
	Create(ctx context.Context, author *domain.User, in CreatePostInput) (*CreatePostResult, error)
	Update(ctx context.Context, id string, in PostInput) (*PostView, error)
	Delete(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, viewer *domain.User, id string) (*LikeResult, error)
	ListComments(ctx context.Context, viewer *domain.User, postID string) ([]domain.Comment, error)
	AddComment(ctx context.Context, viewer *domain.User, postID, content string) (*domain.Comment, error)
	// PublishDue converges scheduled posts whose time has passed to the
	// published state and returns how many were updated.
	PublishDue(ctx context.Context) (int, error)
}

// EventInput is the editable part of a calendar event.
type EventInput struct {
	Title         string
	Description   string
	Date          string
	Type          string
	Color         string
	CompanyID     string
	RoleTarget    string
	CompanyTarget string
}

// EventService manages the calendar.
type EventService interface {
	// List returns the events visible to viewer, by date. month 0 means all.
	List(ctx context.Context, viewer *domain.User, month int) ([]domain.Event, error)
	Get(ctx context.Context, viewer *domain.User, id string) (*domain.Event, error)
	Create(ctx context.Context, creator *domain.User, in EventInput) (*domain.Event, error)
	Update(ctx context.Context, id string, in EventInput) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
}

// TrainingInput is the editable part of a training.
type TrainingInput struct {
	Title            string
	ShortDescription string
	ImageURL         string
	Category         string
	Content          string
	CompanyID        string
}

// TrainingService manages learning content.
type TrainingService interface {
	List(ctx context.Context, companyID, category string) ([]domain.Training, error)
	Get(ctx context.Context, id string) (*domain.Training, error)
	Create(ctx context.Context, in TrainingInput) (*domain.Training, error)
	Update(ctx context.Context, id string, in TrainingInput) (*domain.Training, error)
	Delete(ctx context.Context, id string) error
}

// CompanyInput is the editable part of a company.
type CompanyInput struct {
	Name       string
	CNPJ       string
	Logo       string
	BrandColor string
}

// CompanyService manages tenants.
type CompanyService interface {
	List(ctx context.Context) ([]domain.Company, error)
	Get(ctx context.Context, id string) (*domain.Company, error)
	Create(ctx context.Context, in CompanyInput) (*domain.Company, error)
	Update(ctx context.Context, id string, in CompanyInput) (*domain.Company, error)
	Delete(ctx context.Context, id string) error
}

// ExtensionInput is the editable part of a phone extension.
type ExtensionInput struct {
	Name      string
	Sector    string
	Extension string
	Phone     string
	Email     string
	CompanyID string
}

// ExtensionService manages the phone list.
type ExtensionService interface {
	// List groups the extensions of one company by sector. Regular users are
	// pinned to their own company; admins pick one or pass "" for all.
	List(ctx context.Context, viewer *domain.User, companyID string) ([]domain.SectorGroup, error)
	Create(ctx context.Context, in ExtensionInput) (*domain.Extension, error)
	Update(ctx context.Context, id string, in ExtensionInput) (*domain.Extension, error)
	Delete(ctx context.Context, id string) error
}

// ShortcutInput is the editable part of a shortcut.
type ShortcutInput struct {
	Title       string
	URL         string
	Description string
	Icon        string
	Category    string
	CompanyID   string
}

// ShortcutService manages quick links.
type ShortcutService interface {
	List(ctx context.Context) ([]domain.Shortcut, error)
	Create(ctx context.Context, creator *domain.User, in ShortcutInput) (*domain.Shortcut, error)
	Update(ctx context.Context, id string, in ShortcutInput) (*domain.Shortcut, error)
	Delete(ctx context.Context, id string) error
}

// DirectoryService exposes the collaborator directory.
type DirectoryService interface {
	Search(ctx context.Context, viewer *domain.User, query string) ([]domain.Collaborator, error)
	Birthdays(ctx context.Context, viewer *domain.User, month time.Month) ([]domain.Collaborator, error)
	NextBirthday(ctx context.Context, viewer *domain.User) (*domain.UpcomingBirthday, error)
}
