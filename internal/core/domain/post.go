package domain

import (
	"fmt"
	"time"
)

// PublicationStatus is the lifecycle state of a mural post.
type PublicationStatus string

const (
	StatusPublished PublicationStatus = "published"
	StatusScheduled PublicationStatus = "scheduled"
)

// ParsePublicationStatus treats an absent status as published.
func ParsePublicationStatus(s string) (PublicationStatus, error) {
	switch PublicationStatus(s) {
	case "", StatusPublished:
		return StatusPublished, nil
	case StatusScheduled:
		return StatusScheduled, nil
	}
	return "", fmt.Errorf("%w: unknown publication status %q", ErrInvalidInput, s)
}

// Post is a publication on the mural.
type Post struct {
	ID          string `json:"id" bson:"_id"`
	AuthorID    string `json:"author_id" bson:"author_id"`
	AuthorName  string `json:"author_name" bson:"author_name"`
	Title       string `json:"title,omitempty" bson:"title,omitempty"`
	Content     string `json:"content" bson:"content"`
	ImageURL    string `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Audience    `bson:",inline"`
	IsImportant bool              `json:"is_important" bson:"is_important"`
	Likes       []string          `json:"likes" bson:"likes"`
	CompanyID   string            `json:"company_id,omitempty" bson:"company_id,omitempty"`
	Status      PublicationStatus `json:"status" bson:"status"`
	// ScheduledFor is only meaningful when Status is StatusScheduled.
	ScheduledFor *time.Time `json:"scheduled_for,omitempty" bson:"scheduled_for,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty" bson:"published_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
}

func (p Post) EntityID() string { return p.ID }

// IsPostReadyToShow reports whether a regular user may see the post at now.
func IsPostReadyToShow(p Post, now time.Time) bool {
	switch p.Status {
	case "", StatusPublished:
		return true
	case StatusScheduled:
		return p.ScheduledFor != nil && !p.ScheduledFor.After(now)
	default:
		return false
	}
}

// PublicationMeta is the display-oriented view of a post's publication state.
type PublicationMeta struct {
	IsScheduledFuture    bool
	IsReady              bool
	ScheduledDate        *time.Time
	EffectivePublishedAt *time.Time
}

const (
	LabelScheduled = "Agendado"
	LabelPublished = "Publicado"
)

// Label is the badge shown next to the post.
func (m PublicationMeta) Label() string {
	if m.IsScheduledFuture {
		return LabelScheduled
	}
	return LabelPublished
}

// GetPostPublicationMeta resolves the publication state of p at now. The
// effective timestamp falls back publishedAt → scheduledFor → createdAt and
// is nil while the post is not ready.
func GetPostPublicationMeta(p Post, now time.Time) PublicationMeta {
	meta := PublicationMeta{
		IsReady:       IsPostReadyToShow(p, now),
		ScheduledDate: p.ScheduledFor,
	}
	meta.IsScheduledFuture = p.Status == StatusScheduled &&
		p.ScheduledFor != nil && p.ScheduledFor.After(now)

	if !meta.IsReady {
		return meta
	}
	switch {
	case p.PublishedAt != nil:
		meta.EffectivePublishedAt = p.PublishedAt
	case p.ScheduledFor != nil:
		meta.EffectivePublishedAt = p.ScheduledFor
	default:
		created := p.CreatedAt
		meta.EffectivePublishedAt = &created
	}
	return meta
}

// ImportantPosts returns the posts flagged as important, order preserved.
func ImportantPosts(posts []Post) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.IsImportant {
			out = append(out, p)
		}
	}
	return out
}

// FeedMode selects between the full feed and the important-only view.
type FeedMode string

const (
	FeedModeAll       FeedMode = "all"
	FeedModeImportant FeedMode = "important"
)

// FilterPostsForFeedMode applies the feed mode toggle.
func FilterPostsForFeedMode(posts []Post, mode FeedMode) []Post {
	if mode == FeedModeImportant {
		return ImportantPosts(posts)
	}
	return posts
}

// HasLike reports whether userID liked the post.
func (p Post) HasLike(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Comment is a reply attached to a post.
type Comment struct {
	ID         string    `json:"id" bson:"_id"`
	PostID     string    `json:"post_id" bson:"post_id"`
	AuthorID   string    `json:"author_id" bson:"author_id"`
	AuthorName string    `json:"author_name" bson:"author_name"`
	Content    string    `json:"content" bson:"content"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

func (c Comment) EntityID() string { return c.ID }
