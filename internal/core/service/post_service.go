package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ayel/intranet/internal/core/domain"
	"github.com/ayel/intranet/internal/core/ports"
)

const idempotencyScopePost = "post"

// PostService implements the mural: feed composition, publishing,
// scheduling, likes and comments.
type PostService struct {
	posts    ports.PostRepository
	comments ports.CommentRepository
	idem     ports.IdempotencyStore // optional
	logger   zerolog.Logger
	now      func() time.Time
}

func NewPostService(posts ports.PostRepository, comments ports.CommentRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *PostService {
	return &PostService{
		posts:    posts,
		comments: comments,
		idem:     idem,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *PostService) view(p domain.Post, now time.Time) ports.PostView {
	return ports.PostView{Post: p, Meta: domain.GetPostPublicationMeta(p, now)}
}

func (s *PostService) views(posts []domain.Post, now time.Time) []ports.PostView {
	out := make([]ports.PostView, len(posts))
	for i, p := range posts {
		out[i] = s.view(p, now)
	}
	return out
}

// visibleTo narrows posts to what viewer may read at now: audience first,
// then the scheduling gate for non-admins.
func visibleTo(posts []domain.Post, viewer *domain.User, now time.Time) []domain.Post {
	visible := domain.FilterItemsForUser(posts, viewer)
	if viewer.IsAdmin() {
		return visible
	}
	ready := make([]domain.Post, 0, len(visible))
	for _, p := range visible {
		if domain.IsPostReadyToShow(p, now) {
			ready = append(ready, p)
		}
	}
	return ready
}

func newestFirst(posts []domain.Post) {
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
}

// Feed composes the mural for viewer.
func (s *PostService) Feed(ctx context.Context, viewer *domain.User, q ports.FeedQuery) ([]ports.PostView, error) {
	all, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}
	newestFirst(all)

	now := s.now()
	posts := visibleTo(all, viewer, now)

	if viewer.IsAdmin() {
		role, err := domain.ParseRoleTarget(q.RoleFilter)
		if err != nil {
			return nil, err
		}
		posts = domain.FilterBySelectors(posts, role, domain.ParseCompanyTarget(q.CompanyFilter))
	}

	posts = domain.FilterPostsForFeedMode(posts, q.Mode)
	return s.views(posts, now), nil
}

// Important returns the important subset of viewer's feed.
func (s *PostService) Important(ctx context.Context, viewer *domain.User) ([]ports.PostView, error) {
	return s.Feed(ctx, viewer, ports.FeedQuery{Mode: domain.FeedModeImportant})
}

// getVisible loads a post and hides it from viewers outside its audience or
// before its scheduled time.
func (s *PostService) getVisible(ctx context.Context, viewer *domain.User, id string) (domain.Post, error) {
	p, err := s.posts.Get(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}
	if viewer.IsAdmin() {
		return p, nil
	}
	if !domain.MatchesUserAudience(p, viewer) || !domain.IsPostReadyToShow(p, s.now()) {
		return domain.Post{}, domain.ErrPostNotFound
	}
	return p, nil
}

func (s *PostService) Get(ctx context.Context, viewer *domain.User, id string) (*ports.PostView, error) {
	p, err := s.getVisible(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	v := s.view(p, s.now())
	return &v, nil
}

// applyInput validates in and writes it onto p. A nil schedule publishes at
// now; a schedule must be strictly in the future.
func applyInput(p *domain.Post, in ports.PostInput, now time.Time) error {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}
	role, err := domain.ParseRoleTarget(in.RoleTarget)
	if err != nil {
		return err
	}

	p.Title = strings.TrimSpace(in.Title)
	p.Content = content
	p.ImageURL = in.ImageURL
	p.Audience = domain.Audience{RoleTarget: role, CompanyTarget: domain.ParseCompanyTarget(in.CompanyTarget)}
	p.IsImportant = in.IsImportant

	if in.Schedule != nil {
		if !in.Schedule.After(now) {
			return fmt.Errorf("%w: scheduled date must be in the future", domain.ErrInvalidSchedule)
		}
		at := in.Schedule.UTC()
		p.Status = domain.StatusScheduled
		p.ScheduledFor = &at
		p.PublishedAt = nil
		return nil
	}

	if p.Status != domain.StatusPublished || p.PublishedAt == nil {
		published := now.UTC()
		p.PublishedAt = &published
	}
	p.Status = domain.StatusPublished
	p.ScheduledFor = nil
	return nil
}

// Create publishes or schedules a new post. A repeated Idempotency-Key
// returns the post created the first time.
func (s *PostService) Create(ctx context.Context, author *domain.User, in ports.CreatePostInput) (*ports.CreatePostResult, error) {
	if author == nil {
		return nil, domain.ErrForbidden
	}
	now := s.now()

	claimed := false
	if in.IdempotencyKey != "" && s.idem != nil {
		existing, ok, err := s.claim(ctx, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Str("post_id", existing.ID).Msg("idempotent replay")
			return &ports.CreatePostResult{Post: s.view(*existing, now), AlreadyExisted: true}, nil
		}
		claimed = ok
	}

	post := domain.Post{
		ID:         uuid.NewString(),
		AuthorID:   author.ID,
		AuthorName: author.FullName,
		Likes:      []string{},
		CompanyID:  author.CompanyID,
		CreatedAt:  now.UTC(),
	}
	created, err := s.createPost(ctx, post, in.PostInput, now)
	if err != nil {
		if claimed {
			s.release(ctx, in.IdempotencyKey)
		}
		return nil, err
	}

	if claimed {
		if err := s.idem.Remember(ctx, idempotencyScopePost, in.IdempotencyKey, created.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	s.logger.Info().
		Str("post_id", created.ID).
		Str("status", string(created.Status)).
		Str("role_target", string(created.RoleTarget)).
		Str("company_target", string(created.CompanyTarget)).
		Msg("post created")

	return &ports.CreatePostResult{Post: s.view(created, now)}, nil
}

func (s *PostService) createPost(ctx context.Context, post domain.Post, in ports.PostInput, now time.Time) (domain.Post, error) {
	if err := applyInput(&post, in, now); err != nil {
		return domain.Post{}, err
	}
	created, err := s.posts.Create(ctx, post)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create post")
		return domain.Post{}, err
	}
	return created, nil
}

// claim reserves key for this request. It returns the earlier post when the
// key already produced one, and ok=false when the store is unavailable and
// the post is created without idempotency.
func (s *PostService) claim(ctx context.Context, key string) (*domain.Post, bool, error) {
	id, claimed, err := s.idem.Claim(ctx, idempotencyScopePost, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency claim failed, creating anyway")
		return nil, false, nil
	}
	if claimed {
		return nil, true, nil
	}
	if id == "" {
		return nil, false, domain.ErrRequestInProgress
	}

	existing, err := s.posts.Get(ctx, id)
	if errors.Is(err, domain.ErrPostNotFound) {
		// The earlier post was deleted; the key now belongs to a new one.
		return nil, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &existing, false, nil
}

func (s *PostService) release(ctx context.Context, key string) {
	if err := s.idem.Release(ctx, idempotencyScopePost, key); err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to release idempotency key")
	}
}

func (s *PostService) Update(ctx context.Context, id string, in ports.PostInput) (*ports.PostView, error) {
	p, err := s.posts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := applyInput(&p, in, now); err != nil {
		return nil, err
	}
	updated, err := s.posts.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	v := s.view(updated, now)
	return &v, nil
}

// Delete removes a post and its comments.
func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	comments, err := s.comments.List(ctx)
	if err != nil {
		return fmt.Errorf("delete post comments: %w", err)
	}
	var errs []error
	for _, c := range comments {
		if c.PostID != id {
			continue
		}
		if err := s.comments.Delete(ctx, c.ID); err != nil && !errors.Is(err, domain.ErrCommentNotFound) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ToggleLike adds or removes viewer's like.
func (s *PostService) ToggleLike(ctx context.Context, viewer *domain.User, id string) (*ports.LikeResult, error) {
	if viewer == nil {
		return nil, domain.ErrForbidden
	}
	if _, err := s.getVisible(ctx, viewer, id); err != nil {
		return nil, err
	}

	liked, count, err := s.posts.ToggleLike(ctx, id, viewer.ID)
	if err != nil {
		return nil, err
	}
	return &ports.LikeResult{Liked: liked, Count: count}, nil
}

func (s *PostService) ListComments(ctx context.Context, viewer *domain.User, postID string) ([]domain.Comment, error) {
	if _, err := s.getVisible(ctx, viewer, postID); err != nil {
		return nil, err
	}
	all, err := s.comments.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Comment, 0)
	for _, c := range all {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *PostService) AddComment(ctx context.Context, viewer *domain.User, postID, content string) (*domain.Comment, error) {
	if viewer == nil {
		return nil, domain.ErrForbidden
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", domain.ErrInvalidInput)
	}
	if _, err := s.getVisible(ctx, viewer, postID); err != nil {
		return nil, err
	}

	created, err := s.comments.Create(ctx, domain.Comment{
		ID:         uuid.NewString(),
		PostID:     postID,
		AuthorID:   viewer.ID,
		AuthorName: viewer.FullName,
		Content:    content,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// PublishDue stamps scheduled posts whose time has come as published, using
// the scheduled time as the publication time.
func (s *PostService) PublishDue(ctx context.Context) (int, error) {
	all, err := s.posts.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("publish due: %w", err)
	}
	now := s.now()

	published := 0
	var errs []error
	for _, p := range all {
		if p.Status != domain.StatusScheduled || !domain.IsPostReadyToShow(p, now) {
			continue
		}
		at := *p.ScheduledFor
		ok, err := s.posts.MarkPublished(ctx, p.ID, at)
		if errors.Is(err, domain.ErrPostNotFound) {
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("publish %s: %w", p.ID, err))
			continue
		}
		if !ok {
			s.logger.Debug().Str("post_id", p.ID).Msg("post changed before publication, skipped")
			continue
		}
		published++
		s.logger.Info().Str("post_id", p.ID).Time("scheduled_for", at).Msg("scheduled post published")
	}
	return published, errors.Join(errs...)
}
