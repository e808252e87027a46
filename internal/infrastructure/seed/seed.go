// Package seed loads portal fixtures from YAML into any storage driver.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/ayel/intranet/internal/core/domain"
	"github.com/ayel/intranet/internal/core/ports"
)

// Fixtures is the document layout of a seed file. Posts and comments carry an
// age relative to load time so a fresh database always has a recent mural.
type Fixtures struct {
	Companies  []CompanyFixture   `yaml:"companies"`
	Users      []UserFixture      `yaml:"users"`
	Posts      []PostFixture      `yaml:"posts"`
	Comments   []CommentFixture   `yaml:"comments"`
	Events     []EventFixture     `yaml:"events"`
	Trainings  []TrainingFixture  `yaml:"trainings"`
	Extensions []ExtensionFixture `yaml:"extensions"`
	Shortcuts  []ShortcutFixture  `yaml:"shortcuts"`
}

type CompanyFixture struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	CNPJ       string `yaml:"cnpj"`
	Logo       string `yaml:"logo"`
	BrandColor string `yaml:"brand_color"`
}

type TrainingFixture struct {
	ID               string `yaml:"id"`
	Title            string `yaml:"title"`
	ShortDescription string `yaml:"short_description"`
	ImageURL         string `yaml:"image_url"`
	Category         string `yaml:"category"`
	Content          string `yaml:"content"`
	CompanyID        string `yaml:"company_id"`
}

type ExtensionFixture struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Sector    string `yaml:"sector"`
	Extension string `yaml:"extension"`
	Phone     string `yaml:"phone"`
	Email     string `yaml:"email"`
	CompanyID string `yaml:"company_id"`
}

type ShortcutFixture struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Category    string `yaml:"category"`
	CreatedBy   string `yaml:"created_by"`
	CompanyID   string `yaml:"company_id"`
}

type UserFixture struct {
	ID        string `yaml:"id"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Email     string `yaml:"email"`
	Phone     string `yaml:"phone"`
	FullName  string `yaml:"full_name"`
	Role      string `yaml:"role"`
	Category  string `yaml:"category"`
	CompanyID string `yaml:"company_id"`
	Sector    string `yaml:"sector"`
	BirthDate string `yaml:"birth_date"`
	PhotoURL  string `yaml:"photo_url"`
}

type PostFixture struct {
	ID            string        `yaml:"id"`
	AuthorID      string        `yaml:"author_id"`
	AuthorName    string        `yaml:"author_name"`
	Title         string        `yaml:"title"`
	Content       string        `yaml:"content"`
	ImageURL      string        `yaml:"image_url"`
	RoleTarget    string        `yaml:"role_target"`
	CompanyTarget string        `yaml:"company_target"`
	IsImportant   bool          `yaml:"is_important"`
	Likes         []string      `yaml:"likes"`
	CompanyID     string        `yaml:"company_id"`
	Age           time.Duration `yaml:"age"`
	// ScheduledIn > 0 seeds a post scheduled that far in the future.
	ScheduledIn time.Duration `yaml:"scheduled_in"`
}

type CommentFixture struct {
	ID         string        `yaml:"id"`
	PostID     string        `yaml:"post_id"`
	AuthorID   string        `yaml:"author_id"`
	AuthorName string        `yaml:"author_name"`
	Content    string        `yaml:"content"`
	Age        time.Duration `yaml:"age"`
}

type EventFixture struct {
	ID            string `yaml:"id"`
	Title         string `yaml:"title"`
	Description   string `yaml:"description"`
	Date          string `yaml:"date"`
	Type          string `yaml:"type"`
	Color         string `yaml:"color"`
	CreatedBy     string `yaml:"created_by"`
	CompanyID     string `yaml:"company_id"`
	RoleTarget    string `yaml:"role_target"`
	CompanyTarget string `yaml:"company_target"`
}

// Load reads and strictly decodes a fixture file; unknown keys are errors.
func Load(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &f, nil
}

// Result counts the records inserted by Apply.
type Result struct {
	Inserted int
	Skipped  int
}

// Seeder writes fixtures into a store. Records whose id already exists are
// left untouched, so seeding twice is safe.
type Seeder struct {
	store  ports.Store
	logger zerolog.Logger
	now    func() time.Time
	cost   int
}

func NewSeeder(store ports.Store, logger zerolog.Logger) *Seeder {
	return &Seeder{store: store, logger: logger, now: time.Now, cost: bcrypt.DefaultCost}
}

// Apply inserts every fixture missing from the store.
func (s *Seeder) Apply(ctx context.Context, f *Fixtures) (Result, error) {
	now := s.now().UTC()
	var res Result

	for _, cf := range f.Companies {
		c := domain.Company{ID: cf.ID, Name: cf.Name, CNPJ: cf.CNPJ, Logo: cf.Logo, BrandColor: cf.BrandColor, CreatedAt: now}
		if err := insert(ctx, s.store.Companies, c, &res); err != nil {
			return res, err
		}
	}

	for _, uf := range f.Users {
		u, err := s.user(uf, now)
		if err != nil {
			return res, err
		}
		if err := insert[domain.User](ctx, s.store.Users, u, &res); err != nil {
			return res, err
		}
	}

	for _, pf := range f.Posts {
		p, err := post(pf, now)
		if err != nil {
			return res, err
		}
		if err := insert(ctx, s.store.Posts, p, &res); err != nil {
			return res, err
		}
	}

	for _, cf := range f.Comments {
		c := domain.Comment{
			ID:         cf.ID,
			PostID:     cf.PostID,
			AuthorID:   cf.AuthorID,
			AuthorName: cf.AuthorName,
			Content:    cf.Content,
			CreatedAt:  now.Add(-cf.Age),
		}
		if err := insert(ctx, s.store.Comments, c, &res); err != nil {
			return res, err
		}
	}

	for _, ef := range f.Events {
		e, err := event(ef, now)
		if err != nil {
			return res, err
		}
		if err := insert(ctx, s.store.Events, e, &res); err != nil {
			return res, err
		}
	}

	for _, tf := range f.Trainings {
		category, err := domain.ParseTrainingCategory(tf.Category)
		if err != nil {
			return res, fmt.Errorf("training %s: %w", tf.ID, err)
		}
		t := domain.Training{
			ID:               tf.ID,
			Title:            tf.Title,
			ShortDescription: tf.ShortDescription,
			ImageURL:         tf.ImageURL,
			Category:         category,
			Content:          tf.Content,
			CompanyID:        tf.CompanyID,
			CreatedAt:        now,
		}
		if err := insert(ctx, s.store.Trainings, t, &res); err != nil {
			return res, err
		}
	}

	for _, xf := range f.Extensions {
		e := domain.Extension{
			ID:        xf.ID,
			Name:      xf.Name,
			Sector:    xf.Sector,
			Extension: xf.Extension,
			Phone:     xf.Phone,
			Email:     xf.Email,
			CompanyID: xf.CompanyID,
			CreatedAt: now,
		}
		if err := insert(ctx, s.store.Extensions, e, &res); err != nil {
			return res, err
		}
	}

	for _, sf := range f.Shortcuts {
		sc := domain.Shortcut{
			ID:          sf.ID,
			Title:       sf.Title,
			URL:         sf.URL,
			Description: sf.Description,
			Icon:        sf.Icon,
			Category:    sf.Category,
			CreatedBy:   sf.CreatedBy,
			CreatedAt:   now,
			CompanyID:   sf.CompanyID,
		}
		if err := insert(ctx, s.store.Shortcuts, sc, &res); err != nil {
			return res, err
		}
	}

	s.logger.Info().Int("inserted", res.Inserted).Int("skipped", res.Skipped).Msg("seed applied")
	return res, nil
}

func insert[T ports.Entity](ctx context.Context, repo ports.Repository[T], item T, res *Result) error {
	if item.EntityID() == "" {
		return fmt.Errorf("%w: seed record without id", domain.ErrInvalidInput)
	}
	if _, err := repo.Get(ctx, item.EntityID()); err == nil {
		res.Skipped++
		return nil
	}
	if _, err := repo.Create(ctx, item); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			res.Skipped++
			return nil
		}
		return fmt.Errorf("seed %s: %w", item.EntityID(), err)
	}
	res.Inserted++
	return nil
}

func (s *Seeder) user(uf UserFixture, now time.Time) (domain.User, error) {
	if uf.Username == "" || uf.Password == "" {
		return domain.User{}, fmt.Errorf("%w: user %s needs username and password", domain.ErrInvalidInput, uf.ID)
	}
	category, err := domain.ParseCategory(uf.Category)
	if err != nil {
		return domain.User{}, fmt.Errorf("user %s: %w", uf.ID, err)
	}
	role := domain.Role(uf.Role)
	switch role {
	case "":
		role = domain.RoleUser
	case domain.RoleUser, domain.RoleAdmin, domain.RoleSuperAdmin:
	default:
		return domain.User{}, fmt.Errorf("%w: user %s has unknown role %q", domain.ErrInvalidInput, uf.ID, uf.Role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(uf.Password), s.cost)
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{
		ID:           uf.ID,
		Username:     uf.Username,
		Email:        uf.Email,
		Phone:        uf.Phone,
		PasswordHash: string(hash),
		FullName:     uf.FullName,
		Role:         role,
		Category:     category,
		CompanyID:    uf.CompanyID,
		Sector:       uf.Sector,
		BirthDate:    uf.BirthDate,
		PhotoURL:     uf.PhotoURL,
		CreatedAt:    now,
	}, nil
}

func post(pf PostFixture, now time.Time) (domain.Post, error) {
	role, err := domain.ParseRoleTarget(pf.RoleTarget)
	if err != nil {
		return domain.Post{}, fmt.Errorf("post %s: %w", pf.ID, err)
	}
	likes := pf.Likes
	if likes == nil {
		likes = []string{}
	}
	p := domain.Post{
		ID:          pf.ID,
		AuthorID:    pf.AuthorID,
		AuthorName:  pf.AuthorName,
		Title:       pf.Title,
		Content:     pf.Content,
		ImageURL:    pf.ImageURL,
		Audience:    domain.Audience{RoleTarget: role, CompanyTarget: domain.ParseCompanyTarget(pf.CompanyTarget)},
		IsImportant: pf.IsImportant,
		Likes:       likes,
		CompanyID:   pf.CompanyID,
		CreatedAt:   now.Add(-pf.Age),
	}
	if pf.ScheduledIn > 0 {
		at := now.Add(pf.ScheduledIn)
		p.Status = domain.StatusScheduled
		p.ScheduledFor = &at
	} else {
		published := p.CreatedAt
		p.Status = domain.StatusPublished
		p.PublishedAt = &published
	}
	return p, nil
}

func event(ef EventFixture, now time.Time) (domain.Event, error) {
	typ, err := domain.ParseEventType(ef.Type)
	if err != nil {
		return domain.Event{}, fmt.Errorf("event %s: %w", ef.ID, err)
	}
	if _, err := time.Parse(domain.DateLayout, ef.Date); err != nil {
		return domain.Event{}, fmt.Errorf("%w: event %s date %q", domain.ErrInvalidInput, ef.ID, ef.Date)
	}
	role, err := domain.ParseRoleTarget(ef.RoleTarget)
	if err != nil {
		return domain.Event{}, fmt.Errorf("event %s: %w", ef.ID, err)
	}
	color := ef.Color
	if color == "" {
		color = typ.DefaultColor()
	}
	return domain.Event{
		ID:          ef.ID,
		Title:       ef.Title,
		Description: ef.Description,
		Date:        ef.Date,
		Type:        typ,
		Color:       color,
		CreatedBy:   ef.CreatedBy,
		CreatedAt:   now,
		CompanyID:   ef.CompanyID,
		Audience:    domain.Audience{RoleTarget: role, CompanyTarget: domain.ParseCompanyTarget(ef.CompanyTarget)},
	}, nil
}
