package handler

import (
	"time"

	"github.com/ayel/intranet/internal/core/domain"
	"github.com/ayel/intranet/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Username  string `json:"username"   validate:"required,min=3"`
	Password  string `json:"password"   validate:"required,min=6"`
	Email     string `json:"email"      validate:"omitempty,email"`
	Phone     string `json:"phone"`
	FullName  string `json:"full_name"  validate:"required"`
	Category  string `json:"category"   validate:"required,oneof=vendedor tecnico rh administrativo outros"`
	Sector    string `json:"sector"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	PhotoURL  string `json:"photo_url"  validate:"omitempty,url"`
}

type assignCompanyRequest struct {
	CompanyID string `json:"company_id"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// --- Mural ---

// Publish modes accepted on post create/update.
const (
	publishNow      = "now"
	publishSchedule = "schedule"
)

type postRequest struct {
	Title         string `json:"title"`
	Content       string `json:"content"        validate:"required"`
	ImageURL      string `json:"image_url"      validate:"omitempty,url"`
	RoleTarget    string `json:"role_target"    validate:"omitempty,oneof=all vendedor tecnico rh administrativo outros"`
	CompanyTarget string `json:"company_target"`
	IsImportant   bool   `json:"is_important"`
	// PublishMode is "now" or "schedule"; empty infers it from ScheduledFor.
	PublishMode  string     `json:"publish_mode"  validate:"omitempty,oneof=now schedule"`
	ScheduledFor *time.Time `json:"scheduled_for"`
}

type publicationResponse struct {
	Label                string     `json:"label"`
	IsScheduledFuture    bool       `json:"is_scheduled_future"`
	IsReady              bool       `json:"is_ready"`
	ScheduledDate        *time.Time `json:"scheduled_date,omitempty"`
	EffectivePublishedAt *time.Time `json:"effective_published_at,omitempty"`
}

type postResponse struct {
	domain.Post
	LikeCount   int                 `json:"like_count"`
	LikedByMe   bool                `json:"liked_by_me"`
	Publication publicationResponse `json:"publication"`
}

type createPostResponse struct {
	postResponse
	Replayed bool `json:"replayed,omitempty"`
}

type commentRequest struct {
	Content string `json:"content" validate:"required"`
}

type likeResponse struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}

func toPostResponse(v ports.PostView, viewerID string) postResponse {
	return postResponse{
		Post:      v.Post,
		LikeCount: len(v.Post.Likes),
		LikedByMe: v.Post.HasLike(viewerID),
		Publication: publicationResponse{
			Label:                v.Meta.Label(),
			IsScheduledFuture:    v.Meta.IsScheduledFuture,
			IsReady:              v.Meta.IsReady,
			ScheduledDate:        v.Meta.ScheduledDate,
			EffectivePublishedAt: v.Meta.EffectivePublishedAt,
		},
	}
}

// --- Calendar ---

type eventRequest struct {
	Title         string `json:"title"          validate:"required"`
	Description   string `json:"description"`
	Date          string `json:"date"           validate:"required,datetime=2006-01-02"`
	Type          string `json:"type"           validate:"required,oneof=feriado pagamento reuniao treinamento outro"`
	Color         string `json:"color"          validate:"omitempty,hexcolor"`
	CompanyID     string `json:"company_id"`
	RoleTarget    string `json:"role_target"    validate:"omitempty,oneof=all vendedor tecnico rh administrativo outros"`
	CompanyTarget string `json:"company_target"`
}

func (r eventRequest) input() ports.EventInput {
	return ports.EventInput{
		Title:         r.Title,
		Description:   r.Description,
		Date:          r.Date,
		Type:          r.Type,
		Color:         r.Color,
		CompanyID:     r.CompanyID,
		RoleTarget:    r.RoleTarget,
		CompanyTarget: r.CompanyTarget,
	}
}

type calendarResponse struct {
	Events []domain.Event             `json:"events"`
	ByDate map[string][]domain.Event `json:"by_date"`
}

// --- Catalogs ---

type trainingRequest struct {
	Title            string `json:"title"             validate:"required"`
	ShortDescription string `json:"short_description"`
	ImageURL         string `json:"image_url"         validate:"omitempty,url"`
	Category         string `json:"category"          validate:"required,oneof=vendedor tecnico suporte geral"`
	Content          string `json:"content"`
	CompanyID        string `json:"company_id"        validate:"required"`
}

func (r trainingRequest) input() ports.TrainingInput {
	return ports.TrainingInput{
		Title:            r.Title,
		ShortDescription: r.ShortDescription,
		ImageURL:         r.ImageURL,
		Category:         r.Category,
		Content:          r.Content,
		CompanyID:        r.CompanyID,
	}
}

type companyRequest struct {
	Name       string `json:"name"        validate:"required"`
	CNPJ       string `json:"cnpj"`
	Logo       string `json:"logo"`
	BrandColor string `json:"brand_color" validate:"omitempty,hexcolor"`
}

func (r companyRequest) input() ports.CompanyInput {
	return ports.CompanyInput{Name: r.Name, CNPJ: r.CNPJ, Logo: r.Logo, BrandColor: r.BrandColor}
}

type extensionRequest struct {
	Name      string `json:"name"       validate:"required"`
	Sector    string `json:"sector"     validate:"required"`
	Extension string `json:"extension"  validate:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email"      validate:"omitempty,email"`
	CompanyID string `json:"company_id" validate:"required"`
}

func (r extensionRequest) input() ports.ExtensionInput {
	return ports.ExtensionInput{
		Name:      r.Name,
		Sector:    r.Sector,
		Extension: r.Extension,
		Phone:     r.Phone,
		Email:     r.Email,
		CompanyID: r.CompanyID,
	}
}

type shortcutRequest struct {
	Title       string `json:"title"       validate:"required"`
	URL         string `json:"url"         validate:"required,url"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	CompanyID   string `json:"company_id"`
}

func (r shortcutRequest) input() ports.ShortcutInput {
	return ports.ShortcutInput{
		Title:       r.Title,
		URL:         r.URL,
		Description: r.Description,
		Icon:        r.Icon,
		Category:    r.Category,
		CompanyID:   r.CompanyID,
	}
}

// --- Directory ---

type birthdaysResponse struct {
	Month         int                      `json:"month"`
	Collaborators []domain.Collaborator    `json:"collaborators"`
	Next          *domain.UpcomingBirthday `json:"next,omitempty"`
}
