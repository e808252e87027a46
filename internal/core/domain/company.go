package domain

import "time"

// Company is one of the tenants sharing the portal.
type Company struct {
	ID         string    `json:"id" bson:"_id"`
	Name       string    `json:"name" bson:"name"`
	CNPJ       string    `json:"cnpj,omitempty" bson:"cnpj,omitempty"`
	Logo       string    `json:"logo,omitempty" bson:"logo,omitempty"`
	BrandColor string    `json:"brand_color,omitempty" bson:"brand_color,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

func (c Company) EntityID() string { return c.ID }

// Shortcut is a quick link to an internal or external tool.
type Shortcut struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	URL         string    `json:"url" bson:"url"`
	Description string    `json:"description" bson:"description"`
	Icon        string    `json:"icon,omitempty" bson:"icon,omitempty"`
	Category    string    `json:"category,omitempty" bson:"category,omitempty"`
	CreatedBy   string    `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	CompanyID   string    `json:"company_id,omitempty" bson:"company_id,omitempty"`
}

func (s Shortcut) EntityID() string { return s.ID }
