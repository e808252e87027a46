package domain

import (
	"fmt"
	"time"
)

// Role defines what a user is allowed to do in the portal.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// IsAdmin reports whether the role bypasses audience filters.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Category is the sector a collaborator works in.
type Category string

const (
	CategoryVendedor       Category = "vendedor"
	CategoryTecnico        Category = "tecnico"
	CategoryRH             Category = "rh"
	CategoryAdministrativo Category = "administrativo"
	CategoryOutros         Category = "outros"
)

var categories = map[Category]struct{}{
	CategoryVendedor:       {},
	CategoryTecnico:        {},
	CategoryRH:             {},
	CategoryAdministrativo: {},
	CategoryOutros:         {},
}

// ParseCategory validates a raw category value.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categories[c]; !ok {
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidInput, s)
	}
	return c, nil
}

// User models an authenticated collaborator.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	FullName     string    `json:"full_name" bson:"full_name"`
	Role         Role      `json:"role" bson:"role"`
	Category     Category  `json:"category" bson:"category"`
	CompanyID    string    `json:"company_id,omitempty" bson:"company_id,omitempty"`
	Sector       string    `json:"sector,omitempty" bson:"sector,omitempty"`
	BirthDate    string    `json:"birth_date,omitempty" bson:"birth_date,omitempty"` // YYYY-MM-DD
	PhotoURL     string    `json:"photo_url,omitempty" bson:"photo_url,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

func (u User) EntityID() string { return u.ID }

// IsAdmin is nil-safe: a missing session is not an admin.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role.IsAdmin()
}
