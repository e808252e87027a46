package domain

import "fmt"

// All is the wildcard value for both audience dimensions.
const All = "all"

// RoleTarget is the sector an item is meant for, or "all".
type RoleTarget string

// CompanyTarget is the company an item is restricted to, or "all".
type CompanyTarget string

const (
	AllRoles     RoleTarget    = All
	AllCompanies CompanyTarget = All
)

// ParseRoleTarget maps an absent value to "all" and rejects unknown sectors.
func ParseRoleTarget(s string) (RoleTarget, error) {
	if s == "" || s == All {
		return AllRoles, nil
	}
	if _, err := ParseCategory(s); err != nil {
		return "", fmt.Errorf("%w: role target %q", ErrInvalidAudience, s)
	}
	return RoleTarget(s), nil
}

// ParseCompanyTarget maps an absent value to "all".
func ParseCompanyTarget(s string) CompanyTarget {
	if s == "" {
		return AllCompanies
	}
	return CompanyTarget(s)
}

// Audience is the targeting shared by posts and calendar events.
type Audience struct {
	RoleTarget    RoleTarget    `json:"role_target" bson:"role_target"`
	CompanyTarget CompanyTarget `json:"company_target" bson:"company_target"`
}

// Target satisfies Targeted for any type embedding Audience.
func (a Audience) Target() Audience { return a }

// Targeted is anything carrying an audience target.
type Targeted interface {
	Target() Audience
}

// MatchesUserAudience decides whether user may see item. A nil user means
// there is no session and everything is visible; admins see everything.
func MatchesUserAudience[T Targeted](item T, user *User) bool {
	if user == nil || user.Role.IsAdmin() {
		return true
	}
	a := item.Target()
	matchesRole := a.RoleTarget == AllRoles || string(a.RoleTarget) == string(user.Category)
	matchesCompany := a.CompanyTarget == AllCompanies ||
		(user.CompanyID != "" && string(a.CompanyTarget) == user.CompanyID)
	return matchesRole && matchesCompany
}

// FilterItemsForUser returns items unchanged for nil or admin users and the
// matching subset, in order, for everyone else.
func FilterItemsForUser[T Targeted](items []T, user *User) []T {
	if user == nil || user.Role.IsAdmin() {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if MatchesUserAudience(item, user) {
			out = append(out, item)
		}
	}
	return out
}

// FilterBySelectors applies explicit role/company filters regardless of the
// viewer. "all" on either side disables that dimension.
func FilterBySelectors[T Targeted](items []T, role RoleTarget, company CompanyTarget) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		a := item.Target()
		if (role == AllRoles || a.RoleTarget == role) &&
			(company == AllCompanies || a.CompanyTarget == company) {
			out = append(out, item)
		}
	}
	return out
}
