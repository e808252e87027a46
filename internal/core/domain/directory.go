package domain

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Collaborator is the public directory view of a user.
type Collaborator struct {
	ID        string   `json:"id"`
	FullName  string   `json:"full_name"`
	Category  Category `json:"category"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone,omitempty"`
	Sector    string   `json:"sector,omitempty"`
	BirthDate string   `json:"birth_date,omitempty"`
	PhotoURL  string   `json:"photo_url,omitempty"`
	CompanyID string   `json:"company_id,omitempty"`
}

// CollaboratorFromUser drops credentials and account metadata.
func CollaboratorFromUser(u User) Collaborator {
	return Collaborator{
		ID:        u.ID,
		FullName:  u.FullName,
		Category:  u.Category,
		Email:     u.Email,
		Phone:     u.Phone,
		Sector:    u.Sector,
		BirthDate: u.BirthDate,
		PhotoURL:  u.PhotoURL,
		CompanyID: u.CompanyID,
	}
}

// Fold lowercases s and strips diacritics so "João" matches "joao".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// SearchCollaborators matches query against name, email, sector, category
// and company name. companyNames maps company id to display name.
func SearchCollaborators(list []Collaborator, query string, companyNames map[string]string) []Collaborator {
	q := Fold(strings.TrimSpace(query))
	if q == "" {
		return list
	}
	out := make([]Collaborator, 0, len(list))
	for _, c := range list {
		fields := []string{c.FullName, c.Email, c.Sector, string(c.Category), companyNames[c.CompanyID]}
		for _, f := range fields {
			if f != "" && strings.Contains(Fold(f), q) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func birthMonthDay(birthDate string) (time.Month, int, bool) {
	d, err := time.Parse(DateLayout, birthDate)
	if err != nil {
		return 0, 0, false
	}
	return d.Month(), d.Day(), true
}

// BirthdaysInMonth returns collaborators born in month, order preserved.
func BirthdaysInMonth(list []Collaborator, month time.Month) []Collaborator {
	out := make([]Collaborator, 0)
	for _, c := range list {
		if m, _, ok := birthMonthDay(c.BirthDate); ok && m == month {
			out = append(out, c)
		}
	}
	return out
}

// UpcomingBirthday pairs a collaborator with their next birthday.
type UpcomingBirthday struct {
	Collaborator Collaborator `json:"collaborator"`
	Date         time.Time    `json:"date"`
}

// NextBirthday finds the closest birthday on or after today. Ties keep the
// first collaborator in list order.
func NextBirthday(list []Collaborator, today time.Time) (UpcomingBirthday, bool) {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	var best UpcomingBirthday
	found := false
	for _, c := range list {
		m, d, ok := birthMonthDay(c.BirthDate)
		if !ok {
			continue
		}
		next := time.Date(start.Year(), m, d, 0, 0, 0, 0, start.Location())
		if next.Before(start) {
			next = time.Date(start.Year()+1, m, d, 0, 0, 0, 0, start.Location())
		}
		if !found || next.Before(best.Date) {
			best = UpcomingBirthday{Collaborator: c, Date: next}
			found = true
		}
	}
	return best, found
}
