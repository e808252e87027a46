package domain

import (
	"sort"
	"time"
)

// Extension is an internal phone extension ("ramal").
type Extension struct {
	ID        string     `json:"id" bson:"_id"`
	Name      string     `json:"name" bson:"name"`
	Sector    string     `json:"sector" bson:"sector"`
	Extension string     `json:"extension" bson:"extension"`
	Phone     string     `json:"phone,omitempty" bson:"phone,omitempty"`
	Email     string     `json:"email,omitempty" bson:"email,omitempty"`
	CompanyID string     `json:"company_id" bson:"company_id"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

func (e Extension) EntityID() string { return e.ID }

// SectorGroup is the set of extensions sharing a sector.
type SectorGroup struct {
	Sector     string      `json:"sector"`
	Extensions []Extension `json:"extensions"`
}

// GroupExtensionsBySector groups extensions by sector, sectors sorted
// alphabetically, extensions in input order within each sector.
func GroupExtensionsBySector(exts []Extension) []SectorGroup {
	index := make(map[string]int)
	var groups []SectorGroup
	for _, e := range exts {
		i, ok := index[e.Sector]
		if !ok {
			i = len(groups)
			index[e.Sector] = i
			groups = append(groups, SectorGroup{Sector: e.Sector})
		}
		groups[i].Extensions = append(groups[i].Extensions, e)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Sector < groups[j].Sector })
	return groups
}
