package domain

import (
	"fmt"
	"time"
)

// TrainingCategory groups learning content by audience.
type TrainingCategory string

const (
	TrainingVendedor TrainingCategory = "vendedor"
	TrainingTecnico  TrainingCategory = "tecnico"
	TrainingSuporte  TrainingCategory = "suporte"
	TrainingGeral    TrainingCategory = "geral"
)

// ParseTrainingCategory validates a raw training category.
func ParseTrainingCategory(s string) (TrainingCategory, error) {
	switch c := TrainingCategory(s); c {
	case TrainingVendedor, TrainingTecnico, TrainingSuporte, TrainingGeral:
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown training category %q", ErrInvalidInput, s)
}

// Training is a piece of learning content.
type Training struct {
	ID               string           `json:"id" bson:"_id"`
	Title            string           `json:"title" bson:"title"`
	ShortDescription string           `json:"short_description" bson:"short_description"`
	ImageURL         string           `json:"image_url" bson:"image_url"`
	Category         TrainingCategory `json:"category" bson:"category"`
	Content          string           `json:"content" bson:"content"`
	CompanyID        string           `json:"company_id" bson:"company_id"`
	CreatedAt        time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt        *time.Time       `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

func (t Training) EntityID() string { return t.ID }

// FilterTrainings keeps trainings matching company and category; "all" (or
// empty) disables a dimension.
func FilterTrainings(trainings []Training, companyID, category string) []Training {
	out := make([]Training, 0, len(trainings))
	for _, t := range trainings {
		if companyID != "" && companyID != All && t.CompanyID != companyID {
			continue
		}
		if category != "" && category != All && string(t.Category) != category {
			continue
		}
		out = append(out, t)
	}
	return out
}
