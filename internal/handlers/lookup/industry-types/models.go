package industrytypes

import "bizplan-intake/internal/models"

type Input struct {
	Query string `json:"q"`
}

type Output struct {
	Options []models.IndustryType `json:"options"`
}
