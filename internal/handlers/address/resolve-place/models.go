package resolveplace

import "bizplan-intake/internal/models"

type Input struct {
	PlaceID string `json:"placeId"`
	// Field is the visible form field the place was picked in.
	Field string `json:"field,omitempty"`
}

type Output struct {
	PlaceID string         `json:"placeId"`
	Address models.Address `json:"address"`
	// Values are the form values to write, visible field included.
	Values map[string]string `json:"values"`
}
