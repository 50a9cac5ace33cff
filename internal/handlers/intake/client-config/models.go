package clientconfig

import "bizplan-intake/internal/models"

// Output is the browser-side configuration of the intake form.
type Output struct {
	PlacesScriptURL string          `json:"placesScriptUrl"`
	PricingModels   []models.Option `json:"pricingModels"`
	CustomerTypes   []models.Option `json:"customerTypes"`
}
