package clientconfig

import (
	"context"
	"net/http"

	commonhttp "bizplan-intake/internal/common/http"
	"bizplan-intake/internal/common/logger"
	"bizplan-intake/internal/models"
	"bizplan-intake/internal/places"
)

const (
	Route = "/intake/config"
)

type Handler struct {
	output *Output
	logger logger.Logger
}

// NewHandler resolves the script URL once; a missing key is warned about at startup.
func NewHandler(placesAPIKey string, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"route": Route})
	return &Handler{
		output: &Output{
			PlacesScriptURL: places.ScriptURL(placesAPIKey, l),
			PricingModels:   models.PricingModelOptions,
			CustomerTypes:   models.CustomerTypeOptions,
		},
		logger: l,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	output, _ := h.Execute(r.Context())
	commonhttp.WriteJSON(w, http.StatusOK, output)
}

func (h *Handler) Execute(_ context.Context) (*Output, error) {
	return h.output, nil
}

