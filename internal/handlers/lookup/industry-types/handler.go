package industrytypes

import (
	"context"
	"errors"
	"net/http"

	commonerrors "bizplan-intake/internal/common/errors"
	commonhttp "bizplan-intake/internal/common/http"
	"bizplan-intake/internal/common/logger"
	"bizplan-intake/internal/lookup"
	"bizplan-intake/internal/models"
)

const (
	Route = lookup.IndustryTypesPath
)

type Handler struct {
	config *Config
	lister lookup.Lister[models.IndustryType]
	errors *commonerrors.Handler
	logger logger.Logger
}

func NewHandler(config *Config, lister lookup.Lister[models.IndustryType], log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"route": Route})
	return &Handler{
		config: config,
		lister: lister,
		errors: commonerrors.NewHandler(l),
		logger: l,
	}
}

// ServeHTTP writes the matching options as a bare JSON array.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, &Input{Query: r.URL.Query().Get("q")})
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, output.Options)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	options, err := h.lister.List(ctx)
	if err != nil {
		if !errors.Is(err, lookup.ErrLookupQueryFailed) {
			h.logger.Warn("unexpected lookup error", map[string]interface{}{"error": err})
		}
		return nil, commonerrors.NewLookupQueryFailedError(lookup.ListIndustryTypes, err)
	}

	filtered := lookup.Filter(options, input.Query)
	if filtered == nil {
		filtered = []models.IndustryType{}
	}
	return &Output{Options: filtered}, nil
}
