package validateform

import (
	"context"
	"net/http"

	commonerrors "bizplan-intake/internal/common/errors"
	commonhttp "bizplan-intake/internal/common/http"
	"bizplan-intake/internal/common/logger"
	"bizplan-intake/internal/common/metrics"
	"bizplan-intake/internal/intake"
)

const (
	Route = "/intake/validate"
)

type Handler struct {
	config *Config
	errors *commonerrors.Handler
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"route": Route})
	return &Handler{
		config: config,
		errors: commonerrors.NewHandler(l),
		logger: l,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := commonhttp.DecodeJSON(r, inputSchema, &input); err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, output)
}

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	errs := intake.NewFormFromValues(input.Values).Validate()
	metrics.RecordValidationErrors(errs)

	return &Output{Valid: len(errs) == 0, Errors: errs}, nil
}
