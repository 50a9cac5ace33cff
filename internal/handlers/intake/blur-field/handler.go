package blurfield

import (
	"context"
	"net/http"

	commonerrors "bizplan-intake/internal/common/errors"
	commonhttp "bizplan-intake/internal/common/http"
	"bizplan-intake/internal/common/logger"
	"bizplan-intake/internal/common/metrics"
	"bizplan-intake/internal/intake"
	"bizplan-intake/internal/models"
)

const (
	Route = "/intake/blur"
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

// Execute normalizes the field and validates it against the whole form,
// reporting only that field's error.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	if !models.IsKnownField(input.Field) {
		return nil, commonerrors.NewInvalidRequestError("unknown field: " + input.Field)
	}

	form := intake.NewFormFromValues(input.Values)
	value, msg := form.Blur(input.Field)

	if msg != "" {
		metrics.RecordValidationErrors(map[string]string{input.Field: msg})
		h.logger.Debug("field invalid on blur", map[string]interface{}{
			"field": input.Field,
			"error": msg,
		})
	}

	return &Output{Field: input.Field, Value: value, Error: msg}, nil
}
