package changefield

import (
	"context"
	"net/http"

	commonerrors "bizplan-intake/internal/common/errors"
	commonhttp "bizplan-intake/internal/common/http"
	"bizplan-intake/internal/common/logger"
	"bizplan-intake/internal/intake"
	"bizplan-intake/internal/models"
)

const (
	Route = "/intake/change"
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

// Execute applies one keystroke-level edit: numeric fields lose every minus sign.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	if !models.IsKnownField(input.Field) {
		return nil, commonerrors.NewInvalidRequestError("unknown field: " + input.Field)
	}

	form := intake.NewFormFromValues(input.Values)
	value := form.Change(input.Field, input.Value)

	h.logger.Debug("field changed", map[string]interface{}{
		"field": input.Field,
	})

	return &Output{Field: input.Field, Value: value}, nil
}
