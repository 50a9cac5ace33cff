package resolveplace

import (
	"context"
	"errors"
	"net/http"

	commonerrors "bizplan-intake/internal/common/errors"
	commonhttp "bizplan-intake/internal/common/http"
	"bizplan-intake/internal/common/logger"
	"bizplan-intake/internal/intake"
	"bizplan-intake/internal/models"
	"bizplan-intake/internal/places"
)

const (
	Route = "/intake/address"
)

type PlaceLookup interface {
	Lookup(ctx context.Context, placeID string) (*models.Place, error)
}

type Handler struct {
	config *Config
	places PlaceLookup
	errors *commonerrors.Handler
	logger logger.Logger
}

func NewHandler(config *Config, lookup PlaceLookup, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"route": Route})
	return &Handler{
		config: config,
		places: lookup,
		errors: commonerrors.NewHandler(l),
		logger: l,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.config.Timeout)
	defer cancel()

	q := r.URL.Query()
	output, err := h.Execute(ctx, &Input{PlaceID: q.Get("place_id"), Field: q.Get("field")})
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	field := input.Field
	if field == "" {
		field = models.FieldAddress
	}
	if !models.IsKnownField(field) {
		return nil, commonerrors.NewInvalidRequestError("unknown field: " + field)
	}

	place, err := h.places.Lookup(ctx, input.PlaceID)
	if err != nil {
		if errors.Is(err, places.ErrMissingPlaceID) {
			return nil, commonerrors.NewInvalidRequestError("place_id is required")
		}
		return nil, commonerrors.NewPlaceLookupFailedError(input.PlaceID, err)
	}

	addr := places.Decompose(*place)

	form := intake.NewForm()
	form.ApplyPlace(field, addr)
	all := form.Values()

	values := map[string]string{field: all[field]}
	for _, f := range models.DerivedAddressFields {
		// Missing coordinates leave the client's previous ones alone.
		if (f == models.FieldAddressLat && addr.Lat == nil) || (f == models.FieldAddressLng && addr.Lng == nil) {
			continue
		}
		values[f] = all[f]
	}

	h.logger.Info("place resolved", map[string]interface{}{
		"placeId": input.PlaceID,
		"city":    addr.City,
		"state":   addr.State,
	})

	return &Output{PlaceID: input.PlaceID, Address: addr, Values: values}, nil
}
