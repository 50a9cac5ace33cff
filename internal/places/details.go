package places

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	commonhttp "bizplan-intake/internal/common/http"
	"bizplan-intake/internal/common/logger"
	"bizplan-intake/internal/common/observability"
	"bizplan-intake/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// DetailsFields restricts the details response to what Decompose reads.
const DetailsFields = "address_components,formatted_address,geometry"

const statusOK = "OK"

var (
	ErrPlaceLookupFailed = errors.New("PLACE_LOOKUP_FAILED")
	ErrMissingAPIKey     = errors.New("places api key is not configured")
	ErrMissingPlaceID    = errors.New("place id is required")
)

type detailsResponse struct {
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message,omitempty"`
	Result       models.Place `json:"result"`
}

// DetailsClient calls the Place Details web service.
type DetailsClient struct {
	client     *commonhttp.Client
	detailsURL string
	apiKey     string
	obs        *observability.Observability
	logger     logger.Logger
}

func NewDetailsClient(detailsURL, apiKey string, client *commonhttp.Client, obs *observability.Observability, log logger.Logger) *DetailsClient {
	if obs == nil {
		obs = observability.Noop()
	}
	return &DetailsClient{
		client:     client,
		detailsURL: detailsURL,
		apiKey:     apiKey,
		obs:        obs,
		logger:     log.WithFields(map[string]interface{}{"component": "places"}),
	}
}

// Lookup fetches one place by id.
func (c *DetailsClient) Lookup(ctx context.Context, placeID string) (*models.Place, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return nil, ErrMissingPlaceID
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: %v", ErrPlaceLookupFailed, ErrMissingAPIKey)
	}

	ctx, span := c.obs.StartSpan(ctx, "places.details", attribute.String("place.id", placeID))
	defer span.End()

	place, err := c.lookup(ctx, placeID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error("Place details lookup failed", map[string]interface{}{
			"placeId": placeID,
			"error":   err,
		})
		return nil, fmt.Errorf("%w: %v", ErrPlaceLookupFailed, err)
	}
	return place, nil
}

func (c *DetailsClient) lookup(ctx context.Context, placeID string) (*models.Place, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", DetailsFields)
	q.Set("key", c.apiKey)

	resp, err := c.client.Get(ctx, c.detailsURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() || !resp.IsJSON() {
		return nil, fmt.Errorf("unexpected response: status %d: %s", resp.StatusCode, resp.Snippet(120))
	}

	var body detailsResponse
	if err := resp.Decode(&body); err != nil {
		return nil, err
	}
	if body.Status != statusOK {
		if body.ErrorMessage != "" {
			return nil, fmt.Errorf("status %s: %s", body.Status, body.ErrorMessage)
		}
		return nil, fmt.Errorf("status %s", body.Status)
	}
	return &body.Result, nil
}
