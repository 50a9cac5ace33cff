package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	commonerrors "bizplan-intake/internal/common/errors"
	commonhttp "bizplan-intake/internal/common/http"
	"bizplan-intake/internal/common/logger"
	"bizplan-intake/internal/common/metrics"
	"bizplan-intake/internal/common/observability"
	"bizplan-intake/internal/models"

	"go.opentelemetry.io/otel/attribute"
)

// FinancialsPath is the backend endpoint that receives the payload.
const FinancialsPath = "/api/financials"

const snippetLength = 120

// Submitter posts a validated form to the financials endpoint.
type Submitter struct {
	client *commonhttp.Client
	url    string
	obs    *observability.Observability
	logger logger.Logger
}

// NewSubmitter targets baseURL + FinancialsPath; an empty base keeps the path relative.
func NewSubmitter(baseURL string, client *commonhttp.Client, obs *observability.Observability, log logger.Logger) *Submitter {
	if obs == nil {
		obs = observability.Noop()
	}
	return &Submitter{
		client: client,
		url:    strings.TrimRight(baseURL, "/") + FinancialsPath,
		obs:    obs,
		logger: log.WithFields(map[string]interface{}{"component": "financials-submitter"}),
	}
}

// SubmitResult describes a completed exchange with the backend.
type SubmitResult struct {
	StatusCode int                    `json:"status"`
	Body       map[string]interface{} `json:"body,omitempty"`
	// FieldErrors holds backend messages that were attached to form fields.
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	// Unmapped holds backend error keys with no form field.
	Unmapped map[string]string `json:"unmapped,omitempty"`
}

// Submit validates the form, clears earlier backend errors and sends one
// request. It never retries. A returned *StandardError explains why the
// submission did not succeed; the form keeps any field errors.
func (s *Submitter) Submit(ctx context.Context, form *Form, requestID string) (*SubmitResult, error) {
	ctx, span := s.obs.StartSpan(ctx, "intake.submit", attribute.String("requestId", requestID))
	defer span.End()

	log := s.logger.WithFields(map[string]interface{}{"requestId": requestID})

	if fieldErrors := form.Validate(); len(fieldErrors) > 0 {
		metrics.RecordValidationErrors(fieldErrors)
		s.record(ctx, metrics.OutcomeInvalid, 0)
		log.Info("submission blocked by field errors", map[string]interface{}{
			"fields": sortedFieldNames(fieldErrors),
		})
		return nil, commonerrors.NewIntakeValidationFailedError(fieldErrors)
	}

	payload := BuildPayload(form.Values())
	form.ClearErrors(models.SubmittedFormFields()...)

	start := time.Now()
	resp, err := s.client.PostJSON(ctx, s.url, payload, map[string]string{
		commonhttp.HeaderRequestID: requestID,
	})
	elapsed := time.Since(start)
	if err != nil {
		s.record(ctx, metrics.OutcomeFailed, elapsed)
		log.Error("Error submitting financials", map[string]interface{}{"error": err, "url": s.url})
		return nil, commonerrors.NewUpstreamUnavailableError("financials API", err).WithMetadata("url", s.url)
	}

	if !resp.IsJSON() {
		s.record(ctx, metrics.OutcomeFailed, elapsed)
		snippet := resp.Snippet(snippetLength)
		log.Error("Error submitting financials", map[string]interface{}{
			"error": fmt.Sprintf("Unexpected response from %s: %d %s", FinancialsPath, resp.StatusCode, snippet),
		})
		return nil, commonerrors.NewUpstreamUnexpectedResponseError(resp.StatusCode, snippet)
	}

	var decoded interface{}
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		s.record(ctx, metrics.OutcomeFailed, elapsed)
		log.Error("Error submitting financials", map[string]interface{}{"error": err})
		return nil, commonerrors.NewUpstreamUnexpectedResponseError(resp.StatusCode, resp.Snippet(snippetLength))
	}
	body, _ := decoded.(map[string]interface{})
	result := &SubmitResult{StatusCode: resp.StatusCode, Body: body}

	if !resp.OK() {
		serverErrors, ok := body["errors"].(map[string]interface{})
		if !ok || len(serverErrors) == 0 {
			s.record(ctx, metrics.OutcomeFailed, elapsed)
			log.Error("Error submitting financials", map[string]interface{}{
				"status": resp.StatusCode,
				"body":   decoded,
			})
			return result, commonerrors.NewUpstreamUnexpectedResponseError(resp.StatusCode, resp.Snippet(snippetLength))
		}

		result.FieldErrors, result.Unmapped = s.applyServerErrors(form, serverErrors)
		if len(result.Unmapped) > 0 {
			log.Warn("backend reported errors for unknown fields", map[string]interface{}{
				"fields": sortedFieldNames(result.Unmapped),
			})
		}
		metrics.RecordValidationErrors(result.FieldErrors)
		s.record(ctx, metrics.OutcomeRejected, elapsed)
		return result, commonerrors.NewSubmissionRejectedError(resp.StatusCode, result.FieldErrors)
	}

	s.record(ctx, metrics.OutcomeSubmitted, elapsed)
	log.Info("Financials submitted successfully", map[string]interface{}{
		"status":     resp.StatusCode,
		"durationMs": elapsed.Milliseconds(),
	})
	return result, nil
}

func (s *Submitter) applyServerErrors(form *Form, serverErrors map[string]interface{}) (map[string]string, map[string]string) {
	mapped := make(map[string]string)
	unmapped := make(map[string]string)
	for serverField, raw := range serverErrors {
		msg := messageString(raw)
		formField, ok := models.FormFieldForServer(serverField)
		if !ok {
			unmapped[serverField] = msg
			continue
		}
		form.SetServerError(formField, msg)
		mapped[formField] = msg
	}
	return mapped, unmapped
}

func (s *Submitter) record(ctx context.Context, outcome string, elapsed time.Duration) {
	metrics.IntakeSubmissions.WithLabelValues(outcome).Inc()
	if elapsed > 0 {
		metrics.IntakeSubmissionDuration.Observe(elapsed.Seconds())
	}
	s.obs.RecordSubmission(ctx, outcome, elapsed)
}

// messageString renders a backend error value the way a browser would
// coerce it to a string.
func messageString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []interface{}:
		parts := make([]string, len(t))
		for i, item := range t {
			if item == nil {
				continue
			}
			parts[i] = messageString(item)
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

func sortedFieldNames(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
