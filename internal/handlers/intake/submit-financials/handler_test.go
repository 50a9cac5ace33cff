package submitfinancials

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	commonaws "bizplan-intake/internal/common/aws"
	commonerrors "bizplan-intake/internal/common/errors"
	commonhttp "bizplan-intake/internal/common/http"
	"bizplan-intake/internal/common/logger"
	"bizplan-intake/internal/intake"
	"bizplan-intake/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mocks
// ==========================

type MockNotifier struct {
	NotifyFunc func(ctx context.Context, notice commonaws.SubmissionNotice) (string, error)
	Calls      []commonaws.SubmissionNotice
}

func (m *MockNotifier) Notify(ctx context.Context, notice commonaws.SubmissionNotice) (string, error) {
	m.Calls = append(m.Calls, notice)
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, notice)
	}
	return "msg-1", nil
}

type MockSubmitter struct {
	SubmitFunc func(ctx context.Context, form *intake.Form, requestID string) (*intake.SubmitResult, error)
}

func (m *MockSubmitter) Submit(ctx context.Context, form *intake.Form, requestID string) (*intake.SubmitResult, error) {
	return m.SubmitFunc(ctx, form, requestID)
}

// ==========================
// Test Helper Functions
// ==========================

func completeValues() map[string]string {
	return map[string]string{
		models.FieldBusinessName:                     "Acme Bakery",
		models.FieldIndustry:                         "Food service",
		models.FieldBusinessType:                     "Bakery",
		models.FieldDescription:                      "We bake sourdough and pastries for local cafes.",
		models.FieldProductKeywords:                  "bread, pastry",
		models.FieldSellingMethod:                    "Wholesale and storefront",
		models.FieldTargetCustomer:                   "Neighborhood cafes and families",
		models.FieldCustomerType:                     "mixed",
		models.FieldEstimatedRevenue:                 "$200k",
		models.FieldStartupCosts:                     "$50k",
		models.FieldMonthlyCosts:                     "$8k",
		models.FieldPricingModel:                     "flat_fee",
		models.FieldFounderBackground:                "Ten years as a pastry chef.",
		models.FieldContactName:                      "Sam Lee",
		models.FieldContactEmail:                     "sam@example.com",
		models.FieldBusinessStartDate:                "2024-03-05",
		models.FieldCurrentRevenue:                   "120,000",
		models.FieldCurrentCogs:                      "40,000",
		models.FieldExpectedRevenueGrowthPctNextYear: "10",
		models.FieldUnitsSoldPerMonth:                "900",
		models.FieldUnitDefinition:                   "loaf",
	}
}

// backend starts a financials endpoint that answers with status and body.
func backend(t *testing.T, status int, body string) (*httptest.Server, *int) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, intake.FinancialsPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func createTestHandler(t *testing.T, baseURL string, notifier Notifier) *Handler {
	log := logger.NewTestLogger(t)
	submitter := intake.NewSubmitter(baseURL, commonhttp.NewClient(2*time.Second), nil, log)
	return NewHandler(DefaultConfig(), submitter, notifier, log)
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, Route, strings.NewReader(body))
	req.Header.Set(commonhttp.HeaderRequestID, "req-abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func valuesBody(t *testing.T, values map[string]string) string {
	data, err := json.Marshal(Input{Values: values})
	require.NoError(t, err)
	return string(data)
}

// ==========================
// Execute Tests
// ==========================

func TestHandler_Execute_SuccessNotifies(t *testing.T) {
	server, calls := backend(t, http.StatusOK, `{"id": 42}`)
	notifier := &MockNotifier{}

	out, err := createTestHandler(t, server.URL, notifier).
		Execute(context.Background(), &Input{Values: completeValues()}, "req-1")
	require.NoError(t, err)

	assert.Equal(t, StatusSubmitted, out.Status)
	assert.Equal(t, "req-1", out.RequestID)
	assert.Equal(t, http.StatusOK, out.UpstreamStatus)
	assert.Equal(t, 42.0, out.Response["id"])
	assert.Equal(t, "msg-1", out.NotificationID)
	assert.Equal(t, 1, *calls)

	require.Len(t, notifier.Calls, 1)
	assert.Equal(t, commonaws.SubmissionNotice{
		RequestID:    "req-1",
		BusinessName: "Acme Bakery",
		ContactName:  "Sam Lee",
		ContactEmail: "sam@example.com",
	}, notifier.Calls[0])
}

func TestHandler_Execute_NotificationFailureIsNotFatal(t *testing.T) {
	server, _ := backend(t, http.StatusCreated, `{}`)
	notifier := &MockNotifier{
		NotifyFunc: func(ctx context.Context, notice commonaws.SubmissionNotice) (string, error) {
			return "", errors.New("MessageRejected: Email address is not verified")
		},
	}

	out, err := createTestHandler(t, server.URL, notifier).
		Execute(context.Background(), &Input{Values: completeValues()}, "req-2")
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, out.Status)
	assert.Empty(t, out.NotificationID)
}

func TestHandler_Execute_GeneratesRequestID(t *testing.T) {
	var got string
	h := NewHandler(DefaultConfig(), &MockSubmitter{
		SubmitFunc: func(ctx context.Context, form *intake.Form, requestID string) (*intake.SubmitResult, error) {
			got = requestID
			return &intake.SubmitResult{StatusCode: http.StatusOK}, nil
		},
	}, nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Values: completeValues()}, "")
	require.NoError(t, err)
	assert.NotEmpty(t, got)
	assert.Equal(t, got, out.RequestID)
}

func TestHandler_Execute_ValidationBlocksRequest(t *testing.T) {
	server, calls := backend(t, http.StatusOK, `{}`)
	notifier := &MockNotifier{}

	values := completeValues()
	values[models.FieldCurrentCogs] = ""

	_, err := createTestHandler(t, server.URL, notifier).
		Execute(context.Background(), &Input{Values: values}, "req-3")

	stdErr, ok := commonerrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, commonerrors.ErrCodeIntakeValidationFailed, stdErr.Code)
	assert.Equal(t, "req-3", stdErr.Metadata["requestId"])
	assert.Equal(t, 0, *calls)
	assert.Empty(t, notifier.Calls)
}

// ==========================
// HTTP Tests
// ==========================

func TestHandler_ServeHTTP_Submitted(t *testing.T) {
	server, _ := backend(t, http.StatusOK, `{"id": 7}`)

	rec := post(t, createTestHandler(t, server.URL, nil), valuesBody(t, completeValues()))

	require.Equal(t, http.StatusOK, rec.Code)
	var out Output
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "req-abc", out.RequestID)
	assert.Equal(t, StatusSubmitted, out.Status)
}

func TestHandler_ServeHTTP_BackendFieldErrors(t *testing.T) {
	server, _ := backend(t, http.StatusUnprocessableEntity,
		`{"errors":{"current_revenue":"Required","legacy_field":"gone"}}`)

	rec := post(t, createTestHandler(t, server.URL, nil), valuesBody(t, completeValues()))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Error struct {
			Code     string                 `json:"code"`
			Metadata map[string]interface{} `json:"metadata"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, string(commonerrors.ErrCodeSubmissionRejected), body.Error.Code)
	assert.Equal(t, map[string]interface{}{"currentRevenue": "Required"}, body.Error.Metadata["fieldErrors"])
	assert.Equal(t, map[string]interface{}{"legacy_field": "gone"}, body.Error.Metadata["unmappedErrors"])
}

func TestHandler_ServeHTTP_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	rec := post(t, createTestHandler(t, server.URL, nil), valuesBody(t, completeValues()))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), string(commonerrors.ErrCodeUpstreamUnexpectedResponse))
}
