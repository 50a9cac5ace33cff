package intake

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	commonerrors "bizplan-intake/internal/common/errors"
	commonhttp "bizplan-intake/internal/common/http"
	"bizplan-intake/internal/common/logger"
	"bizplan-intake/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================================
// Payload tests
// ==========================================

func TestFormatStartDate(t *testing.T) {
	got := FormatStartDate("2024-03-05")
	require.NotNil(t, got)
	assert.Equal(t, "03-05-2024", *got)

	assert.Nil(t, FormatStartDate(""))
	assert.Nil(t, FormatStartDate("2024-03"))
	assert.Nil(t, FormatStartDate("2024--05"))
	assert.Nil(t, FormatStartDate("March 5"))
}

func TestBuildPayload(t *testing.T) {
	values := withValues(map[string]string{
		models.FieldCurrentRevenue:                   "120,000",
		models.FieldCurrentCogs:                      "40,000.50",
		models.FieldExpectedRevenueGrowthPctNextYear: "12.5%",
		models.FieldUnitsSoldPerMonth:                "900",
		models.FieldUnitDefinition:                   "loaf",
		models.FieldCashOnHand:                       "",
	})

	p := BuildPayload(values)

	require.NotNil(t, p.BusinessStartDate)
	assert.Equal(t, "03-05-2024", *p.BusinessStartDate)
	require.NotNil(t, p.CurrentRevenue)
	assert.Equal(t, 120000.0, *p.CurrentRevenue)
	assert.Equal(t, 40000.5, *p.CurrentCogs)
	assert.Equal(t, "12.5%", p.ExpectedRevenueGrowthPctNextYear)
	assert.Equal(t, "loaf", p.UnitDefinition)
	assert.Nil(t, p.CashOnHand)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	var asMap map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &asMap))
	assert.Len(t, asMap, len(models.FinancialFieldTable))
	assert.Contains(t, asMap, "cash_on_hand")
	assert.Nil(t, asMap["cash_on_hand"])
}

// ==========================================
// Submitter tests
// ==========================================

func newTestSubmitter(t *testing.T, url string) *Submitter {
	return NewSubmitter(url, commonhttp.NewClient(2*time.Second), nil, logger.NewTestLogger(t))
}

func revenueForm() *Form {
	return NewFormFromValues(withValues(map[string]string{
		models.FieldCurrentRevenue:                   "120,000",
		models.FieldCurrentCogs:                      "40,000",
		models.FieldExpectedRevenueGrowthPctNextYear: "10",
		models.FieldUnitsSoldPerMonth:                "900",
		models.FieldUnitDefinition:                   "loaf",
	}))
}

func TestSubmit_BlockedByFieldErrorsMakesNoRequest(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	form := revenueForm()
	form.Change(models.FieldCurrentCogs, "")

	_, err := newTestSubmitter(t, server.URL).Submit(context.Background(), form, "req-1")
	require.Error(t, err)

	stdErr, ok := commonerrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, commonerrors.ErrCodeIntakeValidationFailed, stdErr.Code)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.Equal(t, map[string]string{
		models.FieldCurrentCogs: revenueDependentMessages[models.FieldCurrentCogs],
	}, form.ErrorMessages())
}

func TestSubmit_Success(t *testing.T) {
	form := revenueForm()
	form.SetServerError(models.FieldCurrentRevenue, "stale")

	var gotBody map[string]interface{}
	var gotRequestID string
	var errorsAtRequest map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errorsAtRequest = form.ErrorMessages()
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, FinancialsPath, r.URL.Path)
		gotRequestID = r.Header.Get(commonhttp.HeaderRequestID)
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 17}`))
	}))
	defer server.Close()

	result, err := newTestSubmitter(t, server.URL+"/").Submit(context.Background(), form, "req-2")
	require.NoError(t, err)

	require.NotNil(t, errorsAtRequest, "backend was called")
	assert.Empty(t, errorsAtRequest, "earlier errors are cleared before the request is sent")
	assert.Equal(t, http.StatusCreated, result.StatusCode)
	assert.Equal(t, 17.0, result.Body["id"])
	assert.Empty(t, form.ErrorMessages())
	assert.Equal(t, "req-2", gotRequestID)
	assert.Equal(t, "03-05-2024", gotBody["business_start_date"])
	assert.Equal(t, 120000.0, gotBody["current_revenue"])
}

func TestSubmit_ServerFieldErrorsAreMapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":{"current_revenue":"Required","cash_on_hand":["too","big"],"favorite_color":"n/a"}}`))
	}))
	defer server.Close()

	form := revenueForm()
	result, err := newTestSubmitter(t, server.URL).Submit(context.Background(), form, "req-3")
	require.Error(t, err)

	stdErr, ok := commonerrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, commonerrors.ErrCodeSubmissionRejected, stdErr.Code)

	require.NotNil(t, result)
	assert.Equal(t, map[string]string{
		models.FieldCurrentRevenue: "Required",
		models.FieldCashOnHand:     "too,big",
	}, result.FieldErrors)
	assert.Equal(t, map[string]string{"favorite_color": "n/a"}, result.Unmapped)

	errs := form.Errors()
	assert.Equal(t, "Required", errs[models.FieldCurrentRevenue].Message)
	assert.Equal(t, models.OriginServer, errs[models.FieldCurrentRevenue].Origin)
	assert.NotContains(t, errs, "favorite_color")
}

func TestSubmit_NonJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>proxy page</html>"))
	}))
	defer server.Close()

	form := revenueForm()
	_, err := newTestSubmitter(t, server.URL).Submit(context.Background(), form, "req-4")

	stdErr, ok := commonerrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, commonerrors.ErrCodeUpstreamUnexpectedResponse, stdErr.Code)
	assert.Equal(t, "<html>proxy page</html>", stdErr.Details)
	assert.True(t, form.Valid())
}

func TestSubmit_ErrorStatusWithoutErrorsMap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"database_query_error"}`))
	}))
	defer server.Close()

	result, err := newTestSubmitter(t, server.URL).Submit(context.Background(), revenueForm(), "req-5")

	stdErr, ok := commonerrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, commonerrors.ErrCodeUpstreamUnexpectedResponse, stdErr.Code)
	require.NotNil(t, result)
	assert.Equal(t, "database_query_error", result.Body["error"])
}

func TestSubmit_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	form := revenueForm()
	_, err := newTestSubmitter(t, url).Submit(context.Background(), form, "req-6")

	stdErr, ok := commonerrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, commonerrors.ErrCodeUpstreamUnavailable, stdErr.Code)
	assert.True(t, form.Valid())
}

func TestMessageString(t *testing.T) {
	assert.Equal(t, "Required", messageString("Required"))
	assert.Equal(t, "12", messageString(12.0))
	assert.Equal(t, "true", messageString(true))
	assert.Equal(t, "a,,b", messageString([]interface{}{"a", nil, "b"}))
	assert.Equal(t, "[object Object]", messageString(map[string]interface{}{"k": "v"}))
	assert.Equal(t, "null", messageString(nil))
}
