package blurfield

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	commonerrors "bizplan-intake/internal/common/errors"
	"bizplan-intake/internal/common/logger"
	"bizplan-intake/internal/intake"
	"bizplan-intake/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(DefaultConfig(), logger.NewTestLogger(t))
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name      string
		values    map[string]string
		field     string
		wantValue string
		wantError string
	}{
		{
			name:      "groups digits",
			values:    map[string]string{models.FieldCashOnHand: "1234567.5"},
			field:     models.FieldCashOnHand,
			wantValue: "1,234,567.5",
		},
		{
			name:      "negative clamps to zero",
			values:    map[string]string{models.FieldCashOnHand: "-40"},
			field:     models.FieldCashOnHand,
			wantValue: "0",
		},
		{
			name:      "unparsable kept and flagged",
			values:    map[string]string{models.FieldSgaExpense: "12k"},
			field:     models.FieldSgaExpense,
			wantValue: "12k",
			wantError: intake.MsgInvalidNumber,
		},
		{
			name: "revenue makes cogs required",
			values: map[string]string{
				models.FieldCurrentRevenue: "50,000",
			},
			field:     models.FieldCurrentCogs,
			wantValue: "",
			wantError: "Cost of Goods Sold is required when revenue is greater than zero.",
		},
		{
			name:      "text field reports its own rule",
			values:    map[string]string{models.FieldBusinessName: "A"},
			field:     models.FieldBusinessName,
			wantValue: "A",
			wantError: "Please enter your business name.",
		},
	}

	h := createTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), &Input{Values: tt.values, Field: tt.field})
			require.NoError(t, err)
			assert.Equal(t, tt.wantValue, out.Value)
			assert.Equal(t, tt.wantError, out.Error)
		})
	}
}

func TestHandler_Execute_UnknownField(t *testing.T) {
	_, err := createTestHandler(t).Execute(context.Background(), &Input{Field: "nope"})
	stdErr, ok := commonerrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, commonerrors.ErrCodeInvalidRequest, stdErr.Code)
}

func TestHandler_ServeHTTP(t *testing.T) {
	body := `{"values":{"cashOnHand":"-2500"},"field":"cashOnHand"}`
	req := httptest.NewRequest(http.MethodPost, Route, strings.NewReader(body))
	rec := httptest.NewRecorder()

	createTestHandler(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out Output
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "0", out.Value)
	assert.Empty(t, out.Error)
}
