package businesstypes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	commonerrors "bizplan-intake/internal/common/errors"
	"bizplan-intake/internal/common/logger"
	"bizplan-intake/internal/lookup"
	"bizplan-intake/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func staticLister(opts []models.BusinessType, err error) lookup.Lister[models.BusinessType] {
	return lookup.ListFunc[models.BusinessType](func(ctx context.Context) ([]models.BusinessType, error) {
		return opts, err
	})
}

func businessTypes() []models.BusinessType {
	return []models.BusinessType{
		{ID: 3, DisplayName: "Corporation"},
		{ID: 1, DisplayName: "LLC"},
		{ID: 2, DisplayName: "Sole Proprietorship"},
	}
}

func createTestHandler(t *testing.T, lister lookup.Lister[models.BusinessType]) *Handler {
	return NewHandler(DefaultConfig(), lister, logger.NewTestLogger(t))
}

// ==========================
// Execute Tests
// ==========================

func TestHandler_Execute_Filters(t *testing.T) {
	h := createTestHandler(t, staticLister(businessTypes(), nil))

	tests := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"llc", 1},
		{"  PROP ", 1},
		{"or", 2},
		{"partnership", 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("q=%q", tt.query), func(t *testing.T) {
			out, err := h.Execute(context.Background(), &Input{Query: tt.query})
			require.NoError(t, err)
			assert.Len(t, out.Options, tt.want)
			assert.NotNil(t, out.Options)
		})
	}
}

func TestHandler_Execute_QueryFailure(t *testing.T) {
	h := createTestHandler(t, staticLister(nil, fmt.Errorf("%w: timeout", lookup.ErrLookupQueryFailed)))

	_, err := h.Execute(context.Background(), &Input{})
	stdErr, ok := commonerrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, commonerrors.ErrCodeLookupQueryFailed, stdErr.Code)
}

// ==========================
// HTTP Tests
// ==========================

func TestHandler_ServeHTTP_FromStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, display_name FROM business_types ORDER BY display_name ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "display_name"}).
			AddRow(3, "Corporation").
			AddRow(1, "LLC"))

	store := lookup.NewStore(db, nil, time.Minute, logger.NewTestLogger(t))
	h := createTestHandler(t, store.BusinessTypeLister())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, Route+"?q=ll", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"display_name":"LLC"}]`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_ServeHTTP_StoreDown(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset by peer"))

	store := lookup.NewStore(db, nil, time.Minute, logger.NewTestLogger(t))
	rec := httptest.NewRecorder()
	createTestHandler(t, store.BusinessTypeLister()).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, Route, nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, string(commonerrors.ErrCodeLookupQueryFailed), body["error"]["code"])
}
