package industrytypes

import (
	"context"
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
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T, lister lookup.Lister[models.IndustryType]) *Handler {
	return NewHandler(DefaultConfig(), lister, logger.NewTestLogger(t))
}

func TestHandler_Execute_MatchesDisplayNameOnly(t *testing.T) {
	h := createTestHandler(t, lookup.ListFunc[models.IndustryType](func(ctx context.Context) ([]models.IndustryType, error) {
		return []models.IndustryType{
			{ID: 1, NAICSCode: "311811", DisplayName: "Retail Bakeries"},
			{ID: 2, NAICSCode: "722511", DisplayName: "Full-Service Restaurants"},
		}, nil
	}))

	out, err := h.Execute(context.Background(), &Input{Query: "bakeries"})
	require.NoError(t, err)
	require.Len(t, out.Options, 1)
	assert.Equal(t, "311811", out.Options[0].NAICSCode)

	out, err = h.Execute(context.Background(), &Input{Query: "3118"})
	require.NoError(t, err)
	assert.Empty(t, out.Options)
}

func TestHandler_Execute_ListerError(t *testing.T) {
	h := createTestHandler(t, lookup.ListFunc[models.IndustryType](func(ctx context.Context) ([]models.IndustryType, error) {
		return nil, context.DeadlineExceeded
	}))

	_, err := h.Execute(context.Background(), &Input{})
	stdErr, ok := commonerrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, commonerrors.ErrCodeLookupQueryFailed, stdErr.Code)
}

func TestHandler_ServeHTTP_CachedStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, naics_code, display_name FROM industry_types ORDER BY display_name ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "naics_code", "display_name"}).
			AddRow(2, "722511", "Full-Service Restaurants").
			AddRow(1, "311811", "Retail Bakeries"))

	store := lookup.NewStore(db, rdb, time.Minute, logger.NewTestLogger(t))
	h := createTestHandler(t, store.IndustryTypeLister())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, Route, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[
			{"id":2,"naics_code":"722511","display_name":"Full-Service Restaurants"},
			{"id":1,"naics_code":"311811","display_name":"Retail Bakeries"}
		]`, rec.Body.String())
	}

	assert.NoError(t, mock.ExpectationsWereMet())
	assert.True(t, mr.Exists(lookup.CacheKeyIndustryTypes))
}
