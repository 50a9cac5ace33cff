package lookup

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bizplan-intake/internal/common/logger"
	"bizplan-intake/internal/common/metrics"
	"bizplan-intake/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	CacheKeyBusinessTypes = "lookup:business-types"
	CacheKeyIndustryTypes = "lookup:industry-types"
)

var ErrLookupQueryFailed = errors.New("LOOKUP_QUERY_FAILED")

const (
	businessTypesQuery = `SELECT id, display_name FROM business_types ORDER BY display_name ASC`
	industryTypesQuery = `SELECT id, naics_code, display_name FROM industry_types ORDER BY display_name ASC`
)

// Store reads the lookup tables from PostgreSQL behind a Redis cache.
// A nil redis client disables caching.
type Store struct {
	db     *sql.DB
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewStore(db *sql.DB, redis *redis.Client, ttl time.Duration, log logger.Logger) *Store {
	return &Store{
		db:     db,
		redis:  redis,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"source": "store"}),
	}
}

func (s *Store) BusinessTypes(ctx context.Context) ([]models.BusinessType, error) {
	return cached(ctx, s, ListBusinessTypes, CacheKeyBusinessTypes, func(ctx context.Context) ([]models.BusinessType, error) {
		rows, err := s.db.QueryContext(ctx, businessTypesQuery)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		out := []models.BusinessType{}
		for rows.Next() {
			var bt models.BusinessType
			if err := rows.Scan(&bt.ID, &bt.DisplayName); err != nil {
				return nil, err
			}
			out = append(out, bt)
		}
		return out, rows.Err()
	})
}

func (s *Store) IndustryTypes(ctx context.Context) ([]models.IndustryType, error) {
	return cached(ctx, s, ListIndustryTypes, CacheKeyIndustryTypes, func(ctx context.Context) ([]models.IndustryType, error) {
		rows, err := s.db.QueryContext(ctx, industryTypesQuery)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		out := []models.IndustryType{}
		for rows.Next() {
			var it models.IndustryType
			var naics sql.NullString
			if err := rows.Scan(&it.ID, &naics, &it.DisplayName); err != nil {
				return nil, err
			}
			it.NAICSCode = naics.String
			out = append(out, it)
		}
		return out, rows.Err()
	})
}

// BusinessTypeLister exposes BusinessTypes as a Lister.
func (s *Store) BusinessTypeLister() Lister[models.BusinessType] {
	return ListFunc[models.BusinessType](s.BusinessTypes)
}

// IndustryTypeLister exposes IndustryTypes as a Lister.
func (s *Store) IndustryTypeLister() Lister[models.IndustryType] {
	return ListFunc[models.IndustryType](s.IndustryTypes)
}

func cached[T any](ctx context.Context, s *Store, list, key string, query func(context.Context) ([]T, error)) ([]T, error) {
	if s.redis != nil {
		if val, err := s.redis.Get(ctx, key).Result(); err == nil {
			var out []T
			if err := json.Unmarshal([]byte(val), &out); err == nil {
				metrics.LookupRequests.WithLabelValues(list, "cache").Inc()
				return out, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("Lookup cache read failed", map[string]interface{}{
				"key":   key,
				"error": err,
			})
		}
	}

	metrics.LookupRequests.WithLabelValues(list, "store").Inc()
	out, err := query(ctx)
	if err != nil {
		s.logger.Error("Lookup query failed", map[string]interface{}{
			"list":  list,
			"error": err,
		})
		return nil, fmt.Errorf("%w: %v", ErrLookupQueryFailed, err)
	}

	if s.redis != nil {
		data, _ := json.Marshal(out)
		if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
			s.logger.Warn("Lookup cache write failed", map[string]interface{}{
				"key":   key,
				"error": err,
			})
		}
	}
	return out, nil
}
