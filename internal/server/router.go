// Package server assembles the HTTP surface of the intake service.
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"bizplan-intake/internal/common/config"
	commonhttp "bizplan-intake/internal/common/http"
	"bizplan-intake/internal/common/logger"
	"bizplan-intake/internal/common/metrics"
	resolveplace "bizplan-intake/internal/handlers/address/resolve-place"
	blurfield "bizplan-intake/internal/handlers/intake/blur-field"
	changefield "bizplan-intake/internal/handlers/intake/change-field"
	clientconfig "bizplan-intake/internal/handlers/intake/client-config"
	submitfinancials "bizplan-intake/internal/handlers/intake/submit-financials"
	validateform "bizplan-intake/internal/handlers/intake/validate-form"
	businesstypes "bizplan-intake/internal/handlers/lookup/business-types"
	industrytypes "bizplan-intake/internal/handlers/lookup/industry-types"
	"bizplan-intake/internal/lookup"
	"bizplan-intake/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const readyCheckTimeout = 2 * time.Second

// Pinger is a dependency checked by /ready.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators behind the routes. Notifier and Checks may be empty.
type Deps struct {
	Config        *config.Config
	Logger        logger.Logger
	Submitter     submitfinancials.Submitter
	Notifier      submitfinancials.Notifier
	BusinessTypes lookup.Lister[models.BusinessType]
	IndustryTypes lookup.Lister[models.IndustryType]
	Places        resolveplace.PlaceLookup
	Checks        map[string]Pinger
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	log := d.Logger

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", commonhttp.HeaderRequestID},
		ExposedHeaders:   []string{commonhttp.HeaderRequestID},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(requestID)
	r.Use(instrument(log))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		commonhttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	r.Get("/ready", ready(d.Checks))
	r.Handle("/metrics", promhttp.Handler())

	r.Method(http.MethodGet, businesstypes.Route,
		businesstypes.NewHandler(&businesstypes.Config{Timeout: config.GetDuration(cfg.API.Timeout)}, d.BusinessTypes, log))
	r.Method(http.MethodGet, industrytypes.Route,
		industrytypes.NewHandler(&industrytypes.Config{Timeout: config.GetDuration(cfg.API.Timeout)}, d.IndustryTypes, log))

	r.Route("/intake", func(r chi.Router) {
		r.Method(http.MethodPost, "/change", changefield.NewHandler(changefield.DefaultConfig(), log))
		r.Method(http.MethodPost, "/blur", blurfield.NewHandler(blurfield.DefaultConfig(), log))
		r.Method(http.MethodPost, "/validate", validateform.NewHandler(validateform.DefaultConfig(), log))

		submitCfg := submitfinancials.DefaultConfig()
		submitCfg.Timeout = config.GetDuration(cfg.API.Timeout)
		r.Method(http.MethodPost, "/submit", submitfinancials.NewHandler(submitCfg, d.Submitter, d.Notifier, log))

		r.Method(http.MethodGet, "/address",
			resolveplace.NewHandler(&resolveplace.Config{Timeout: config.GetDuration(cfg.Places.Timeout)}, d.Places, log))
		r.Method(http.MethodGet, "/config", clientconfig.NewHandler(cfg.Places.APIKey, log))
	})

	return r
}

// requestID makes sure every request carries X-Request-ID and echoes it back.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := commonhttp.RequestIDFrom(r)
		r.Header.Set(commonhttp.HeaderRequestID, id)
		w.Header().Set(commonhttp.HeaderRequestID, id)
		next.ServeHTTP(w, r)
	})
}

// instrument counts requests per route pattern and logs them at debug level.
func instrument(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()

			log.Debug("request served", map[string]interface{}{
				"method":     r.Method,
				"route":      route,
				"status":     status,
				"durationMs": time.Since(start).Milliseconds(),
				"requestId":  r.Header.Get(commonhttp.HeaderRequestID),
			})
		})
	}
}

func ready(checks map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		failed := map[string]string{}
		for name, c := range checks {
			if err := c.Ping(ctx); err != nil {
				failed[name] = err.Error()
			}
		}

		if len(failed) > 0 {
			commonhttp.WriteJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status": "not ready",
				"checks": failed,
			})
			return
		}
		commonhttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
