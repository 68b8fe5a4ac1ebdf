package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig controls the middleware stack of NewRouter.
type RouterConfig struct {
	RequestTimeout time.Duration
	Metrics        bool
	// Limiter may be nil to disable rate limiting.
	Limiter *RateLimiter
}

// NewRouter mounts the housing routes on a chi router.
func NewRouter(h *HousingHandler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(requestDeadline(cfg.RequestTimeout))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	limited := func(fn http.HandlerFunc) http.Handler {
		if cfg.Limiter == nil {
			return fn
		}
		return RateLimitMiddleware(cfg.Limiter, fn)
	}

	r.Route("/housing", func(r chi.Router) {
		r.Method(http.MethodPost, "/plan", limited(h.CreatePlan))
		r.Method(http.MethodPost, "/plan/export", limited(h.ExportPlan))
		r.Get("/plans", h.ListPlans)
		r.Get("/plans/{id}", h.GetPlan)
	})

	return r
}

// requestDeadline bounds the request context without writing a response
// itself; handlers map context.DeadlineExceeded to 503.
func requestDeadline(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
