// Package server exposes the metric reports over HTTP. Every request loads
// the latest snapshot from the store and recomputes; there is no
// cross-request caching, so a new snapshot is visible immediately.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/outbound-metrics/internal/config"
	"github.com/sells-group/outbound-metrics/internal/metrics"
	"github.com/sells-group/outbound-metrics/internal/store"
)

// Server wires the snapshot store and metrics engine into an HTTP API.
type Server struct {
	store   store.Store
	engine  *metrics.Engine
	limiter *rate.Limiter
}

// New creates a Server. RateLimit <= 0 disables throttling.
func New(st store.Store, engine *metrics.Engine, cfg config.ServerConfig) *Server {
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = int(cfg.RateLimit)
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return &Server{store: st, engine: engine, limiter: limiter}
}

// Router builds the chi handler with middleware and all metric routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	if s.limiter != nil {
		r.Use(s.throttle)
	}

	r.Get("/health", s.handleHealth)
	r.Route("/api/metrics", func(r chi.Router) {
		r.Get("/coverage", s.handleCoverage)
		r.Get("/engagement", s.handleEngagement)
		r.Get("/employee-arr", s.handleEmployeeARR)
		r.Get("/touch-timing", s.handleTouchTiming)
		r.Get("/arr-distribution", s.handleARRDistribution)
		r.Get("/industry", s.handleIndustry)
		r.Get("/all", s.handleAll)
	})

	return r
}

// Addr formats the listen address for the configured port.
func Addr(port int) string {
	return fmt.Sprintf(":%d", port)
}

// throttle rejects requests above the configured rate with 429.
func (s *Server) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs each request with method, path, status, and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
