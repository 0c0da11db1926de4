package httpserver

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/yndnr/easycar-go/internal/core/service"
	"github.com/yndnr/easycar-go/internal/server/httpserver/handler"
	"github.com/yndnr/easycar-go/internal/telemetry/logger"
	"github.com/yndnr/easycar-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	AuthService    *service.AuthService
	VehicleService *service.VehicleService

	// Metrics backs GET /metrics and the request latency histogram.
	Metrics *metric.Registry

	Logger logger.Logger

	// RateLimit is the per-IP request rate (requests/second). Zero
	// disables limiting.
	RateLimit float64
	RateBurst int

	// TrustProxyHeaders takes the client IP from X-Forwarded-For or
	// X-Real-IP. Enable only behind a proxy that sets them.
	TrustProxyHeaders bool
}

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	h := handler.New(cfg.AuthService, cfg.VehicleService, log)

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(h.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(h.MethodNotAllowed)

	// Public endpoints
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/auth", h.Login).Methods(http.MethodPost)

	// Endpoints that require a session token
	api := r.NewRoute().Subrouter()
	api.Use(mux.MiddlewareFunc(BearerAuth(cfg.AuthService)))
	api.HandleFunc("/vehicle", h.ListVehicles).Methods(http.MethodGet)
	api.HandleFunc("/vehicle", h.CreateVehicle).Methods(http.MethodPost)
	api.HandleFunc("/vehicle/{id}", h.DeleteVehicle).Methods(http.MethodDelete)

	// Order: RequestID -> ClientIP -> AccessLog -> Recover -> RateLimit -> routes
	middlewares := []Middleware{
		RequestID(),
		ClientIP(cfg.TrustProxyHeaders),
		AccessLog(log.With("component", "http"), cfg.Metrics),
		Recover(log),
	}
	if cfg.RateLimit > 0 {
		middlewares = append(middlewares, RateLimit(service.NewRateLimiterRegistry(cfg.RateLimit, cfg.RateBurst)))
	}

	return Chain(r, middlewares...)
}
