package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDeps defines router construction dependencies. Nil optional fields
// leave their routes or middleware out.
type RouterDeps struct {
	StatusHandler  http.HandlerFunc
	HealthHandler  http.HandlerFunc
	ReadyHandler   http.HandlerFunc
	OpenAPIHandler http.HandlerFunc
	DocsHandler    http.HandlerFunc
	MetricsHandler http.Handler
	RequestID      func(http.Handler) http.Handler
	AccessLog      func(http.Handler) http.Handler
	Metrics        func(http.Handler) http.Handler
	RateLimitAPI   func(http.Handler) http.Handler
	AllowedOrigins []string
	RequestTimeout time.Duration

	// TrustProxyHeaders lets forwarding headers rewrite RemoteAddr. Enable
	// only behind a proxy that overwrites them.
	TrustProxyHeaders bool
}

// NewRouter wires HTTP routes.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	if deps.RequestID != nil {
		r.Use(deps.RequestID)
	} else {
		r.Use(chimiddleware.RequestID)
	}
	if deps.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	if deps.AccessLog != nil {
		r.Use(deps.AccessLog)
	}
	if deps.Metrics != nil {
		r.Use(deps.Metrics)
	}
	r.Use(chimiddleware.Recoverer)

	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	r.Use(chimiddleware.Timeout(timeout))

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
		MaxAge:         300,
	}))

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	if deps.HealthHandler != nil {
		r.Get("/healthz", deps.HealthHandler)
	}
	if deps.ReadyHandler != nil {
		r.Get("/readyz", deps.ReadyHandler)
	}
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}
	if deps.DocsHandler != nil {
		r.Get("/v1/docs/*", deps.DocsHandler)
	}

	// The root status route always answers 200; only /api/v1 is budgeted.
	r.Get("/", deps.StatusHandler)

	r.Route("/api/v1", func(r chi.Router) {
		if deps.RateLimitAPI != nil {
			r.Use(deps.RateLimitAPI)
		}
		r.Get("/status", deps.StatusHandler)
		if deps.OpenAPIHandler != nil {
			r.Get("/openapi.json", deps.OpenAPIHandler)
		}
	})

	return r
}
