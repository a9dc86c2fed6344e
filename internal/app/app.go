package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bengobox/starter-service/internal/cache"
	"github.com/bengobox/starter-service/internal/config"
	"github.com/bengobox/starter-service/internal/database"
	"github.com/bengobox/starter-service/internal/health"
	"github.com/bengobox/starter-service/internal/httpapi"
	"github.com/bengobox/starter-service/internal/httpapi/handlers"
	httpmiddleware "github.com/bengobox/starter-service/internal/httpapi/middleware"
	"github.com/bengobox/starter-service/internal/metrics"
	"github.com/bengobox/starter-service/internal/status"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App wires core dependencies and exposes server lifecycle controls.
type App struct {
	cfg        *config.Config
	logger     *zap.Logger
	pool       *pgxpool.Pool
	redis      *redis.Client
	httpServer *http.Server
}

// New constructs the application. Redis and Postgres are connected only when
// configured.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redisClient, err := cache.New(ctx, cfg.Redis)
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, err
	}

	a := &App{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
	}
	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           a.Handler(),
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}
	return a, nil
}

// Handler builds the HTTP handler tree from the connected dependencies.
func (a *App) Handler() http.Handler {
	statusSvc := status.New(status.Identity{
		Message:   a.cfg.Status.Message,
		Status:    a.cfg.Status.State,
		Framework: a.cfg.Status.Framework,
	})

	var checkers []health.Checker
	if a.pool != nil {
		checkers = append(checkers, database.NewChecker(a.pool))
	}
	if a.redis != nil {
		checkers = append(checkers, cache.NewChecker(a.redis))
	}

	deps := httpapi.RouterDeps{
		StatusHandler:  handlers.NewStatusHandler(statusSvc).Status,
		HealthHandler:  handlers.Health,
		ReadyHandler:   handlers.Ready(health.NewReadiness(health.DefaultTimeout, checkers...)),
		OpenAPIHandler: handlers.OpenAPIJSON,
		DocsHandler:    handlers.SwaggerUI,
		RequestID:      httpmiddleware.RequestID,
		AccessLog:      httpmiddleware.AccessLog(a.logger),
		AllowedOrigins: a.cfg.HTTP.AllowedOrigins,

		TrustProxyHeaders: a.cfg.HTTP.TrustProxyHeaders,
	}

	if a.cfg.Metrics.Enabled {
		m := metrics.New(a.cfg.App.ServiceName)
		deps.Metrics = m.Middleware
		deps.MetricsHandler = m.Handler()
	}

	switch {
	case a.cfg.RateLimit.Enabled && a.redis != nil:
		limiter := httpmiddleware.NewRateLimiter(a.redis, a.cfg.Redis.Namespace, a.logger)
		deps.RateLimitAPI = limiter.Limit("api", a.cfg.RateLimit.Requests, a.cfg.RateLimit.Window, httpmiddleware.ByClientIP)
	case a.cfg.RateLimit.Enabled:
		a.logger.Info("rate limiting disabled: redis not configured")
	}

	return httpapi.NewRouter(deps)
}

// Run starts the HTTP server with TLS if certificates are configured.
func (a *App) Run() error {
	if a.cfg.HTTP.TLSCertFile != "" && a.cfg.HTTP.TLSKeyFile != "" {
		a.logger.Info("starting HTTPS server",
			zap.String("cert", a.cfg.HTTP.TLSCertFile),
			zap.String("key", a.cfg.HTTP.TLSKeyFile),
			zap.String("addr", a.httpServer.Addr),
		)
		return a.httpServer.ListenAndServeTLS(a.cfg.HTTP.TLSCertFile, a.cfg.HTTP.TLSKeyFile)
	}
	a.logger.Info("starting HTTP server", zap.String("addr", a.httpServer.Addr))
	return a.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server and closes resources.
func (a *App) Shutdown(ctx context.Context) error {
	shutdownErr := a.httpServer.Shutdown(ctx)

	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis client", zap.Error(err))
			if shutdownErr == nil {
				shutdownErr = err
			}
		}
	}
	return shutdownErr
}
