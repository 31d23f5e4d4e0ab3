package app

import (
	"context"

	"github.com/brandonleon/carbsmart/config"
	"github.com/brandonleon/carbsmart/internal/http"
	"github.com/brandonleon/carbsmart/internal/middleware"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
	// AsyncLogger is nil when audit logging is disabled.
	AsyncLogger *middleware.AsyncLogger
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(cfg config.Config, svc *ServiceComponents, db *DatabaseComponents) *RouterComponents {
	rc := &RouterComponents{}

	routerCfg := http.DefaultRouterConfig()
	routerCfg.RateLimit = cfg.Server.RateLimit
	routerCfg.RateWindow = cfg.Server.RateWindow
	routerCfg.RequestTimeout = cfg.Server.RequestTimeout
	routerCfg.CORSOrigins = cfg.Server.CORSOrigins
	routerCfg.SwaggerUser = cfg.Server.SwaggerUser
	routerCfg.SwaggerPass = cfg.Server.SwaggerPass
	routerCfg.WebUI = cfg.Server.WebUI
	routerCfg.AuthEnabled = cfg.Auth.Enabled
	routerCfg.APIKeys = cfg.Auth.APIKeys
	routerCfg.Tokens = svc.Tokens

	opts := []http.HandlerOption{
		http.WithDefaultTargets(cfg.Planner.DefaultMinGrams, cfg.Planner.DefaultMaxGrams),
	}

	if db.LoggingService != nil {
		routerCfg.Logs = db.LoggingService
	}

	// A nil *AsyncLogger must not reach the LogSink interfaces.
	if al := middleware.NewAsyncLogger(db.LoggingService, middleware.DefaultAsyncLoggerConfig()); al != nil {
		rc.AsyncLogger = al
		routerCfg.LogSink = al
		opts = append(opts, http.WithAuditSink(al))
	}

	rc.Handler = http.NewHandler(svc.Pans, svc.Plans, svc.Calculator, opts...)

	rc.HealthHandler = http.NewHealthHandler()
	if db.PanStoreHealth != nil {
		rc.HealthHandler.RegisterChecker(panStoreBreaker, http.HealthCheckFunc(db.PanStoreHealth))
	}
	rc.HealthHandler.RegisterCircuitBreaker(panStoreBreaker, db.PanStoreCircuitBreaker)
	rc.HealthHandler.RegisterCircuitBreaker(logStoreBreaker, db.LogStoreCircuitBreaker)

	rc.Config = routerCfg
	return rc
}

// Build creates the router.
func (rc *RouterComponents) Build() *http.Router {
	return http.NewRouter(rc.Handler, rc.HealthHandler, rc.Config)
}

// Close flushes pending audit entries.
func (rc *RouterComponents) Close(context.Context) error {
	if rc.AsyncLogger != nil {
		rc.AsyncLogger.Stop()
	}
	return nil
}
