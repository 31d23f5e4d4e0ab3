package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/brandonleon/carbsmart/internal/metrics"
	"github.com/brandonleon/carbsmart/internal/middleware"
	"github.com/brandonleon/carbsmart/internal/service"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit         int
	RateWindow        time.Duration
	RequestTimeout    time.Duration
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
	EnableIdempotency bool
	IdempotencyTTL    time.Duration
	// AuthEnabled requires credentials on mutating routes and makes the
	// HTML pan library read-only.
	AuthEnabled bool
	// APIKeys maps accepted keys to the label recorded as principal.
	APIKeys map[string]string
	Tokens  service.TokenService
	LogSink middleware.LogSink
	// Logs serves GET /api/logs; the route is absent when nil.
	Logs  service.LogReader
	WebUI bool
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:         100,
		RateWindow:        time.Minute,
		RequestTimeout:    middleware.DefaultRequestTimeout,
		EnableIdempotency: true,
		IdempotencyTTL:    middleware.IdempotencyKeyTTL,
		WebUI:             true,
	}
}

// Router is the configured gin engine plus the background state of its
// middleware. Call Close on shutdown.
type Router struct {
	*gin.Engine
	closers []func()
}

// Close stops the rate limiter and idempotency cache cleanup goroutines.
func (r *Router) Close() {
	for _, fn := range r.closers {
		fn()
	}
}

// NewRouter creates and configures the gin engine for the carbsmart service.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *Router {
	r := &Router{Engine: gin.New()}

	r.configureGlobalMiddleware(&cfg)
	registerInfrastructureRoutes(r.Engine, healthHandler, &cfg)

	api := r.Group("/api")
	r.configureAPIMiddleware(api, &cfg)
	registerAPIRoutes(api, handler, &cfg)

	if cfg.WebUI && handler != nil {
		r.SetHTMLTemplate(parseTemplates())
		registerWebRoutes(r.Engine, NewWebHandler(handler, cfg.AuthEnabled))
	}

	return r
}

func (r *Router) configureGlobalMiddleware(cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:8080", "http://127.0.0.1:8080"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Authorization", "X-API-Key", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Location", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LogSink),
		middleware.ErrorHandler(),
	)

	// The limiter keys on the principal, so credentials go first.
	if cfg.AuthEnabled {
		r.Use(middleware.Credentials(middleware.CredentialsConfig{
			APIKeys: cfg.APIKeys,
			Tokens:  cfg.Tokens,
		}))
	}

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		r.closers = append(r.closers, limiter.Stop)
		r.Use(limiter.PrincipalRateLimit())
	}
}

func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

func (r *Router) configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	api.Use(middleware.Timeout(cfg.RequestTimeout))

	if cfg.EnableIdempotency {
		idem := middleware.NewIdempotency(cfg.IdempotencyTTL)
		r.closers = append(r.closers, idem.Stop)
		api.Use(idem.Handler())
	}
}
