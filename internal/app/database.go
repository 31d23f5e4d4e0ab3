package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/brandonleon/carbsmart/config"
	"github.com/brandonleon/carbsmart/internal/circuitbreaker"
	"github.com/brandonleon/carbsmart/internal/metrics"
	"github.com/brandonleon/carbsmart/internal/repository"
	"github.com/brandonleon/carbsmart/internal/service"
)

// Breaker names, also used as readiness and metric labels.
const (
	panStoreBreaker = "pan_store"
	logStoreBreaker = "log_store"
)

// DatabaseComponents holds the pan store, the optional log store and the
// breakers guarding them.
type DatabaseComponents struct {
	PanRepo                repository.PanRepository
	PanStoreHealth         func(ctx context.Context) error
	PanStoreCircuitBreaker *circuitbreaker.CircuitBreaker

	// LoggingService is nil unless AUDIT_LOG_ENABLED is set and MongoDB
	// is reachable.
	LoggingService         service.LoggingService
	LogStoreCircuitBreaker *circuitbreaker.CircuitBreaker

	closers closerStack
}

// Close releases every connection opened by InitializeDatabase.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	return d.closers.close(ctx)
}

// InitializeDatabase opens the pan store selected by cfg.Driver and, when
// audit logging is enabled, the MongoDB log store. A pan store that cannot
// be opened is fatal; an unreachable log store only disables audit logging.
func InitializeDatabase(ctx context.Context, cfg config.DatabaseConfig) (*DatabaseComponents, error) {
	d := &DatabaseComponents{}

	var (
		repo    repository.PanRepository
		mongoDB *repository.MongoDB
	)

	switch cfg.Driver {
	case config.DriverSQLite, config.DriverPostgres:
		sqlCfg := repository.DefaultSQLConfig(cfg.Driver, cfg.DSN())
		if cfg.MaxWriters > 0 {
			sqlCfg.MaxConcurrentWrites = int64(cfg.MaxWriters)
		}
		db, err := repository.NewSQLDB(ctx, sqlCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open pan store: %w", err)
		}
		d.closers.push(func(context.Context) error { return db.Close() })
		d.PanStoreHealth = db.HealthCheck
		repo = repository.NewSQLPanRepository(db)
		log.Info().Str("driver", cfg.Driver).Msg("Opened SQL pan store")

	case config.DriverMongoDB:
		db, err := repository.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		d.closers.push(db.Close)
		d.PanStoreHealth = db.HealthCheck
		mongoDB = db
		repo = repository.NewMongoPanRepository(db)
		log.Info().Str("database", cfg.MongoDatabase).Msg("Connected to MongoDB")

	default:
		return nil, fmt.Errorf("unsupported pan store driver %q", cfg.Driver)
	}

	d.PanStoreCircuitBreaker = newCircuitBreaker(cfg, panStoreBreaker)
	d.PanRepo = repository.NewPanRepositoryWithCircuitBreaker(repo, d.PanStoreCircuitBreaker, cfg.Driver)

	if cfg.AuditLogEnabled {
		d.initializeLogStore(ctx, cfg, mongoDB)
	}

	return d, nil
}

// initializeLogStore reuses the pan store's MongoDB connection when there
// is one.
func (d *DatabaseComponents) initializeLogStore(ctx context.Context, cfg config.DatabaseConfig, db *repository.MongoDB) {
	if db == nil {
		var err error
		db, err = repository.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without audit log")
			return
		}
		d.closers.push(db.Close)
	}

	ttlDays := int(cfg.LogsTTL / (24 * time.Hour))
	if err := db.SetLogsTTL(ctx, ttlDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index")
	}

	d.LogStoreCircuitBreaker = newCircuitBreaker(cfg, logStoreBreaker)
	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(
		repository.NewMongoLogsRepository(db), d.LogStoreCircuitBreaker)
	d.LoggingService = service.NewLoggingService(logsRepo)

	log.Info().Int("ttl_days", ttlDays).Msg("Audit log enabled")
}

func newCircuitBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	metrics.SetCircuitBreakerState(name, int(circuitbreaker.StateClosed))
	return circuitbreaker.New(circuitbreaker.Config{
		Name:             name,
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		IsFailure:        repository.IsStoreFailure,
		OnStateChange: func(name string, _, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
		},
	})
}
