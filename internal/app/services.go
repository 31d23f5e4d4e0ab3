package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/brandonleon/carbsmart/config"
	"github.com/brandonleon/carbsmart/internal/service"
	"github.com/brandonleon/carbsmart/internal/service/cache"
)

const cacheShards = 16

// ServiceComponents holds the business services.
type ServiceComponents struct {
	Calculator service.PlanCalculator
	Pans       *service.PanServiceImpl
	Plans      service.PlanService
	// Tokens is nil when authentication is disabled.
	Tokens service.TokenService

	closers closerStack
}

// Close stops the plan cache.
func (s *ServiceComponents) Close(ctx context.Context) error {
	return s.closers.close(ctx)
}

// InitializeServices builds the calculator, pan and plan services on top of
// the pan repository.
func InitializeServices(ctx context.Context, cfg config.Config, db *DatabaseComponents) *ServiceComponents {
	s := &ServiceComponents{}

	opts := []service.Option{service.WithMaxServings(cfg.Planner.MaxServings)}
	if c := s.initializeCache(ctx, cfg.Cache); c != nil {
		opts = append(opts, service.WithCacheInterface(c))
	}
	calculator := service.NewPlanCalculatorService(opts...)

	// Entries computed under an earlier planner configuration survive in a
	// shared cache.
	if cfg.Cache.Backend == config.CacheRedis {
		calculator.InvalidateCache(ctx)
	}

	s.Calculator = calculator
	s.Pans = service.NewPanService(db.PanRepo)
	s.Plans = service.NewPlanService(s.Pans, calculator)

	if cfg.Auth.Enabled {
		if cfg.Auth.JWTSecretKey == "" {
			log.Warn().Msg("JWT_SECRET_KEY is empty - bearer tokens are disabled")
		}
		s.Tokens = service.NewTokenService(cfg.Auth.JWTSecretKey, cfg.Auth.TokenTTL)
	}

	return s
}

// initializeCache returns the configured plan cache. A Redis server that
// cannot be reached falls back to the in-memory cache.
func (s *ServiceComponents) initializeCache(ctx context.Context, cfg config.CacheConfig) cache.Cache {
	switch cfg.Backend {
	case config.CacheNone:
		return nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, cfg.TTL)
		if err == nil {
			s.closers.push(func(context.Context) error { rc.Stop(); return nil })
			log.Info().Msg("Using Redis plan cache")
			return rc
		}
		log.Error().Err(err).Msg("Failed to connect to Redis - falling back to in-memory plan cache")
	}

	mc := cache.NewShardedCache(cfg.Size, cfg.TTL, cacheShards)
	s.closers.push(func(context.Context) error { mc.Stop(); return nil })
	return mc
}
