// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/brandonleon/carbsmart/config"
	"github.com/brandonleon/carbsmart/internal/http"
)

// App is the wired application. Close releases everything it opened.
type App struct {
	Config   config.Config
	Database *DatabaseComponents
	Services *ServiceComponents
	// Router is nil for apps built by InitializeCore.
	Router *http.Router

	closers closerStack
}

// InitializeCore opens the stores and builds the services without any HTTP
// layer. The CLI uses it for offline commands.
func InitializeCore(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := InitializeDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Database: db}
	a.closers.push(db.Close)

	a.Services = InitializeServices(ctx, cfg, db)
	a.closers.push(a.Services.Close)

	if err := SeedPans(ctx, a.Services.Pans, cfg.Database.SeedFile); err != nil {
		log.Warn().Err(err).Msg("Failed to seed pan library")
	}

	return a, nil
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context, cfg config.Config) (*App, error) {
	a, err := InitializeCore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rc := InitializeRouter(cfg, a.Services, a.Database)
	a.closers.push(rc.Close)

	a.Router = rc.Build()
	a.closers.push(func(context.Context) error { a.Router.Close(); return nil })

	return a, nil
}

// Close releases resources in reverse order of acquisition: middleware
// goroutines, the audit log queue, caches and finally the stores.
func (a *App) Close(ctx context.Context) error {
	return a.closers.close(ctx)
}

// closerStack runs release functions last-in first-out.
type closerStack []func(ctx context.Context) error

func (s *closerStack) push(fn func(ctx context.Context) error) {
	*s = append(*s, fn)
}

func (s *closerStack) close(ctx context.Context) error {
	fns := *s
	*s = nil

	var errs []error
	for i := len(fns) - 1; i >= 0; i-- {
		if err := fns[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
