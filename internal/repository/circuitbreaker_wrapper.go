package repository

import (
	"context"
	"errors"

	"github.com/brandonleon/carbsmart/internal/circuitbreaker"
	"github.com/brandonleon/carbsmart/internal/domain/model"
	"github.com/brandonleon/carbsmart/internal/metrics"
)

// IsStoreFailure reports whether err indicates an unhealthy store. Lookups
// that miss and unique violations are answers, not failures.
func IsStoreFailure(err error) bool {
	return !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrDuplicateKey)
}

// PanRepositoryWithCircuitBreaker guards a PanRepository with a circuit
// breaker and records per-operation metrics. Calls rejected by an open
// breaker fail with circuitbreaker.ErrCircuitOpen.
type PanRepositoryWithCircuitBreaker struct {
	repo           PanRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
	store          string
}

// NewPanRepositoryWithCircuitBreaker wraps repo. store labels the metrics
// (e.g. "sqlite", "postgres", "mongodb").
func NewPanRepositoryWithCircuitBreaker(repo PanRepository, cb *circuitbreaker.CircuitBreaker, store string) *PanRepositoryWithCircuitBreaker {
	return &PanRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb, store: store}
}

func (r *PanRepositoryWithCircuitBreaker) List(ctx context.Context) ([]model.Pan, error) {
	pans, err := circuitbreaker.Call(ctx, r.circuitBreaker, func() ([]model.Pan, error) {
		return r.repo.List(ctx)
	})
	r.record("list", err)
	return pans, err
}

func (r *PanRepositoryWithCircuitBreaker) GetByID(ctx context.Context, id int64) (*model.Pan, error) {
	pan, err := circuitbreaker.Call(ctx, r.circuitBreaker, func() (*model.Pan, error) {
		return r.repo.GetByID(ctx, id)
	})
	r.record("get", err)
	return pan, err
}

func (r *PanRepositoryWithCircuitBreaker) Create(ctx context.Context, in model.PanInput) (*model.Pan, error) {
	pan, err := circuitbreaker.Call(ctx, r.circuitBreaker, func() (*model.Pan, error) {
		return r.repo.Create(ctx, in)
	})
	r.record("create", err)
	return pan, err
}

func (r *PanRepositoryWithCircuitBreaker) Update(ctx context.Context, pan model.Pan) (*model.Pan, error) {
	updated, err := circuitbreaker.Call(ctx, r.circuitBreaker, func() (*model.Pan, error) {
		return r.repo.Update(ctx, pan)
	})
	r.record("update", err)
	return updated, err
}

func (r *PanRepositoryWithCircuitBreaker) Delete(ctx context.Context, id int64) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Delete(ctx, id)
	})
	r.record("delete", err)
	return err
}

func (r *PanRepositoryWithCircuitBreaker) Count(ctx context.Context) (int64, error) {
	n, err := circuitbreaker.Call(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx)
	})
	r.record("count", err)
	return n, err
}

// Ping bypasses the breaker so readiness probes see the real store state.
func (r *PanRepositoryWithCircuitBreaker) Ping(ctx context.Context) error {
	return r.repo.Ping(ctx)
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *PanRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

func (r *PanRepositoryWithCircuitBreaker) record(op string, err error) {
	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		result = "rejected"
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	case errors.Is(err, ErrDuplicateKey):
		result = "conflict"
	default:
		result = "error"
	}
	metrics.RecordPanStoreOperation(r.store, op, result)
}

// LogsRepositoryWithCircuitBreaker guards a LogsRepository. Writes rejected
// by an open breaker are dropped silently since logging is non-critical.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepository, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	return dropWhenOpen(err, 1)
}

func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	return dropWhenOpen(err, len(entries))
}

func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() ([]*LogEntryDocument, error) {
		return r.repo.Query(ctx, opts)
	})
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

func dropWhenOpen(err error, n int) error {
	if !errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return err
	}
	metrics.RecordAuditLogDropped(n)
	return nil
}
