package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/brandonleon/carbsmart/internal/circuitbreaker"
	"github.com/brandonleon/carbsmart/internal/domain/model"
	"github.com/brandonleon/carbsmart/internal/metrics"
	"github.com/brandonleon/carbsmart/internal/mocks"
	"github.com/brandonleon/carbsmart/internal/repository"
)

func newBreaker(threshold int) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		Name:             "test",
		FailureThreshold: threshold,
		SuccessThreshold: 1,
		Timeout:          time.Hour,
		IsFailure:        repository.IsStoreFailure,
	})
}

func TestIsStoreFailure(t *testing.T) {
	assert.False(t, repository.IsStoreFailure(repository.ErrNotFound))
	assert.False(t, repository.IsStoreFailure(repository.ErrDuplicateKey))
	assert.True(t, repository.IsStoreFailure(errors.New("connection refused")))
}

func TestPanRepositoryWithCircuitBreaker_PassesThrough(t *testing.T) {
	ctx := context.Background()
	inner := new(mocks.MockPanRepository)
	repo := repository.NewPanRepositoryWithCircuitBreaker(inner, newBreaker(2), "sqlite")

	pan := &model.Pan{ID: 1, Name: "Skillet", WeightGrams: 1200}
	inner.On("GetByID", ctx, int64(1)).Return(pan, nil)
	inner.On("List", ctx).Return([]model.Pan{*pan}, nil)
	inner.On("Count", ctx).Return(int64(1), nil)
	inner.On("Create", ctx, mock.Anything).Return(pan, nil)
	inner.On("Update", ctx, *pan).Return(pan, nil)
	inner.On("Delete", ctx, int64(1)).Return(nil)
	inner.On("Ping", ctx).Return(nil)

	before := testutil.ToFloat64(metrics.PanStoreOperationsTotal.WithLabelValues("sqlite", "get", "success"))

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, pan, got)

	pans, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, pans, 1)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.Create(ctx, model.PanInput{Name: "Skillet", WeightGrams: 1200})
	require.NoError(t, err)
	_, err = repo.Update(ctx, *pan)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, 1))
	require.NoError(t, repo.Ping(ctx))

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.PanStoreOperationsTotal.WithLabelValues("sqlite", "get", "success")))
	inner.AssertExpectations(t)
}

func TestPanRepositoryWithCircuitBreaker_NotFoundDoesNotTrip(t *testing.T) {
	ctx := context.Background()
	inner := new(mocks.MockPanRepository)
	cb := newBreaker(1)
	repo := repository.NewPanRepositoryWithCircuitBreaker(inner, cb, "sqlite")

	inner.On("GetByID", ctx, int64(9)).Return(nil, repository.ErrNotFound)

	for i := 0; i < 3; i++ {
		_, err := repo.GetByID(ctx, 9)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	}
	assert.Equal(t, circuitbreaker.StateClosed, cb.State())
}

func TestPanRepositoryWithCircuitBreaker_OpensOnStoreFailure(t *testing.T) {
	ctx := context.Background()
	inner := new(mocks.MockPanRepository)
	cb := newBreaker(2)
	repo := repository.NewPanRepositoryWithCircuitBreaker(inner, cb, "postgres")

	storeErr := errors.New("connection refused")
	inner.On("List", ctx).Return(nil, storeErr).Twice()
	inner.On("Ping", ctx).Return(storeErr)

	for i := 0; i < 2; i++ {
		_, err := repo.List(ctx)
		assert.ErrorIs(t, err, storeErr)
	}
	require.True(t, cb.IsOpen())

	_, err := repo.List(ctx)
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)

	// Ping reaches the store even while the breaker is open.
	assert.ErrorIs(t, repo.Ping(ctx), storeErr)
	inner.AssertNumberOfCalls(t, "List", 2)
	assert.Same(t, cb, repo.GetCircuitBreaker())
}

func TestLogsRepositoryWithCircuitBreaker_DropsWhenOpen(t *testing.T) {
	ctx := context.Background()
	inner := new(mocks.MockLogsRepository)
	cb := newBreaker(1)
	repo := repository.NewLogsRepositoryWithCircuitBreaker(inner, cb)

	inner.On("Create", ctx, mock.Anything).Return(errors.New("write failed")).Once()
	assert.Error(t, repo.Create(ctx, &repository.LogEntryDocument{Message: "a"}))
	require.True(t, cb.IsOpen())

	before := testutil.ToFloat64(metrics.AuditLogDroppedTotal)
	assert.NoError(t, repo.Create(ctx, &repository.LogEntryDocument{Message: "b"}))
	assert.NoError(t, repo.CreateMany(ctx, []*repository.LogEntryDocument{{Message: "c"}, {Message: "d"}}))
	assert.Equal(t, before+3, testutil.ToFloat64(metrics.AuditLogDroppedTotal))

	_, err := repo.Query(ctx, repository.LogQueryOptions{})
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	_, err = repo.Count(ctx, repository.LogQueryOptions{})
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	inner.AssertNumberOfCalls(t, "Create", 1)
}
