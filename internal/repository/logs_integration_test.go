//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandonleon/carbsmart/internal/circuitbreaker"
	"github.com/brandonleon/carbsmart/internal/domain/model"
)

func TestMongoDB_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := setupMongo(t)

	t.Run("health check", func(t *testing.T) {
		assert.NoError(t, db.HealthCheck(ctx))
	})

	t.Run("set logs TTL repeatedly", func(t *testing.T) {
		assert.NoError(t, db.SetLogsTTL(ctx, 30))
		assert.NoError(t, db.SetLogsTTL(ctx, 60))
		assert.NoError(t, db.SetLogsTTL(ctx, 0))
	})
}

func TestMongoLogsRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewMongoLogsRepository(setupMongo(t))

	entry := &LogEntryDocument{
		Level:      "info",
		Message:    "Pan created",
		RequestID:  "req-1",
		Method:     "POST",
		Path:       "/api/pans",
		StatusCode: 201,
		Principal:  "kitchen",
		ActionType: model.ActionCreatePan,
		PanID:      7,
	}
	require.NoError(t, repo.Create(ctx, entry))
	assert.False(t, entry.ID.IsZero())
	assert.False(t, entry.Timestamp.IsZero())

	require.NoError(t, repo.CreateMany(ctx, []*LogEntryDocument{
		{Level: "info", Message: "Plan computed", RequestID: "req-2", Path: "/api/calc", ActionType: model.ActionPlan, PanID: 7},
		{Level: "error", Message: "Request failed", RequestID: "req-3", Path: "/api/pans/9"},
	}))
	assert.NoError(t, repo.CreateMany(ctx, nil))

	tests := []struct {
		name string
		opts LogQueryOptions
		want int64
	}{
		{"all", LogQueryOptions{}, 3},
		{"by request id", LogQueryOptions{RequestID: "req-1"}, 1},
		{"by level", LogQueryOptions{Level: "error"}, 1},
		{"by action", LogQueryOptions{ActionType: model.ActionPlan}, 1},
		{"by pan", LogQueryOptions{PanID: 7}, 2},
		{"by path prefix", LogQueryOptions{Path: "/api/pans"}, 2},
		{"path is not a pattern", LogQueryOptions{Path: "/api/.*"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := repo.Count(ctx, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)

			docs, err := repo.Query(ctx, tt.opts)
			require.NoError(t, err)
			assert.Len(t, docs, int(tt.want))
		})
	}

	t.Run("newest first with paging", func(t *testing.T) {
		docs, err := repo.Query(ctx, LogQueryOptions{Limit: 2})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.False(t, docs[0].Timestamp.Before(docs[1].Timestamp))

		future := time.Now().Add(time.Hour)
		docs, err = repo.Query(ctx, LogQueryOptions{StartTime: &future})
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestLogsRepositoryWithCircuitBreaker_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cb := circuitbreaker.New(circuitbreaker.DefaultConfig())
	repo := NewLogsRepositoryWithCircuitBreaker(NewMongoLogsRepository(setupMongo(t)), cb)

	require.NoError(t, repo.Create(ctx, &LogEntryDocument{Level: "info", Message: "ok"}))
	n, err := repo.Count(ctx, LogQueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.True(t, cb.GetStats().IsHealthy)
}
