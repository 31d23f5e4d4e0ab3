//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandonleon/carbsmart/internal/domain/model"
)

func TestMongoPanRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewMongoPanRepository(setupMongo(t))

	testPanRepository(t, ctx, repo)
	assert.NoError(t, repo.Ping(ctx))
}

func TestMongoPanRepository_SequentialIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewMongoPanRepository(setupMongo(t))

	first, err := repo.Create(ctx, model.PanInput{Name: "Skillet", WeightGrams: 1200})
	require.NoError(t, err)
	second, err := repo.Create(ctx, model.PanInput{Name: "Wok", WeightGrams: 1500})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestPostgresPanRepository_Integration(t *testing.T) {
	ctx := context.Background()
	db := setupPostgres(t)
	assert.Equal(t, DriverPostgres, db.Driver())

	repo := NewSQLPanRepository(db)
	testPanRepository(t, ctx, repo)
	assert.NoError(t, repo.Ping(ctx))
}
