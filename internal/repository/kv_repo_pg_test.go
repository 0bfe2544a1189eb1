package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPGStorage(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewPGStorage(pool)
	assert.NotNil(t, repo)
}

func TestPGStorage_RoundTrip(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		t.Skipf("database not available: %v", err)
	}

	repo := NewPGStorage(pool)
	require.NoError(t, repo.EnsureSchema(ctx))

	key := "test:" + uuid.NewString()
	defer repo.Delete(ctx, key)

	_, found, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Set(ctx, key, `[{"id":"b1"}]`))
	require.NoError(t, repo.Set(ctx, key, `[{"id":"b1"},{"id":"b2"}]`))

	value, found, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"b1"},{"id":"b2"}]`, value)

	require.NoError(t, repo.Delete(ctx, key))
	_, found, err = repo.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)
}
