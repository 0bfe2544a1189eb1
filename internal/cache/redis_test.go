package cache

import (
	"context"
	"testing"

	"github.com/Domenick1991/gnawa-tickets/config"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	s := NewRedisStorage(NewRedisClient(config.RedisConfig{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisStorage_SetGetDelete(t *testing.T) {
	s, mr := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))

	_, found, err := s.Get(ctx, "@gnawa_bookings")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "@gnawa_bookings", `[{"confirmation_code":"GNW45210"}]`))
	value, found, err := s.Get(ctx, "@gnawa_bookings")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"confirmation_code":"GNW45210"}]`, value)
	assert.Zero(t, mr.TTL("@gnawa_bookings"))

	require.NoError(t, s.Delete(ctx, "@gnawa_bookings"))
	assert.False(t, mr.Exists("@gnawa_bookings"))
	assert.NoError(t, s.Delete(ctx, "@gnawa_bookings"))
}

func TestRedisStorage_ServerDown(t *testing.T) {
	s, mr := newTestStorage(t)
	mr.Close()

	_, _, err := s.Get(context.Background(), "@gnawa_bookings")
	assert.Error(t, err)
	assert.Error(t, s.Set(context.Background(), "@gnawa_bookings", "[]"))
}
