package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// INFO: https://github.com/go-redis/redis/issues/1029
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
	)
}

func TestInsightsKey(t *testing.T) {
	assert.Equal(t, "insights::user-1::7", InsightsKey("user-1", 7))
	assert.NotEqual(t, InsightsKey("user-1", 7), InsightsKey("user-1", 8))
}

func TestNoopCache(t *testing.T) {
	ctx := context.Background()
	var c Cache = NoopCache{}
	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	v, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(1)

	_, ok := c.Get(ctx, "insights::u1::1")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "insights::u1::1", []byte(`{"personalizedTips":[]}`), 10*time.Minute))
	v, ok := c.Get(ctx, "insights::u1::1")
	require.True(t, ok)
	assert.Equal(t, `{"personalizedTips":[]}`, string(v))
	assert.Equal(t, int64(1), c.EntryCount())

	// sub-second ttl still stores the value
	require.NoError(t, c.Set(ctx, "insights::u2::1", []byte("x"), 10*time.Millisecond))
	_, ok = c.Get(ctx, "insights::u2::1")
	assert.True(t, ok)
}

func TestRedisCache_Get(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCache(db)

	mock.ExpectGet("insights::u1::3").SetVal(`{"a":1}`)
	v, ok := c.Get(ctx, "insights::u1::3")
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(v))

	mock.ExpectGet("insights::u1::4").RedisNil()
	_, ok = c.Get(ctx, "insights::u1::4")
	assert.False(t, ok)

	mock.ExpectGet("insights::u1::5").SetErr(errors.New("connection refused"))
	_, ok = c.Get(ctx, "insights::u1::5")
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Set(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCache(db)

	mock.ExpectSet("insights::u1::3", []byte(`{"a":1}`), time.Minute).SetVal("OK")
	require.NoError(t, c.Set(ctx, "insights::u1::3", []byte(`{"a":1}`), time.Minute))

	mock.ExpectSet("insights::u1::4", []byte(`{}`), time.Minute).SetErr(errors.New("oom"))
	assert.EqualError(t, c.Set(ctx, "insights::u1::4", []byte(`{}`), time.Minute), "oom")

	assert.NoError(t, mock.ExpectationsWereMet())
}
