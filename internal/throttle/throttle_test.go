package throttle

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/lalith-99/lockerroom/internal/cache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottle_BlocksAfterLimit(t *testing.T) {
	ctx := context.Background()
	th := New(cache.NewMemoryStore(0), 5)

	for i := 1; i <= 5; i++ {
		require.NoError(t, th.Check(ctx, "a@x.io"), "attempt %d", i)
		n, err := th.Fail(ctx, "a@x.io")
		require.NoError(t, err)
		assert.Equal(t, int64(i), n)
	}

	assert.ErrorIs(t, th.Check(ctx, "a@x.io"), ErrThrottled)
	// other identifiers are unaffected
	assert.NoError(t, th.Check(ctx, "b@x.io"))
}

func TestThrottle_SuccessClears(t *testing.T) {
	ctx := context.Background()
	th := New(cache.NewMemoryStore(0), 5)

	for i := 0; i < 4; i++ {
		_, err := th.Fail(ctx, "a@x.io")
		require.NoError(t, err)
	}
	require.NoError(t, th.Succeed(ctx, "a@x.io"))

	// failures accumulate again from zero
	for i := 0; i < 4; i++ {
		_, err := th.Fail(ctx, "a@x.io")
		require.NoError(t, err)
	}
	assert.NoError(t, th.Check(ctx, "a@x.io"))
	_, err := th.Fail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.ErrorIs(t, th.Check(ctx, "a@x.io"), ErrThrottled)
}

func TestThrottle_IdentifierNormalized(t *testing.T) {
	ctx := context.Background()
	th := New(cache.NewMemoryStore(0), 1)

	_, err := th.Fail(ctx, " A@X.io")
	require.NoError(t, err)
	assert.ErrorIs(t, th.Check(ctx, "a@x.io"), ErrThrottled)
}

func TestThrottle_DefaultLimit(t *testing.T) {
	th := New(cache.NewMemoryStore(0), 0)
	assert.Equal(t, int64(DefaultMaxFailures), th.maxFailures)
}

func TestThrottle_RedisShared(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	// two throttles over one redis behave like one process
	a := New(cache.NewRedisStore(client, "", 0), 2)
	b := New(cache.NewRedisStore(client, "", 0), 2)

	_, err := a.Fail(ctx, "c@x.io")
	require.NoError(t, err)
	_, err = b.Fail(ctx, "c@x.io")
	require.NoError(t, err)

	assert.ErrorIs(t, a.Check(ctx, "c@x.io"), ErrThrottled)
	require.NoError(t, b.Succeed(ctx, "c@x.io"))
	assert.NoError(t, a.Check(ctx, "c@x.io"))
}
