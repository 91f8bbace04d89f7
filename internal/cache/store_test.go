package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "test:", ttl), mr
}

// Both implementations must behave the same for the operations callers use.
func TestStoreContract(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore(0) },
		"redis": func(t *testing.T) Store {
			s, _ := newRedisStore(t, 0)
			return s
		},
	}

	for name, mk := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := mk(t)

			_, found, err := s.Get(ctx, "k")
			require.NoError(t, err)
			assert.False(t, found)

			n, err := s.Incr(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)

			n, err = s.Incr(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, int64(2), n)

			v, found, err := s.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, int64(2), v)

			require.NoError(t, s.Set(ctx, "k", 9))
			v, _, err = s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, int64(9), v)

			require.NoError(t, s.Del(ctx, "k"))
			_, found, err = s.Get(ctx, "k")
			require.NoError(t, err)
			assert.False(t, found)

			// deleting a missing key is not an error
			require.NoError(t, s.Del(ctx, "missing"))
		})
	}
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute)
	s.now = func() time.Time { return now }

	_, err := s.Incr(ctx, "k")
	require.NoError(t, err)

	now = now.Add(59 * time.Second)
	_, found, _ := s.Get(ctx, "k")
	assert.True(t, found)

	now = now.Add(time.Second)
	_, found, _ = s.Get(ctx, "k")
	assert.False(t, found)

	n, err := s.Incr(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryStore_Reset(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	require.NoError(t, s.Set(ctx, "a", 1))
	s.Reset()
	_, found, _ := s.Get(ctx, "a")
	assert.False(t, found)
}

func TestMemoryStore_ConcurrentIncr(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Incr(ctx, "k")
		}()
	}
	wg.Wait()

	v, _, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(50), v)
}

func TestRedisStore_TTLAndPrefix(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, time.Minute)

	_, err := s.Incr(ctx, "login")
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:login"))
	assert.Equal(t, time.Minute, mr.TTL("test:login"))

	mr.FastForward(time.Minute)
	_, found, err := s.Get(ctx, "login")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:0",
		DialTimeout: 50 * time.Millisecond,
	})
	t.Cleanup(func() { _ = client.Close() })
	s := NewRedisStore(client, "", 0)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, _, err := s.Get(ctx, "k")
	assert.Error(t, err)
	_, err = s.Incr(ctx, "k")
	assert.Error(t, err)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	_ = client.Close()

	_, err = NewRedisClient(context.Background(), "://bad")
	assert.Error(t, err)
}
