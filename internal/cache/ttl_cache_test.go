package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCacheExpires(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	c := NewTTLCache[string, int]().WithNow(func() time.Time { return now })

	c.Set("a", 1, time.Minute)
	c.Set("forever", 2, 0)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	now = now.Add(time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)

	v, ok = c.Get("forever")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	c.Delete("forever")
	_, ok = c.Get("forever")
	assert.False(t, ok)
}

func TestNilAndNoopCaches(t *testing.T) {
	var nilCache *TTLCache[string, int]
	nilCache.Set("a", 1, time.Minute)
	_, ok := nilCache.Get("a")
	assert.False(t, ok)

	var noop Cache[string, int] = NoopCache[string, int]{}
	noop.Set("a", 1, time.Minute)
	_, ok = noop.Get("a")
	assert.False(t, ok)

	var redisCache *RedisCache[int]
	_, ok = redisCache.Get("a")
	assert.False(t, ok)
}

func TestNilLockerAlwaysGrants(t *testing.T) {
	var l *Locker
	token, ok, err := l.TryLock(context.Background(), "k", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, token)
	assert.NoError(t, l.Release(context.Background(), "k", token))
	assert.Nil(t, NewLocker(nil))
}
