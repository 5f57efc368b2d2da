package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTL_ReadThrough(t *testing.T) {
	calls := 0
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewTTL(time.Minute, func(ctx context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	})
	c.now = func() time.Time { return now }

	v, hit, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, []string{"a", "b"}, v)

	_, hit, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, calls)

	now = now.Add(2 * time.Minute)
	_, hit, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, calls)
}

func TestTTL_Invalidate(t *testing.T) {
	calls := 0
	c := NewTTL(time.Hour, func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	})

	v, _, _ := c.Get(context.Background())
	assert.Equal(t, 1, v)

	c.Invalidate()
	v, hit, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, v)
}

func TestTTL_InvalidateDuringLoadDiscardsStaleValue(t *testing.T) {
	calls := 0
	var c *TTL[int]
	c = NewTTL(time.Hour, func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			// a write lands while the first load is still in flight
			c.Invalidate()
		}
		return calls, nil
	})

	v, hit, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 1, v)

	v, hit, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, v)

	v, hit, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 2, v)
}

func TestTTL_LoaderErrorIsNotCached(t *testing.T) {
	fail := true
	c := NewTTL(time.Hour, func(ctx context.Context) (int, error) {
		if fail {
			return 0, errors.New("db down")
		}
		return 7, nil
	})

	_, _, err := c.Get(context.Background())
	require.Error(t, err)

	fail = false
	v, hit, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 7, v)
}
