package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Concurrency(t *testing.T) {
	c := NewController(Config{MaxConcurrent: 2})

	// Acquire 2
	require.NoError(t, c.Acquire(t.Context()))
	require.NoError(t, c.Acquire(t.Context()))

	// Try 3rd
	assert.False(t, c.TryAcquire())

	// Release 1
	c.Release()
	assert.True(t, c.TryAcquire())

	c.Release()
	c.Release()
}

func TestController_AcquireBlocksUntilCanceled(t *testing.T) {
	c := NewController(Config{MaxConcurrent: 1})
	require.NoError(t, c.Acquire(t.Context()))
	defer c.Release()

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, c.Acquire(ctx), context.DeadlineExceeded)
}

func TestController_Unlimited(t *testing.T) {
	c := NewController(Config{})

	for i := 0; i < 100; i++ {
		assert.True(t, c.TryAcquire())
	}
	require.NoError(t, c.AcquireIO(t.Context(), 1<<30))
	assert.Equal(t, int64(1<<30), c.IOBytes())
}

func TestController_IOLimit(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1000})

	// The bucket starts full, so one burst is admitted immediately.
	start := time.Now()
	require.NoError(t, c.AcquireIO(t.Context(), 1000))
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	// Larger than the bucket: split instead of failing.
	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()
	err := c.AcquireIO(ctx, 5000)
	assert.Error(t, err)
}

func TestController_IOLimitChunked(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

	require.NoError(t, c.AcquireIO(t.Context(), 3<<19))
	assert.Equal(t, int64(3<<19), c.IOBytes())
}

func TestController_Nil(t *testing.T) {
	var c *Controller

	require.NoError(t, c.Acquire(context.Background()))
	assert.True(t, c.TryAcquire())
	c.Release()
	require.NoError(t, c.AcquireIO(context.Background(), 10))
	assert.Equal(t, int64(0), c.IOBytes())
	assert.Equal(t, Config{}, c.Config())
}
