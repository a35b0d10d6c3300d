package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxConcurrent is the maximum number of operations in flight.
	// If 0, unlimited.
	MaxConcurrent int64

	// IOLimitBytesPerSec is the maximum IO throughput.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller enforces a Config.
type Controller struct {
	cfg Config

	sem       *semaphore.Weighted // nil if unlimited
	ioLimiter *rate.Limiter       // nil if unlimited

	ioBytes atomic.Int64
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MaxConcurrent > 0 {
		c.sem = semaphore.NewWeighted(cfg.MaxConcurrent)
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// Config returns the limits the controller was built with.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// Acquire reserves an operation slot, blocking until one is free or ctx is
// canceled.
func (c *Controller) Acquire(ctx context.Context) error {
	if c == nil || c.sem == nil {
		return ctx.Err()
	}
	return c.sem.Acquire(ctx, 1)
}

// TryAcquire reserves a slot without blocking.
func (c *Controller) TryAcquire() bool {
	if c == nil || c.sem == nil {
		return true
	}
	return c.sem.TryAcquire(1)
}

// Release frees a slot taken by Acquire or TryAcquire.
func (c *Controller) Release() {
	if c == nil || c.sem == nil {
		return
	}
	c.sem.Release(1)
}

// AcquireIO waits until the IO limit allows n bytes. Requests larger than the
// bucket are split into bucket-sized waits.
func (c *Controller) AcquireIO(ctx context.Context, n int) error {
	if c == nil {
		return nil
	}
	if n <= 0 {
		return nil
	}

	if c.ioLimiter != nil {
		burst := c.ioLimiter.Burst()
		for rem := n; rem > 0; rem -= burst {
			if err := c.ioLimiter.WaitN(ctx, min(rem, burst)); err != nil {
				return err
			}
		}
	}

	c.ioBytes.Add(int64(n))
	return nil
}

// IOBytes returns the total number of bytes admitted by AcquireIO.
func (c *Controller) IOBytes() int64 {
	if c == nil {
		return 0
	}
	return c.ioBytes.Load()
}
