package resource

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned when the region budget would be exceeded.
var ErrMemoryLimitExceeded = errors.New("resource: memory limit exceeded")

// Config holds resource limits for value regions.
type Config struct {
	// MemoryLimitBytes is the hard limit for region-backed memory.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// GrowthLimitBytesPerSec throttles region growth. Parameter counts and
	// array extents come from the catalog and from foreign arrays, so a
	// misdeclared routine cannot grab chunks at an unbounded rate.
	// If 0, unlimited.
	GrowthLimitBytesPerSec int64
}

// Controller accounts for memory held by value regions.
//
// A nil *Controller is valid and enforces nothing, so callers never have to
// branch on whether limits are configured.
type Controller struct {
	cfg Config

	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	growthLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	if cfg.GrowthLimitBytesPerSec > 0 {
		c.growthLimiter = rate.NewLimiter(rate.Limit(cfg.GrowthLimitBytesPerSec), int(cfg.GrowthLimitBytesPerSec))
	}

	return c
}

// AcquireMemory reserves region memory, waiting on the growth limiter first.
// Returns ErrMemoryLimitExceeded if the budget would be exceeded.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.growthLimiter != nil {
		burst := int64(c.growthLimiter.Burst())
		for remaining := bytes; remaining > 0; {
			n := remaining
			if n > burst {
				n = burst
			}
			if err := c.growthLimiter.WaitN(ctx, int(n)); err != nil {
				return err
			}
			remaining -= n
		}
	}

	return c.acquire(bytes)
}

func (c *Controller) acquire(bytes int64) error {
	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return ErrMemoryLimitExceeded
		}
	}
	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory releases reserved region memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}
	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current region memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the configured limit in bytes (0 if unlimited).
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// WaitGrowth blocks until the growth limiter admits the given amount.
// Used by callers that reserve memory through a path of their own.
func (c *Controller) WaitGrowth(ctx context.Context, bytes int) error {
	if c == nil || c.growthLimiter == nil || bytes <= 0 {
		return nil
	}
	deadlineCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		deadlineCtx, cancel = context.WithTimeout(ctx, time.Second)
		defer cancel()
	}
	return c.growthLimiter.WaitN(deadlineCtx, bytes)
}
