package resource

import (
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrLockedMemoryLimit is returned when the locked-memory budget would be exceeded.
var ErrLockedMemoryLimit = errors.New("locked memory limit exceeded")

// Config holds resource limits.
type Config struct {
	// LockedLimitBytes is the hard limit for pinned memory.
	// If 0, no hard limit is enforced (only tracking).
	LockedLimitBytes int64
}

// Controller tracks and limits the process-wide amount of pinned memory.
type Controller struct {
	cfg Config

	lockedSem  *semaphore.Weighted // nil if unlimited
	lockedUsed atomic.Int64
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.LockedLimitBytes > 0 {
		c.lockedSem = semaphore.NewWeighted(cfg.LockedLimitBytes)
	}

	return c
}

// AcquireLocked attempts to reserve budget for pinning bytes of memory.
// Returns ErrLockedMemoryLimit if the limit would be exceeded.
// Non-blocking - lock failures are not retried, so callers never wait.
func (c *Controller) AcquireLocked(bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes <= 0 {
		return nil
	}

	if c.lockedSem != nil {
		if !c.lockedSem.TryAcquire(bytes) {
			return ErrLockedMemoryLimit
		}
	}

	c.lockedUsed.Add(bytes)
	return nil
}

// ReleaseLocked returns previously reserved budget.
func (c *Controller) ReleaseLocked(bytes int64) {
	if c == nil {
		return
	}
	if bytes <= 0 {
		return
	}

	if c.lockedSem != nil {
		c.lockedSem.Release(bytes)
	}
	c.lockedUsed.Add(-bytes)
}

// LockedBytes returns the currently reserved pinned-memory budget in bytes.
func (c *Controller) LockedBytes() int64 {
	if c == nil {
		return 0
	}
	return c.lockedUsed.Load()
}

// Limit returns the configured limit in bytes (0 if unlimited).
func (c *Controller) Limit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.LockedLimitBytes
}
