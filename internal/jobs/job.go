package jobs

import (
	"context"
	"time"
)

// Job is one scheduled task. Run reports how many rows it changed.
type Job interface {
	Name() string
	Schedule() string
	Run(ctx context.Context, now time.Time) (int, error)
}

// Lock coordinates exclusive runs across processes.
type Lock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// LockFactory builds the lock guarding the job called name.
type LockFactory func(name string, ttl time.Duration) (Lock, error)
