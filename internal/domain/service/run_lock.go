package service

import (
	"context"

	"zenlit/internal/errors"
)

// ErrLockHeld is returned by RunLock.Acquire when another holder owns the lock.
var ErrLockHeld = errors.New("run lock held by another instance")

// RunLock serialises recalculation runs across service instances.
type RunLock interface {
	// Acquire takes the lock. The returned release func must be called exactly once.
	Acquire(ctx context.Context) (release func(context.Context) error, err error)
}
