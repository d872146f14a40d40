package lock

import (
	"context"
	"sync"

	"zenlit/internal/domain/service"
)

type localLock struct {
	mu sync.Mutex
}

// NewLocalLock creates a lock that only serialises runs inside this process.
func NewLocalLock() service.RunLock {
	return &localLock{}
}

type noopLock struct{}

// NewNoopLock creates a lock that never blocks, so overlapping runs all proceed.
func NewNoopLock() service.RunLock {
	return noopLock{}
}

func (noopLock) Acquire(context.Context) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}

func (l *localLock) Acquire(context.Context) (func(context.Context) error, error) {
	if !l.mu.TryLock() {
		return nil, service.ErrLockHeld
	}

	var once sync.Once

	return func(context.Context) error {
		once.Do(l.mu.Unlock)

		return nil
	}, nil
}
