package inference

import (
	"context"
	"sync"
	"sync/atomic"
)

// Lazy holds a value that is constructed on first use and then shared for
// the life of the process. Concurrent first callers wait on one construction.
// A failed construction is not remembered, so a later Get tries again.
type Lazy[T any] struct {
	mu    sync.Mutex
	ready atomic.Bool
	value T
	build func(ctx context.Context) (T, error)
}

// NewLazy wraps build.
func NewLazy[T any](build func(ctx context.Context) (T, error)) *Lazy[T] {
	return &Lazy[T]{build: build}
}

// Get returns the value, constructing it if needed.
func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	if l.ready.Load() {
		return l.value, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ready.Load() {
		return l.value, nil
	}

	v, err := l.build(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	l.value = v
	l.ready.Store(true)
	return v, nil
}

// Ready reports whether the value has been constructed.
func (l *Lazy[T]) Ready() bool {
	return l.ready.Load()
}
