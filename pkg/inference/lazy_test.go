package inference

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLazyConstructsOnceUnderConcurrentFirstUse(t *testing.T) {
	var builds atomic.Int32
	lazy := NewLazy(func(context.Context) (string, error) {
		builds.Add(1)
		time.Sleep(10 * time.Millisecond)
		return "model", nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := lazy.Get(context.Background())
			if err != nil || v != "model" {
				t.Errorf("Get = %q, %v", v, err)
			}
		}()
	}
	wg.Wait()

	if builds.Load() != 1 {
		t.Fatalf("expected exactly one construction, got %d", builds.Load())
	}
	if !lazy.Ready() {
		t.Fatalf("expected lazy value to be ready")
	}
}

func TestLazyDoesNotCacheFailures(t *testing.T) {
	var calls int
	lazy := NewLazy(func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("not provisioned")
		}
		return 42, nil
	})

	if _, err := lazy.Get(context.Background()); err == nil {
		t.Fatalf("expected first construction to fail")
	}
	if lazy.Ready() {
		t.Fatalf("failed construction must not mark ready")
	}
	v, err := lazy.Get(context.Background())
	if err != nil || v != 42 {
		t.Fatalf("Get = %d, %v", v, err)
	}
	if _, err := lazy.Get(context.Background()); err != nil || calls != 2 {
		t.Fatalf("expected cached value after success, calls=%d err=%v", calls, err)
	}
}
