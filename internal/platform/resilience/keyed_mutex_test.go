package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	var k KeyedMutex
	var inFlight, maxInFlight atomic.Int32

	const workers = 16
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock, err := k.Lock(context.Background(), "J10")
			if err != nil {
				t.Errorf("lock: %v", err)
				return
			}
			defer unlock()

			current := inFlight.Add(1)
			for {
				seen := maxInFlight.Load()
				if current <= seen || maxInFlight.CompareAndSwap(seen, current) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			inFlight.Add(-1)
		}()
	}
	wg.Wait()

	if got := maxInFlight.Load(); got != 1 {
		t.Fatalf("expected at most one holder, saw %d", got)
	}
	if len(k.locks) != 0 {
		t.Fatalf("expected lock table to be empty, got %d entries", len(k.locks))
	}
}

func TestKeyedMutex_DifferentKeysDoNotBlock(t *testing.T) {
	var k KeyedMutex

	unlockA, err := k.Lock(context.Background(), "J10")
	if err != nil {
		t.Fatalf("lock J10: %v", err)
	}
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlockB, err := k.Lock(ctx, "J11")
	if err != nil {
		t.Fatalf("lock J11 should not wait for J10: %v", err)
	}
	unlockB()
}

func TestKeyedMutex_ContextCancelled(t *testing.T) {
	var k KeyedMutex

	unlock, err := k.Lock(context.Background(), "J10")
	if err != nil {
		t.Fatalf("lock: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := k.Lock(ctx, "J10"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	unlock()
	unlock()
	if len(k.locks) != 0 {
		t.Fatalf("expected lock table to be empty, got %d entries", len(k.locks))
	}
}
