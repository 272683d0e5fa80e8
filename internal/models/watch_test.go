package models

import (
	"sync"
	"testing"
)

func TestSnapshotGuardStopsDeliveryAfterClose(t *testing.T) {
	guard := &snapshotGuard{}

	calls := 0
	guard.deliver(func() { calls++ })
	if calls != 1 {
		t.Fatalf("delivery before close fired %d times, want 1", calls)
	}

	guard.close()
	guard.deliver(func() { calls++ })
	if calls != 1 {
		t.Errorf("delivery after close fired, total %d", calls)
	}
}

// A change in flight when the subscription is cancelled must not reach the
// callback: close and deliver race under the same lock.
func TestSnapshotGuardConcurrentClose(t *testing.T) {
	guard := &snapshotGuard{}

	var mu sync.Mutex
	delivered := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			guard.deliver(func() {
				mu.Lock()
				delivered++
				mu.Unlock()
			})
		}()
	}
	guard.close()
	wg.Wait()

	after := delivered
	guard.deliver(func() {
		mu.Lock()
		delivered++
		mu.Unlock()
	})
	if delivered != after {
		t.Error("callback fired after cancellation completed")
	}
}
