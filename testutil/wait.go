package testutil

import (
	"testing"
	"time"
)

// Waiter is implemented by *sync.WaitGroup.
type Waiter interface {
	Wait()
}

// WaitGroupWithTimeout blocks until w is done or fails the test after timeout.
func WaitGroupWithTimeout(t *testing.T, w Waiter, timeout time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		w.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
		t.Fatalf("timeout after %s waiting for %T", timeout, w)
	}
}
