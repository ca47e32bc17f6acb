package hal

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestExitLatch_Broadcast(t *testing.T) {
	var l exitLatch
	var count int32
	var wg sync.WaitGroup
	n := 10

	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			l.wait()
			atomic.AddInt32(&count, 1)
		}()
	}

	// Ensure they are waiting
	time.Sleep(50 * time.Millisecond)
	if c := atomic.LoadInt32(&count); c != 0 {
		t.Errorf("Waiters passed early: %d", c)
	}
	if l.isOpen() {
		t.Error("latch open before open()")
	}

	l.open()
	wg.Wait()

	if c := atomic.LoadInt32(&count); c != int32(n) {
		t.Errorf("Not all waiters woke up: %d / %d", c, n)
	}
}

func TestExitLatch_OpenBeforeWait(t *testing.T) {
	var l exitLatch
	l.open()
	l.open() // Should be safe

	done := make(chan struct{})
	go func() {
		l.wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Errorf("wait blocked even though open was called before")
	}
	if !l.isOpen() {
		t.Error("isOpen = false after open")
	}
}
