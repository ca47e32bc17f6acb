package hal

import (
	"sync/atomic"

	"github.com/llxisdsh/hal/internal/opt"
)

// Semaphore is a process-local counting semaphore.
//
// Wait blocks until the count is positive and then decrements it; Post
// increments it and wakes at most one blocked waiter. The semaphore guards
// its own count only and is not a recursive lock.
//
// Use NewSemaphore to create one. A Semaphore must not be copied after
// first use.
type Semaphore struct {
	_ noCopy
	// count is the number of available units.
	// Positive: units available.
	// Negative: number of parked waiters.
	count     atomic.Int64
	destroyed atomic.Bool
	sema      opt.Sema
}

// NewSemaphore creates a semaphore holding initial units.
func NewSemaphore(initial int) (*Semaphore, error) {
	if initial < 0 {
		return nil, ErrNegativeCount
	}
	s := &Semaphore{}
	s.count.Store(int64(initial))
	return s, nil
}

// Wait blocks until the count is greater than zero, then decrements it.
// There is no timeout.
func (s *Semaphore) Wait() {
	s.checkLive()
	if s.count.Add(-1) < 0 {
		s.sema.Acquire()
	}
}

// TryWait decrements the count if it is positive and reports whether it did.
// It never blocks.
func (s *Semaphore) TryWait() bool {
	s.checkLive()
	for {
		c := s.count.Load()
		if c <= 0 {
			return false
		}
		if s.count.CompareAndSwap(c, c-1) {
			return true
		}
	}
}

// Post increments the count, waking one blocked Wait if any.
func (s *Semaphore) Post() {
	s.checkLive()
	// A non-positive result means a waiter had already claimed this unit.
	if s.count.Add(1) <= 0 {
		s.sema.Release(false)
	}
}

// Value returns the number of units currently available.
// Parked waiters are not reported; the result is never negative.
func (s *Semaphore) Value() int {
	return int(max(s.count.Load(), 0))
}

// Destroy releases the semaphore. Any later Wait, TryWait or Post panics.
// The caller must ensure no operation is in flight.
func (s *Semaphore) Destroy() {
	s.destroyed.Store(true)
}

func (s *Semaphore) checkLive() {
	if s.destroyed.Load() {
		panic(ErrDestroyed)
	}
}
