package hal

import (
	"sync/atomic"

	"github.com/llxisdsh/hal/internal/opt"
)

// exitLatch is the join point of a thread's control block.
//
// The thread opens it once its function has returned, after a failed
// scheduling setup, or when the block is released; Thread.Join and
// Thread.Destroy park on it. Opening is one-shot: every current and future
// wait returns immediately afterwards, so several joiners and a Destroy
// racing a Join all observe the same exit.
type exitLatch struct {
	_ noCopy
	// state 32-bit:
	//   bit 0: open flag
	//   bits 1-31: parked waiter count
	state atomic.Uint32
	sema  opt.Sema
}

const (
	exitOpenFlag  = 1
	exitOneWaiter = 2 // 1 << 1
)

// open marks the thread as finished and wakes all parked joiners.
func (l *exitLatch) open() {
	for {
		s := l.state.Load()
		if s&exitOpenFlag != 0 {
			return
		}
		if l.state.CompareAndSwap(s, exitOpenFlag) {
			for range s >> 1 {
				l.sema.Release(false)
			}
			return
		}
	}
}

// wait joins: it blocks until the thread's exit has been signalled.
func (l *exitLatch) wait() {
	for {
		s := l.state.Load()
		if s&exitOpenFlag != 0 {
			return
		}
		if l.state.CompareAndSwap(s, s+exitOneWaiter) {
			l.sema.Acquire()
			return
		}
	}
}

func (l *exitLatch) isOpen() bool {
	return l.state.Load()&exitOpenFlag != 0
}
