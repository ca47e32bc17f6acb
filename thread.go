// Package hal is a small hardware-abstraction layer offering OS-bound
// threads with real-time scheduling attributes and counting semaphores.
//
// A thread comes in two ownership variants:
//
//   - Thread is joinable. The creator owns it, starts it, and must call
//     Destroy, which waits for the function to return and releases it.
//   - AutoThread releases itself when its function returns. It has no
//     Destroy or Join, so a creator cannot join a thread it no longer owns.
//
// Both run their function on a dedicated OS thread whose scheduling class
// is applied before the function's first instruction.
package hal

import (
	"runtime"
	"sync/atomic"

	"go.uber.org/zap"
)

// State is the lifecycle state of a thread.
type State uint32

const (
	// StateNotStarted is the state of a thread before a successful Start.
	StateNotStarted State = iota
	// StateRunning means the function is executing.
	StateRunning
	// StateExited means the function has returned.
	StateExited
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Starter is the contract shared by both thread variants.
type Starter interface {
	// Start launches the thread. It may succeed at most once.
	Start() error
}

// control is the control block shared by Thread and AutoThread.
type control[T any] struct {
	_        noCopy
	fn       func(T)
	arg      T
	cfg      ThreadConfig
	auto     bool
	id       uint64
	started  atomic.Bool
	released atomic.Bool
	state    atomic.Uint32
	tid      atomic.Int64
	exit     exitLatch
}

func newControl[T any](fn func(T), arg T, auto bool, options []func(*ThreadConfig)) (*control[T], error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	cfg, err := NewThreadConfig(options...)
	if err != nil {
		return nil, err
	}
	return &control[T]{
		fn:   fn,
		arg:  arg,
		cfg:  cfg,
		auto: auto,
		id:   nextID.Add(1),
	}, nil
}

func (c *control[T]) start() error {
	if !c.started.CompareAndSwap(false, true) {
		if c.released.Load() {
			return ErrReleased
		}
		return ErrAlreadyStarted
	}
	ready := make(chan error, 1)
	go c.run(ready)
	return <-ready
}

// run is the body of the new OS thread. Scheduling is applied and the
// outcome reported to start before fn runs.
func (c *control[T]) run(ready chan<- error) {
	runtime.LockOSThread()
	tid := gettid()
	c.tid.Store(int64(tid))

	log := c.cfg.logger.With(
		zap.String("name", c.cfg.name),
		zap.Int("tid", tid),
		zap.Stringer("policy", c.cfg.policy),
		zap.Int("priority", c.cfg.priority),
		zap.Bool("auto", c.auto),
	)

	if err := applySched(&c.cfg); err != nil {
		runtime.UnlockOSThread()
		log.Error("cannot apply scheduling", zap.Error(err))
		// The thread never ran: leave it NotStarted so Destroy won't join.
		c.exit.open()
		ready <- &SchedError{Policy: c.cfg.policy, Priority: c.cfg.priority, Err: err}
		return
	}

	register(ThreadInfo{
		ID:       c.id,
		TID:      tid,
		Name:     c.cfg.name,
		Policy:   c.cfg.policy,
		Priority: c.cfg.priority,
		Auto:     c.auto,
	})
	c.state.Store(uint32(StateRunning))
	log.Debug("thread started")
	ready <- nil

	c.fn(c.arg)

	c.state.Store(uint32(StateExited))
	log.Debug("thread exited")
	if c.auto {
		c.release()
	}
	c.exit.open()

	// A thread whose class was changed exits with its goroutine instead of
	// going back to the runtime with real-time attributes.
	if c.cfg.policy == PolicyInherit {
		runtime.UnlockOSThread()
	}
}

// release drops the control block exactly once. A released control block
// can no longer be started.
func (c *control[T]) release() {
	if !c.released.CompareAndSwap(false, true) {
		return
	}
	c.started.Store(true)
	c.exit.open()
	unregister(c.id)
	var zero T
	c.arg = zero
	c.fn = nil
}

// ============================================================================
// Thread
// ============================================================================

// Thread is a joinable OS thread owned by its creator.
//
// The creator must call Destroy exactly once, whether or not the thread
// was started. Destroy on an unstarted thread never blocks.
type Thread[T any] struct {
	c *control[T]
}

// NewThread creates a joinable thread that will run fn(arg). It does not
// start it. Without options the thread uses PolicyFIFO at the platform's
// minimum real-time priority + 1 and a MinStackSize stack.
//
// Ownership of arg passes to the thread on Start; the caller must arrange
// any further sharing itself.
func NewThread[T any](fn func(T), arg T, options ...func(*ThreadConfig)) (*Thread[T], error) {
	c, err := newControl(fn, arg, false, options)
	if err != nil {
		return nil, err
	}
	return &Thread[T]{c: c}, nil
}

// NewRealtimeThread is NewThread with an explicit static priority.
// The priority wins over any WithPriority in options.
func NewRealtimeThread[T any](fn func(T), arg T, priority int, options ...func(*ThreadConfig)) (*Thread[T], error) {
	return NewThread(fn, arg, withPriority(options, priority)...)
}

// Start launches the thread. It returns once the new OS thread runs with
// the configured scheduling, just before fn is called. If the attributes
// cannot be applied, fn never runs and a *SchedError is returned.
// Any call after the first returns ErrAlreadyStarted; a call after Destroy
// returns ErrReleased.
func (t *Thread[T]) Start() error {
	return t.c.start()
}

// Join blocks until fn has returned. It returns immediately for a thread
// that was never started successfully.
func (t *Thread[T]) Join() {
	if !t.c.started.Load() {
		return
	}
	t.c.exit.wait()
}

// Destroy waits for a started thread's function to return (it does not
// cancel it) and then releases the thread. Calls after the first are no-ops.
func (t *Thread[T]) Destroy() {
	if t.State() != StateNotStarted {
		t.c.exit.wait()
	}
	t.c.release()
}

// State returns the lifecycle state.
func (t *Thread[T]) State() State {
	return State(t.c.state.Load())
}

// TID returns the OS thread id, or 0 before Start.
func (t *Thread[T]) TID() int {
	return int(t.c.tid.Load())
}

// Config returns the scheduling configuration.
func (t *Thread[T]) Config() ThreadConfig {
	return t.c.cfg
}

// ============================================================================
// AutoThread
// ============================================================================

// AutoThread is a detached OS thread that releases itself when its
// function returns. After a successful Start the creator must not rely on
// anything but Config; there is nothing to join or destroy.
type AutoThread[T any] struct {
	c *control[T]
}

// NewAutoThread creates a self-releasing thread that will run fn(arg).
// Defaults are those of NewThread.
func NewAutoThread[T any](fn func(T), arg T, options ...func(*ThreadConfig)) (*AutoThread[T], error) {
	c, err := newControl(fn, arg, true, options)
	if err != nil {
		return nil, err
	}
	return &AutoThread[T]{c: c}, nil
}

// NewRealtimeAutoThread is NewAutoThread with an explicit static priority.
func NewRealtimeAutoThread[T any](fn func(T), arg T, priority int, options ...func(*ThreadConfig)) (*AutoThread[T], error) {
	return NewAutoThread(fn, arg, withPriority(options, priority)...)
}

// Start launches the thread; see Thread.Start.
func (t *AutoThread[T]) Start() error {
	return t.c.start()
}

// Config returns the scheduling configuration.
func (t *AutoThread[T]) Config() ThreadConfig {
	return t.c.cfg
}

// withPriority appends an explicit priority without writing into the
// caller's backing array.
func withPriority(options []func(*ThreadConfig), priority int) []func(*ThreadConfig) {
	return append(options[:len(options):len(options)], WithPriority(priority))
}

// Go creates and starts an AutoThread in one step.
func Go[T any](fn func(T), arg T, options ...func(*ThreadConfig)) error {
	t, err := NewAutoThread(fn, arg, options...)
	if err != nil {
		return err
	}
	return t.Start()
}

// Create picks the variant from the autodestroy flag: a *Thread[T] when
// false, an *AutoThread[T] when true.
func Create[T any](fn func(T), arg T, autodestroy bool, options ...func(*ThreadConfig)) (Starter, error) {
	if autodestroy {
		t, err := NewAutoThread(fn, arg, options...)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	t, err := NewThread(fn, arg, options...)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// CreateRealtime is Create with an explicit static priority.
func CreateRealtime[T any](fn func(T), arg T, autodestroy bool, priority int, options ...func(*ThreadConfig)) (Starter, error) {
	return Create(fn, arg, autodestroy, withPriority(options, priority)...)
}
