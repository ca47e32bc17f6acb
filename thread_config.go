package hal

import (
	"fmt"

	"go.uber.org/zap"
)

// ============================================================================
// Configuration
// ============================================================================

// Policy is an OS scheduling class.
type Policy uint8

const (
	// PolicyFIFO is the fixed-priority real-time class without time
	// slicing (SCHED_FIFO). It is the default.
	PolicyFIFO Policy = iota
	// PolicyRR is the fixed-priority real-time class with round-robin
	// time slicing among equal priorities (SCHED_RR).
	PolicyRR
	// PolicyOther is the default time-sharing class (SCHED_OTHER).
	// Its only valid priority is 0.
	PolicyOther
	// PolicyInherit leaves the scheduling of the new thread untouched,
	// so it runs with whatever class the runtime thread already has.
	PolicyInherit
)

func (p Policy) String() string {
	switch p {
	case PolicyFIFO:
		return "fifo"
	case PolicyRR:
		return "rr"
	case PolicyOther:
		return "other"
	case PolicyInherit:
		return "inherit"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// Realtime reports whether p is a fixed-priority real-time class.
func (p Policy) Realtime() bool {
	return p == PolicyFIFO || p == PolicyRR
}

// ParsePolicy is the inverse of Policy.String.
func ParsePolicy(s string) (Policy, error) {
	for p := PolicyFIFO; p <= PolicyInherit; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
}

// MinStackSize is the smallest accepted stack size and the default.
// It matches PTHREAD_STACK_MIN on Linux.
const MinStackSize = 16 << 10

// ThreadConfig holds the scheduling attributes of a thread.
// It is built once from options when the thread is created and never
// changes afterwards; accessors return copies of its fields.
type ThreadConfig struct {
	// policy is the scheduling class applied before the thread function runs.
	policy Policy

	// priority is the static priority within policy.
	// For real-time policies it defaults to the platform minimum + 1,
	// one step above background work.
	priority    int
	hasPriority bool

	// stackSize is the requested stack reservation. Goroutine stacks grow
	// on demand, so it acts as a lower bound that is validated and
	// reported rather than preallocated.
	stackSize int

	// name labels the thread in logs and in LiveThreads.
	name string

	logger *zap.Logger
}

// WithPolicy selects the scheduling class. Default: PolicyFIFO.
func WithPolicy(p Policy) func(*ThreadConfig) {
	return func(c *ThreadConfig) {
		c.policy = p
	}
}

// WithPriority sets an explicit static priority, overriding the
// policy default.
func WithPriority(prio int) func(*ThreadConfig) {
	return func(c *ThreadConfig) {
		c.priority = prio
		c.hasPriority = true
	}
}

// WithStackSize records a requested stack size. Default: MinStackSize.
//
// The value is advisory: it is validated against MinStackSize and reported
// by StackSize, but goroutine stacks grow on demand and nothing is
// reserved up front.
func WithStackSize(size int) func(*ThreadConfig) {
	return func(c *ThreadConfig) {
		c.stackSize = size
	}
}

// WithName labels the thread.
func WithName(name string) func(*ThreadConfig) {
	return func(c *ThreadConfig) {
		c.name = name
	}
}

// WithLogger sets the logger for thread lifecycle events.
// A nil logger is ignored. Default: zap.NewNop().
func WithLogger(l *zap.Logger) func(*ThreadConfig) {
	return func(c *ThreadConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithConfig starts from cfg, typically built once with NewThreadConfig
// and shared by several threads. Options that follow it override its
// fields. The result is validated again.
//
//	rt, _ := hal.NewThreadConfig(hal.WithPolicy(hal.PolicyRR), hal.WithPriority(40))
//	rx, _ := hal.NewThread(receive, conn, hal.WithConfig(rt), hal.WithName("rx"))
func WithConfig(cfg ThreadConfig) func(*ThreadConfig) {
	return func(c *ThreadConfig) {
		logger := c.logger
		*c = cfg
		if c.logger == nil {
			c.logger = logger
		}
	}
}

// NewThreadConfig builds and validates a configuration.
func NewThreadConfig(options ...func(*ThreadConfig)) (ThreadConfig, error) {
	c := ThreadConfig{
		policy:    PolicyFIFO,
		stackSize: MinStackSize,
		logger:    zap.NewNop(),
	}
	for _, o := range options {
		o(&c)
	}

	if c.policy > PolicyInherit {
		return ThreadConfig{}, fmt.Errorf("%w: %d", ErrInvalidPolicy, c.policy)
	}
	if c.stackSize < MinStackSize {
		return ThreadConfig{}, fmt.Errorf("%w: %d < %d", ErrInvalidStackSize, c.stackSize, MinStackSize)
	}

	switch {
	case c.policy.Realtime():
		lo, hi, err := PriorityRange(c.policy)
		if err != nil {
			// Unknown range: keep the request and let Start report the failure.
			if !c.hasPriority {
				c.priority = 0
			}
			break
		}
		if !c.hasPriority {
			c.priority = lo + 1
		}
		if c.priority < lo || c.priority > hi {
			return ThreadConfig{}, fmt.Errorf("%w: %s priority %d not in [%d, %d]",
				ErrInvalidPriority, c.policy, c.priority, lo, hi)
		}
	default:
		if c.priority != 0 {
			return ThreadConfig{}, fmt.Errorf("%w: %s takes no priority, got %d",
				ErrInvalidPriority, c.policy, c.priority)
		}
	}
	return c, nil
}

// Policy returns the scheduling class.
func (c ThreadConfig) Policy() Policy { return c.policy }

// Priority returns the static priority.
func (c ThreadConfig) Priority() int { return c.priority }

// StackSize returns the advisory stack size in bytes; see WithStackSize.
func (c ThreadConfig) StackSize() int { return c.stackSize }

// Name returns the thread label.
func (c ThreadConfig) Name() string { return c.name }
