//go:build linux

package hal

import (
	"golang.org/x/sys/unix"
)

func (p Policy) native() int {
	switch p {
	case PolicyFIFO:
		return unix.SCHED_FIFO
	case PolicyRR:
		return unix.SCHED_RR
	default:
		return unix.SCHED_NORMAL
	}
}

func policyFromNative(n uint32) Policy {
	switch int(n) {
	case unix.SCHED_FIFO:
		return PolicyFIFO
	case unix.SCHED_RR:
		return PolicyRR
	default:
		return PolicyOther
	}
}

// PriorityRange returns the valid static priority range of p, as reported
// by sched_get_priority_min and sched_get_priority_max.
func PriorityRange(p Policy) (lo, hi int, err error) {
	if p == PolicyInherit {
		return 0, 0, nil
	}
	if p > PolicyInherit {
		return 0, 0, ErrInvalidPolicy
	}
	r1, _, errno := unix.Syscall(unix.SYS_SCHED_GET_PRIORITY_MIN, uintptr(p.native()), 0, 0)
	if errno != 0 {
		return 0, 0, errno
	}
	r2, _, errno := unix.Syscall(unix.SYS_SCHED_GET_PRIORITY_MAX, uintptr(p.native()), 0, 0)
	if errno != 0 {
		return 0, 0, errno
	}
	return int(r1), int(r2), nil
}

// CurrentSched returns the scheduling class and priority of the calling
// OS thread. Callers that need a stable answer must hold
// runtime.LockOSThread.
func CurrentSched() (Policy, int, error) {
	attr, err := unix.SchedGetAttr(0, 0)
	if err != nil {
		return 0, 0, err
	}
	return policyFromNative(attr.Policy), int(attr.Priority), nil
}

// applySched sets the class of the calling OS thread.
// sched_setattr changes policy and priority in one step.
func applySched(c *ThreadConfig) error {
	if c.policy == PolicyInherit {
		return nil
	}
	attr := unix.SchedAttr{
		Policy:   uint32(c.policy.native()),
		Priority: uint32(c.priority),
	}
	return unix.SchedSetAttr(0, &attr, 0)
}

func gettid() int {
	return unix.Gettid()
}

// CurrentTID returns the OS thread id of the caller.
func CurrentTID() int {
	return gettid()
}
