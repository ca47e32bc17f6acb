//go:build !linux

package hal

import "os"

// PriorityRange returns the valid static priority range of p.
// Only PolicyInherit is available on this platform.
func PriorityRange(p Policy) (lo, hi int, err error) {
	if p == PolicyInherit {
		return 0, 0, nil
	}
	return 0, 0, ErrUnsupported
}

// CurrentSched is not available on this platform.
func CurrentSched() (Policy, int, error) {
	return 0, 0, ErrUnsupported
}

func applySched(c *ThreadConfig) error {
	if c.policy == PolicyInherit {
		return nil
	}
	return ErrUnsupported
}

// gettid has no portable equivalent; the process id keeps TID non-zero.
func gettid() int {
	return os.Getpid()
}

// CurrentTID returns the process id; per-thread ids are not exposed here.
func CurrentTID() int {
	return gettid()
}
