package hal

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrNilFunc is returned when a thread is created without a function.
	ErrNilFunc = errors.New("hal: nil thread function")

	// ErrInvalidPolicy is returned for an unknown scheduling policy.
	ErrInvalidPolicy = errors.New("hal: invalid scheduling policy")

	// ErrInvalidPriority is returned when a priority lies outside the
	// platform range of the selected policy.
	ErrInvalidPriority = errors.New("hal: priority out of range")

	// ErrInvalidStackSize is returned when the configured stack size is
	// below MinStackSize.
	ErrInvalidStackSize = errors.New("hal: stack size below minimum")

	// ErrAlreadyStarted is returned by a second call to Start.
	ErrAlreadyStarted = errors.New("hal: thread already started")

	// ErrReleased is returned by Start on a thread that was already destroyed.
	ErrReleased = errors.New("hal: thread already destroyed")

	// ErrSchedule is matched by every *SchedError.
	ErrSchedule = errors.New("hal: cannot apply scheduling attributes")

	// ErrUnsupported is returned on platforms without real-time scheduling.
	ErrUnsupported = errors.New("hal: scheduling policy not supported on this platform")

	// ErrNegativeCount is returned by NewSemaphore for a negative initial value.
	ErrNegativeCount = errors.New("hal: negative semaphore count")

	// ErrDestroyed is the panic value for use of a destroyed Semaphore.
	ErrDestroyed = errors.New("hal: use of destroyed semaphore")
)

// SchedError reports a failure to apply a ThreadConfig to a new OS thread.
// The thread function is never run when Start returns a SchedError.
type SchedError struct {
	Policy   Policy
	Priority int
	Err      error
}

func (e *SchedError) Error() string {
	return fmt.Sprintf("hal: set scheduling %s/%d: %v", e.Policy, e.Priority, e.Err)
}

func (e *SchedError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrSchedule) hold for every SchedError.
func (e *SchedError) Is(target error) bool {
	return target == ErrSchedule
}

// IsPermission reports whether err was caused by missing privileges
// (EPERM), the usual outcome of requesting a real-time class without
// CAP_SYS_NICE.
func IsPermission(err error) bool {
	return errors.Is(err, syscall.EPERM)
}
