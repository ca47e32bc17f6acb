package hal

import "time"

// Sleep suspends the calling thread for ms milliseconds.
func Sleep(ms int) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// SleepMicros suspends the calling thread for us microseconds.
func SleepMicros(us int) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}

// Deadline is an absolute point on the monotonic clock, for periodic
// loops that must not drift:
//
//	next := hal.MonotonicNow()
//	for {
//		next = next.Add(period)
//		_ = hal.SleepUntil(next)
//		cycle()
//	}
type Deadline struct {
	ns int64
}

// MonotonicNow returns the current monotonic time.
func MonotonicNow() Deadline {
	return Deadline{ns: monotonicNanos()}
}

// Add returns d shifted by dur.
func (d Deadline) Add(dur time.Duration) Deadline {
	return Deadline{ns: d.ns + int64(dur)}
}

// Sub returns d - o.
func (d Deadline) Sub(o Deadline) time.Duration {
	return time.Duration(d.ns - o.ns)
}

// Before reports whether d is earlier than o.
func (d Deadline) Before(o Deadline) bool {
	return d.ns < o.ns
}

// SleepUntil blocks until the monotonic clock reaches d. A deadline in the
// past returns immediately.
func SleepUntil(d Deadline) error {
	return sleepUntil(d)
}
