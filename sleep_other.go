//go:build !linux

package hal

import "time"

var monotonicBase = time.Now()

func monotonicNanos() int64 {
	return int64(time.Since(monotonicBase))
}

func sleepUntil(d Deadline) error {
	if w := time.Duration(d.ns - monotonicNanos()); w > 0 {
		time.Sleep(w)
	}
	return nil
}
