package hal

import (
	"testing"
	"time"
)

func TestSleepUntil(t *testing.T) {
	start := MonotonicNow()
	deadline := start.Add(30 * time.Millisecond)

	if err := SleepUntil(deadline); err != nil {
		t.Fatalf("SleepUntil: %v", err)
	}
	if now := MonotonicNow(); now.Before(deadline) {
		t.Errorf("woke %v early", deadline.Sub(now))
	}
}

func TestSleepUntil_Past(t *testing.T) {
	past := MonotonicNow().Add(-time.Second)

	start := time.Now()
	if err := SleepUntil(past); err != nil {
		t.Fatalf("SleepUntil: %v", err)
	}
	if d := time.Since(start); d > 100*time.Millisecond {
		t.Errorf("past deadline slept %v", d)
	}
}

func TestSleep(t *testing.T) {
	start := time.Now()
	Sleep(10)
	SleepMicros(5000)
	if d := time.Since(start); d < 15*time.Millisecond {
		t.Errorf("slept %v, want >= 15ms", d)
	}
}

func TestDeadline_Periodic(t *testing.T) {
	const period = 5 * time.Millisecond
	first := MonotonicNow()
	next := first
	for range 4 {
		next = next.Add(period)
		if err := SleepUntil(next); err != nil {
			t.Fatal(err)
		}
	}
	if d := MonotonicNow().Sub(first); d < 4*period {
		t.Errorf("4 periods took %v", d)
	}
}
