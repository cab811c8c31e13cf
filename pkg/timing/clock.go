package timing

import "time"

// Clock supplies the time source for spans and the registry. The system
// clock is used everywhere outside of tests; tests substitute a manual
// implementation to make durations deterministic.
type Clock interface {
	// Now returns the current time. Readings must be non-decreasing
	// within a process run.
	Now() time.Time
}

// systemClock reads time.Now, which carries a monotonic reading on all
// supported platforms, so Sub between two readings is immune to wall
// clock adjustments.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the process-wide monotonic clock.
func SystemClock() Clock { return systemClock{} }
