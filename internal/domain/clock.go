package domain

import "time"

// Clock supplies the current instant. Injected so tests (and the simulator)
// can control "today" when exercising streaks and weekly buckets.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return systemClock{}
}
