// Package speech handles the voice side of a session: buffering
// recognized speech fragments into complete turns, speech synthesis, and
// transcription.
package speech

import "time"

// Timer is a stoppable pending callback.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. The real implementation wraps time.AfterFunc;
// tests inject a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// NewClock returns a Clock backed by the time package.
func NewClock() Clock {
	return realClock{}
}
