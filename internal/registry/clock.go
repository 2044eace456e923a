package registry

import "time"

// Clock supplies the platform time as unix seconds. Every time-dependent rule
// in the engine is a pure comparison against this value; there are no
// scheduled callbacks.
type Clock interface {
	Now() int64
}

type systemClock struct{}

func (systemClock) Now() int64 {
	return time.Now().Unix()
}

func NewSystemClock() Clock {
	return systemClock{}
}
