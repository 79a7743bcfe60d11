package timezone

import "time"

// Clock supplies the current instant. Business rules read it once per operation.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewClock returns a Clock backed by the application timezone.
func NewClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return Now()
}

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}
