package adapters

import (
	"time"

	"bsdsetup/internal/domain/interfaces"
)

// RealClock uses the system clock.
type RealClock struct{}

// NewRealClock creates a new RealClock.
func NewRealClock() interfaces.Clock {
	return &RealClock{}
}

// Now returns the current time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}
