package convert

import "time"

// Clock supplies the transfer date written by conversions.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant. Useful for reproducible output.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }
