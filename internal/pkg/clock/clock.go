// Package clock abstracts the current time so handlers and jobs can be tested with a
// fixed instant.
package clock

import "time"

// Clock returns the current instant.
type Clock func() time.Time

// System returns a Clock backed by time.Now in UTC.
func System() Clock {
	return func() time.Time { return time.Now().UTC() }
}

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// Now calls the clock, falling back to the system time for a nil Clock.
func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c()
}
