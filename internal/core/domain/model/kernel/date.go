package kernel

import "time"

// DateOf truncates t to its UTC calendar date. Price and promotion timelines are keyed
// by calendar date, so every comparison goes through DateOf.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
