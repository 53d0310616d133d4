// Package calendar builds the week-calendar view models from a station's
// booking list: per-day event buckets, chip visibility counts and the
// week/year navigation options. Everything here is a pure function of its
// inputs; "today" is the only time-dependent value and is always taken from
// an injected Clock so callers (and tests) control it.
package calendar

import "time"

// Clock abstracts the current time for "today" checks.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// SameDay reports whether two timestamps fall on the same calendar date,
// ignoring their time-of-day components.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsToday reports whether the given date is the current calendar date. It is
// recomputed on every call, never cached.
func IsToday(date time.Time, clock Clock) bool {
	if clock == nil {
		clock = RealClock{}
	}
	return SameDay(date, clock.Now())
}

// midnight truncates a timestamp to the start of its calendar day.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
