// Package scheduler implements the availability logic of the meeting
// scheduler: the interval conflict primitive, the free/busy calculator and
// the common slot finder. Everything in this package is a pure function over
// time values; persistence access stays in the application layer.
package scheduler

import "time"

// Interval is a half-open time range [Start, End). Intervals that merely
// touch (one ends exactly when the other starts) do not conflict.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// conflict. Callers must supply s1 < e1 and s2 < e2.
//
// Every overlap decision in the system routes through this function so that
// availability checks, room allocation and slot search agree on boundary
// semantics.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// Overlaps reports whether the interval conflicts with other.
func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i.Start, i.End, other.Start, other.End)
}

// Duration returns the length of the interval.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}
