package scheduler

import (
	"sort"
	"time"
)

// BusyInterval is an occupied slice of a subject's day together with the
// title of the event occupying it.
type BusyInterval struct {
	Interval
	Title string
}

// FreeBusy partitions a working window into the busy intervals occupied by
// events and the complementary free intervals. Both lists are ordered by
// start; either may be empty.
type FreeBusy struct {
	Busy []BusyInterval
	Free []Interval
}

// ComputeFreeBusy derives the free/busy partition of window from the given
// busy intervals. The input order is preserved for equal start times (stable
// sort), so callers that fetch events in insertion order keep that tiebreak.
//
// Free time is computed with a single cursor walk: overlapping or
// back-to-back busy intervals are merged naturally because the cursor only
// ever advances.
func ComputeFreeBusy(window Interval, busy []BusyInterval) FreeBusy {
	sorted := make([]BusyInterval, len(busy))
	copy(sorted, busy)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	free := make([]Interval, 0, len(sorted)+1)
	cursor := window.Start
	for _, b := range sorted {
		if cursor.Before(b.Start) {
			end := b.Start
			if end.After(window.End) {
				end = window.End
			}
			if cursor.Before(end) {
				free = append(free, Interval{Start: cursor, End: end})
			}
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if cursor.Before(window.End) {
		free = append(free, Interval{Start: cursor, End: window.End})
	}

	return FreeBusy{Busy: sorted, Free: free}
}

// WorkingWindow returns the [startHour, endHour) window of the calendar day
// containing day, in day's location.
func WorkingWindow(day time.Time, startHour, endHour int) Interval {
	year, month, dom := day.Date()
	loc := day.Location()
	return Interval{
		Start: time.Date(year, month, dom, startHour, 0, 0, 0, loc),
		End:   time.Date(year, month, dom, endHour, 0, 0, 0, loc),
	}
}
