package scheduler

import (
	"testing"
	"time"
)

func busy(t *testing.T, title string, startHour, endHour int) BusyInterval {
	t.Helper()
	return BusyInterval{
		Interval: Interval{Start: at(t, startHour, 0), End: at(t, endHour, 0)},
		Title:    title,
	}
}

func TestComputeFreeBusy_EmptyDay(t *testing.T) {
	t.Parallel()

	window := Interval{Start: at(t, 9, 0), End: at(t, 17, 0)}
	result := ComputeFreeBusy(window, nil)

	if len(result.Busy) != 0 {
		t.Fatalf("expected no busy intervals, got %v", result.Busy)
	}
	if len(result.Free) != 1 || result.Free[0] != window {
		t.Fatalf("expected the whole window free, got %v", result.Free)
	}
}

func TestComputeFreeBusy_SplitsAroundEvents(t *testing.T) {
	t.Parallel()

	window := Interval{Start: at(t, 9, 0), End: at(t, 17, 0)}
	result := ComputeFreeBusy(window, []BusyInterval{
		busy(t, "standup", 10, 11),
		busy(t, "review", 14, 15),
	})

	want := []Interval{
		{Start: at(t, 9, 0), End: at(t, 10, 0)},
		{Start: at(t, 11, 0), End: at(t, 14, 0)},
		{Start: at(t, 15, 0), End: at(t, 17, 0)},
	}
	if len(result.Free) != len(want) {
		t.Fatalf("expected %d free intervals, got %v", len(want), result.Free)
	}
	for i, interval := range want {
		if result.Free[i] != interval {
			t.Fatalf("free[%d] = %v, want %v", i, result.Free[i], interval)
		}
	}
}

func TestComputeFreeBusy_MergesOverlappingAndAdjacent(t *testing.T) {
	t.Parallel()

	window := Interval{Start: at(t, 9, 0), End: at(t, 17, 0)}
	result := ComputeFreeBusy(window, []BusyInterval{
		busy(t, "a", 10, 12),
		busy(t, "b", 11, 13),
		busy(t, "c", 13, 14),
	})

	want := []Interval{
		{Start: at(t, 9, 0), End: at(t, 10, 0)},
		{Start: at(t, 14, 0), End: at(t, 17, 0)},
	}
	if len(result.Free) != len(want) {
		t.Fatalf("expected %d free intervals, got %v", len(want), result.Free)
	}
	for i, interval := range want {
		if result.Free[i] != interval {
			t.Fatalf("free[%d] = %v, want %v", i, result.Free[i], interval)
		}
	}
}

// The busy and free lists together must cover the window exactly, with no
// gaps and no overlaps, for any input.
func TestComputeFreeBusy_PartitionCoversWindow(t *testing.T) {
	t.Parallel()

	window := Interval{Start: at(t, 9, 0), End: at(t, 17, 0)}
	inputs := [][]BusyInterval{
		nil,
		{busy(t, "one", 9, 17)},
		{busy(t, "early", 8, 10)},
		{busy(t, "late", 16, 18)},
		{busy(t, "a", 9, 10), busy(t, "b", 10, 11), busy(t, "c", 12, 13)},
		{busy(t, "x", 11, 15), busy(t, "y", 12, 13)},
	}

	for _, input := range inputs {
		result := ComputeFreeBusy(window, input)

		covered := time.Duration(0)
		for _, free := range result.Free {
			covered += free.Duration()
			for _, b := range result.Busy {
				if free.Overlaps(b.Interval) {
					t.Fatalf("free interval %v overlaps busy %v", free, b.Interval)
				}
			}
		}

		merged := ComputeFreeBusy(window, input)
		busyCovered := time.Duration(0)
		cursor := window.Start
		for _, b := range merged.Busy {
			start := b.Start
			if start.Before(cursor) {
				start = cursor
			}
			end := b.End
			if end.After(window.End) {
				end = window.End
			}
			if start.Before(window.Start) {
				start = window.Start
			}
			if end.After(start) {
				busyCovered += end.Sub(start)
				cursor = end
			}
		}

		if covered+busyCovered != window.Duration() {
			t.Fatalf("busy %v + free %v do not cover window %v (input %v)", busyCovered, covered, window.Duration(), input)
		}
	}
}

func TestWorkingWindow(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 3, 14, 13, 45, 0, 0, time.UTC)
	window := WorkingWindow(day, 9, 17)

	if !window.Start.Equal(at(t, 9, 0)) || !window.End.Equal(at(t, 17, 0)) {
		t.Fatalf("unexpected window %v", window)
	}
}
