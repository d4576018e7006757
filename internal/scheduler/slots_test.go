package scheduler

import (
	"testing"
	"time"
)

func TestFindCommonSlots_ExcludesConflictingHour(t *testing.T) {
	t.Parallel()

	window := Interval{Start: at(t, 0, 0), End: at(t, 23, 59)}
	participants := []ParticipantBusy{
		{UserID: 1, Events: []Interval{{Start: at(t, 10, 0), End: at(t, 11, 0)}}},
	}

	slots := FindCommonSlots(participants, time.Hour, window, 9, 17)

	starts := make(map[int]bool, len(slots))
	for _, slot := range slots {
		starts[slot.Start.Hour()] = true
	}

	if starts[10] {
		t.Fatalf("10:00 slot must be excluded, got %v", slots)
	}
	if !starts[9] || !starts[11] {
		t.Fatalf("9:00 and 11:00 slots must be offered, got %v", slots)
	}
}

func TestFindCommonSlots_SkipsSlotsPastWindowEnd(t *testing.T) {
	t.Parallel()

	// The window ends at 16:30, so the 16:00 one-hour candidate must be
	// skipped rather than truncated or wrapped.
	window := Interval{Start: at(t, 0, 0), End: at(t, 16, 30)}
	slots := FindCommonSlots(nil, time.Hour, window, 9, 17)

	for _, slot := range slots {
		if slot.End.After(window.End) {
			t.Fatalf("slot %v ends past the window end %v", slot, window.End)
		}
	}
	last := slots[len(slots)-1]
	if last.Start.Hour() != 15 {
		t.Fatalf("expected the last slot to start at 15:00, got %v", last)
	}
}

func TestFindCommonSlots_OrderedAndUnique(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 16, 23, 0, 0, 0, time.UTC)
	slots := FindCommonSlots(nil, 30*time.Minute, Interval{Start: start, End: end}, 9, 12)

	// Three days, three hours each.
	if len(slots) != 9 {
		t.Fatalf("expected 9 slots, got %d", len(slots))
	}

	seen := make(map[time.Time]bool, len(slots))
	for i, slot := range slots {
		if seen[slot.Start] {
			t.Fatalf("duplicate slot start %v", slot.Start)
		}
		seen[slot.Start] = true
		if i > 0 && !slots[i-1].Start.Before(slot.Start) {
			t.Fatalf("slots out of order: %v before %v", slots[i-1], slot)
		}
	}
}

func TestFindCommonSlots_RequiresAllParticipantsFree(t *testing.T) {
	t.Parallel()

	window := Interval{Start: at(t, 0, 0), End: at(t, 23, 0)}
	participants := []ParticipantBusy{
		{UserID: 1, Events: []Interval{{Start: at(t, 9, 0), End: at(t, 12, 0)}}},
		{UserID: 2, Events: []Interval{{Start: at(t, 13, 0), End: at(t, 16, 0)}}},
	}

	slots := FindCommonSlots(participants, time.Hour, window, 9, 17)

	want := []int{12, 16}
	if len(slots) != len(want) {
		t.Fatalf("expected slots at %v, got %v", want, slots)
	}
	for i, hour := range want {
		if slots[i].Start.Hour() != hour {
			t.Fatalf("slot %d starts at %d, want %d", i, slots[i].Start.Hour(), hour)
		}
	}
}

func TestFindCommonSlots_TouchingEventDoesNotBlock(t *testing.T) {
	t.Parallel()

	window := Interval{Start: at(t, 0, 0), End: at(t, 23, 0)}
	participants := []ParticipantBusy{
		{UserID: 1, Events: []Interval{{Start: at(t, 10, 0), End: at(t, 11, 0)}}},
	}

	slots := FindCommonSlots(participants, time.Hour, window, 11, 12)

	if len(slots) != 1 || slots[0].Start.Hour() != 11 {
		t.Fatalf("an event ending at 11:00 must not block the 11:00 slot, got %v", slots)
	}
}
