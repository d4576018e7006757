package scheduler

import "time"

// ParticipantBusy is the fetched event set of a single participant inside a
// slot search window.
type ParticipantBusy struct {
	UserID int64
	Events []Interval
}

// FindCommonSlots enumerates candidate meeting slots on a fixed one-hour
// grid and keeps those that conflict with no participant's events.
//
// For each calendar day in [window.Start, window.End] (inclusive on both
// sides) and each integer hour in [startHour, endHour), the candidate slot is
// [day@hour:00, day@hour:00 + duration). Candidates whose end would exceed
// the window end are skipped rather than wrapped into the next day. Accepted
// slots are returned in day-major, hour-minor order, so results are sorted
// earliest first and each (day, hour) pair occurs at most once.
//
// The grid step is one hour regardless of duration; a fifteen-minute meeting
// is only ever offered starting on the hour.
func FindCommonSlots(participants []ParticipantBusy, duration time.Duration, window Interval, startHour, endHour int) []Interval {
	var slots []Interval

	year, month, dom := window.Start.Date()
	loc := window.Start.Location()
	day := time.Date(year, month, dom, 0, 0, 0, 0, loc)
	lastYear, lastMonth, lastDom := window.End.Date()
	lastDay := time.Date(lastYear, lastMonth, lastDom, 0, 0, 0, 0, loc)

	for !day.After(lastDay) {
		for hour := startHour; hour < endHour; hour++ {
			slot := Interval{Start: day.Add(time.Duration(hour) * time.Hour)}
			slot.End = slot.Start.Add(duration)
			if slot.End.After(window.End) {
				continue
			}
			if slotIsFree(slot, participants) {
				slots = append(slots, slot)
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	return slots
}

func slotIsFree(slot Interval, participants []ParticipantBusy) bool {
	for _, participant := range participants {
		for _, event := range participant.Events {
			if slot.Overlaps(event) {
				return false
			}
		}
	}
	return true
}
