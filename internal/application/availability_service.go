package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/example/meeting-scheduler/internal/persistence"
	"github.com/example/meeting-scheduler/internal/scheduler"
)

// AvailabilityService answers free/busy questions: whether a user or room is
// free, what a day looks like, which slots suit every attendee and which
// rooms are open. All overlap decisions funnel through scheduler.Overlaps.
type AvailabilityService struct {
	events persistence.EventRepository
	users  persistence.UserRepository
	rooms  persistence.RoomRepository

	workDayStart int
	workDayEnd   int

	logger *slog.Logger
}

// NewAvailabilityService wires dependencies for the availability service.
// workDayStart and workDayEnd bound the working day in whole hours.
func NewAvailabilityService(events persistence.EventRepository, users persistence.UserRepository, rooms persistence.RoomRepository, workDayStart, workDayEnd int, logger *slog.Logger) *AvailabilityService {
	return &AvailabilityService{
		events:       events,
		users:        users,
		rooms:        rooms,
		workDayStart: workDayStart,
		workDayEnd:   workDayEnd,
		logger:       defaultLogger(logger),
	}
}

// DaySchedule is one calendar day of a user or room, split into busy events
// and the free gaps of the working window.
type DaySchedule struct {
	Day    time.Time
	Window scheduler.Interval
	Busy   []scheduler.BusyInterval
	Free   []scheduler.Interval
	Events []persistence.Event
}

// CheckUserAvailability reports whether the user is free for the whole of
// [start, end) and returns the conflicting events when they are not.
func (s *AvailabilityService) CheckUserAvailability(ctx context.Context, userID int64, start, end time.Time) (bool, []persistence.Event, error) {
	if err := validateInterval(start, end); err != nil {
		return false, nil, err
	}
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return false, nil, mapNotFound(err)
	}

	events, err := s.events.ListUserEvents(ctx, userID, persistence.EventFilter{StartUntil: &end})
	if err != nil {
		return false, nil, err
	}

	var conflicts []persistence.Event
	for _, event := range events {
		if scheduler.Overlaps(start, end, event.Start, event.End) {
			conflicts = append(conflicts, event)
		}
	}

	return len(conflicts) == 0, conflicts, nil
}

// UserDaySchedule returns the user's busy events and free gaps for one
// calendar day. Only events starting within that day are considered.
func (s *AvailabilityService) UserDaySchedule(ctx context.Context, userID int64, day time.Time) (DaySchedule, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return DaySchedule{}, mapNotFound(err)
	}

	from, until := dayBounds(day)
	events, err := s.events.ListUserEvents(ctx, userID, persistence.EventFilter{
		StartFrom:  &from,
		StartUntil: &until,
	})
	if err != nil {
		return DaySchedule{}, err
	}

	return s.daySchedule(day, events), nil
}

// RoomDaySchedule returns the room's bookings and free gaps for one
// calendar day.
func (s *AvailabilityService) RoomDaySchedule(ctx context.Context, roomID int64, day time.Time) (DaySchedule, error) {
	if _, err := s.rooms.GetRoom(ctx, roomID); err != nil {
		return DaySchedule{}, mapNotFound(err)
	}

	from, until := dayBounds(day)
	events, err := s.events.ListRoomEvents(ctx, roomID, persistence.EventFilter{
		StartFrom:  &from,
		StartUntil: &until,
	})
	if err != nil {
		return DaySchedule{}, err
	}

	return s.daySchedule(day, events), nil
}

// FindCommonSlots returns every candidate slot within the window where all
// the given users are simultaneously free, in chronological order.
func (s *AvailabilityService) FindCommonSlots(ctx context.Context, userIDs []int64, duration time.Duration, windowStart, windowEnd time.Time) ([]scheduler.Interval, error) {
	vErr := &ValidationError{}
	if len(userIDs) == 0 {
		vErr.add("participants", "at least one participant is required")
	}
	if duration <= 0 {
		vErr.add("duration", "duration must be positive")
	}
	if !windowStart.Before(windowEnd) {
		vErr.add("window", "window start must precede window end")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	participants := make([]scheduler.ParticipantBusy, 0, len(userIDs))
	for _, userID := range userIDs {
		if _, err := s.users.GetUser(ctx, userID); err != nil {
			return nil, mapNotFound(err)
		}

		// Only events fully contained in the window can collide with a
		// candidate slot, since slots never extend past the window end.
		events, err := s.events.ListUserEvents(ctx, userID, persistence.EventFilter{
			StartFrom: &windowStart,
			EndUntil:  &windowEnd,
		})
		if err != nil {
			return nil, err
		}

		busy := make([]scheduler.Interval, 0, len(events))
		for _, event := range events {
			busy = append(busy, scheduler.Interval{Start: event.Start, End: event.End})
		}
		participants = append(participants, scheduler.ParticipantBusy{UserID: userID, Events: busy})
	}

	window := scheduler.Interval{Start: windowStart, End: windowEnd}
	slots := scheduler.FindCommonSlots(participants, duration, window, s.workDayStart, s.workDayEnd)

	serviceLogger(ctx, s.logger, "availability", "find_common_slots").
		InfoContext(ctx, "slot search completed",
			"participants", len(userIDs), "slots", len(slots))

	return slots, nil
}

// AvailableRooms returns the rooms that can seat the requested number of
// attendees and are free for the whole of [start, end). Virtual rooms are
// always free.
func (s *AvailabilityService) AvailableRooms(ctx context.Context, start, end time.Time, minCapacity int) ([]persistence.Room, error) {
	if err := validateInterval(start, end); err != nil {
		return nil, err
	}

	rooms, err := s.rooms.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	booked, err := s.events.ListBookedEvents(ctx)
	if err != nil {
		return nil, err
	}

	var available []persistence.Room
	for _, room := range rooms {
		if room.Capacity < minCapacity {
			continue
		}
		if room.IsVirtual || roomIsFree(room.ID, booked, start, end, 0) {
			available = append(available, room)
		}
	}

	return available, nil
}

// RoomIsAvailable reports whether the room is free for [start, end),
// ignoring the event with excludeEventID (zero to exclude nothing). Virtual
// rooms are always available.
func (s *AvailabilityService) RoomIsAvailable(ctx context.Context, roomID int64, start, end time.Time, excludeEventID int64) (bool, error) {
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return false, mapNotFound(err)
	}
	if room.IsVirtual {
		return true, nil
	}

	events, err := s.events.ListRoomEvents(ctx, roomID, persistence.EventFilter{StartUntil: &end})
	if err != nil {
		return false, err
	}

	return roomIsFree(roomID, events, start, end, excludeEventID), nil
}

func (s *AvailabilityService) daySchedule(day time.Time, events []persistence.Event) DaySchedule {
	busy := make([]scheduler.BusyInterval, 0, len(events))
	for _, event := range events {
		busy = append(busy, scheduler.BusyInterval{
			Interval: scheduler.Interval{Start: event.Start, End: event.End},
			Title:    event.Title,
		})
	}

	window := scheduler.WorkingWindow(day, s.workDayStart, s.workDayEnd)
	result := scheduler.ComputeFreeBusy(window, busy)

	return DaySchedule{
		Day:    day,
		Window: window,
		Busy:   result.Busy,
		Free:   result.Free,
		Events: events,
	}
}

func roomIsFree(roomID int64, events []persistence.Event, start, end time.Time, excludeEventID int64) bool {
	for _, event := range events {
		if event.RoomID == nil || *event.RoomID != roomID {
			continue
		}
		if excludeEventID != 0 && event.ID == excludeEventID {
			continue
		}
		if scheduler.Overlaps(start, end, event.Start, event.End) {
			return false
		}
	}
	return true
}

// intervalErrors reports the field errors for a half-open interval; the
// result is empty when the interval is well formed.
func intervalErrors(start, end time.Time) *ValidationError {
	vErr := &ValidationError{}
	if !start.Before(end) {
		vErr.add("interval", "start must precede end")
	}
	return vErr
}

func validateInterval(start, end time.Time) error {
	if vErr := intervalErrors(start, end); vErr.HasErrors() {
		return vErr
	}
	return nil
}

// dayBounds returns the inclusive start-of-day and end-of-day instants used
// to select the events whose start falls within the day.
func dayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.Add(24*time.Hour - time.Second)
}
