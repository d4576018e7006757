package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/meeting-scheduler/internal/persistence"
)

// CreateEventParams carries the input for scheduling a new event.
type CreateEventParams struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	OrganizerID int64
	AttendeeIDs []int64
	RoomID      *int64
}

// UpdateEventParams carries a partial event modification. Nil fields are
// left unchanged.
type UpdateEventParams struct {
	Title          *string
	Description    *string
	Start          *time.Time
	End            *time.Time
	ParticipantOp  persistence.ParticipantOp
	ParticipantIDs []int64
}

// EventService orchestrates validation, room allocation and persistence for
// events.
type EventService struct {
	events       persistence.EventRepository
	users        persistence.UserRepository
	availability *AvailabilityService
	logger       *slog.Logger
}

// NewEventService wires dependencies for the event service.
func NewEventService(events persistence.EventRepository, users persistence.UserRepository, availability *AvailabilityService, logger *slog.Logger) *EventService {
	return &EventService{
		events:       events,
		users:        users,
		availability: availability,
		logger:       defaultLogger(logger),
	}
}

// CreateEvent validates the input, guards the room against double-booking
// and persists the event with its participant rows in one transaction. The
// returned event has participants and room name resolved.
func (s *EventService) CreateEvent(ctx context.Context, params CreateEventParams) (persistence.Event, error) {
	if s == nil || s.events == nil {
		return persistence.Event{}, fmt.Errorf("event repository not configured")
	}

	params.Title = strings.TrimSpace(params.Title)

	vErr := &ValidationError{}
	if params.Title == "" {
		vErr.add("title", "title is required")
	}
	vErr.merge(intervalErrors(params.Start, params.End))
	if vErr.HasErrors() {
		return persistence.Event{}, vErr
	}

	if _, err := s.users.GetUser(ctx, params.OrganizerID); err != nil {
		return persistence.Event{}, mapNotFound(err)
	}

	logger := serviceLogger(ctx, s.logger, "event", "create", "organizer_id", params.OrganizerID)

	if params.RoomID != nil {
		free, err := s.availability.RoomIsAvailable(ctx, *params.RoomID, params.Start, params.End, 0)
		if err != nil {
			return persistence.Event{}, err
		}
		if !free {
			logger.InfoContext(ctx, "room booking rejected",
				"room_id", *params.RoomID, "start", params.Start, "end", params.End)
			return persistence.Event{}, ErrRoomUnavailable
		}
	}

	id, err := s.events.CreateEvent(ctx, persistence.Event{
		Title:       params.Title,
		Description: params.Description,
		Start:       params.Start,
		End:         params.End,
		RoomID:      params.RoomID,
	}, params.OrganizerID, params.AttendeeIDs)
	if err != nil {
		logger.ErrorContext(ctx, "event creation failed", "error", err, "error_kind", ErrorKind(err))
		return persistence.Event{}, err
	}

	logger.InfoContext(ctx, "event created", "event_id", id)
	return s.events.GetEvent(ctx, id)
}

// GetEvent returns the event with participants and room name resolved.
func (s *EventService) GetEvent(ctx context.Context, id int64) (persistence.Event, error) {
	event, err := s.events.GetEvent(ctx, id)
	if err != nil {
		return persistence.Event{}, mapNotFound(err)
	}
	return event, nil
}

// ListUserEvents returns the user's events, optionally bounded to those
// starting within [from, until]. The bounds are inclusive.
func (s *EventService) ListUserEvents(ctx context.Context, userID int64, from, until *time.Time) ([]persistence.Event, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, mapNotFound(err)
	}

	return s.events.ListUserEvents(ctx, userID, persistence.EventFilter{
		StartFrom:  from,
		StartUntil: until,
	})
}

// UpdateEvent applies a partial modification to the event. Moving a roomed
// event re-runs the double-booking guard against the new times, ignoring
// the event's own booking.
func (s *EventService) UpdateEvent(ctx context.Context, id int64, params UpdateEventParams) (persistence.Event, error) {
	current, err := s.events.GetEvent(ctx, id)
	if err != nil {
		return persistence.Event{}, mapNotFound(err)
	}

	start, end := current.Start, current.End
	if params.Start != nil {
		start = *params.Start
	}
	if params.End != nil {
		end = *params.End
	}

	vErr := &ValidationError{}
	if params.Title != nil && strings.TrimSpace(*params.Title) == "" {
		vErr.add("title", "title is required")
	}
	switch params.ParticipantOp {
	case persistence.ParticipantOpNone, persistence.ParticipantOpSet, persistence.ParticipantOpAdd:
	default:
		vErr.add("participant_mode", `participant mode must be "set" or "add"`)
	}
	vErr.merge(intervalErrors(start, end))
	if vErr.HasErrors() {
		return persistence.Event{}, vErr
	}

	logger := serviceLogger(ctx, s.logger, "event", "update", "event_id", id)

	timesChanged := params.Start != nil || params.End != nil
	if timesChanged && current.RoomID != nil {
		free, err := s.availability.RoomIsAvailable(ctx, *current.RoomID, start, end, id)
		if err != nil {
			return persistence.Event{}, err
		}
		if !free {
			logger.InfoContext(ctx, "reschedule rejected",
				"room_id", *current.RoomID, "start", start, "end", end)
			return persistence.Event{}, ErrRoomUnavailable
		}
	}

	updated, err := s.events.UpdateEvent(ctx, id, persistence.EventUpdate{
		Title:          params.Title,
		Description:    params.Description,
		Start:          params.Start,
		End:            params.End,
		ParticipantOp:  params.ParticipantOp,
		ParticipantIDs: params.ParticipantIDs,
	})
	if err != nil {
		logger.ErrorContext(ctx, "event update failed", "error", err, "error_kind", ErrorKind(err))
		return persistence.Event{}, mapNotFound(err)
	}

	logger.InfoContext(ctx, "event updated")
	return updated, nil
}

// CancelEvent deletes the event and its participation rows. It reports
// whether an event was actually removed; cancelling twice is not an error.
func (s *EventService) CancelEvent(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.events.DeleteEvent(ctx, id)
	if err != nil {
		return false, err
	}

	if deleted {
		serviceLogger(ctx, s.logger, "event", "cancel").
			InfoContext(ctx, "event cancelled", "event_id", id)
	}
	return deleted, nil
}
