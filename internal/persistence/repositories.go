package persistence

import (
	"context"
	"time"
)

// UserRepository exposes persistence operations for users.
type UserRepository interface {
	// CreateUser registers a user. When the email is already registered the
	// existing user is returned unchanged instead of an error; provisioning
	// the same address twice is deliberately idempotent.
	CreateUser(ctx context.Context, name, email string) (User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	// SearchUsersByName returns users whose name contains the given
	// substring, case-insensitively.
	SearchUsersByName(ctx context.Context, name string) ([]User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

// RoomRepository exposes persistence operations for meeting rooms. Room
// names carry no uniqueness constraint.
type RoomRepository interface {
	CreateRoom(ctx context.Context, name string, capacity int, isVirtual bool) (Room, error)
	GetRoom(ctx context.Context, id int64) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
}

// EventFilter narrows event queries. All bounds are inclusive and apply to
// the stored timestamps; nil means unbounded.
type EventFilter struct {
	// StartFrom keeps events whose start is at or after this instant.
	StartFrom *time.Time
	// StartUntil keeps events whose start is at or before this instant.
	StartUntil *time.Time
	// EndUntil keeps events whose end is at or before this instant.
	EndUntil *time.Time
}

// ParticipantOp selects how an event update treats the participant set.
type ParticipantOp string

const (
	// ParticipantOpNone leaves the participant set untouched.
	ParticipantOpNone ParticipantOp = ""
	// ParticipantOpSet replaces all non-organizer participants with the
	// supplied list. The organizer is preserved even when absent from it.
	ParticipantOpSet ParticipantOp = "set"
	// ParticipantOpAdd inserts new participants, ignoring duplicates.
	ParticipantOpAdd ParticipantOp = "add"
)

// EventUpdate captures a partial event modification. Nil fields are left
// unchanged.
type EventUpdate struct {
	Title          *string
	Description    *string
	Start          *time.Time
	End            *time.Time
	ParticipantOp  ParticipantOp
	ParticipantIDs []int64
}

// EventRepository stores events and their participation rows. Every compound
// write executes as a single transaction; a failure mid-sequence rolls back
// all rows written by the call.
type EventRepository interface {
	// CreateEvent atomically inserts the event, one organizer participation
	// row and one row per attendee id distinct from the organizer. It
	// returns the assigned event id.
	CreateEvent(ctx context.Context, event Event, organizerID int64, attendeeIDs []int64) (int64, error)
	// GetEvent returns the event with resolved participants and room name.
	GetEvent(ctx context.Context, id int64) (Event, error)
	// ListUserEvents returns the user's events matching the filter, ordered
	// by start then id. Unknown users yield an empty list, not an error.
	ListUserEvents(ctx context.Context, userID int64, filter EventFilter) ([]Event, error)
	// ListRoomEvents returns events booked into the room, matching the
	// filter, ordered by start then id.
	ListRoomEvents(ctx context.Context, roomID int64, filter EventFilter) ([]Event, error)
	// ListBookedEvents returns every event holding a room reference.
	ListBookedEvents(ctx context.Context) ([]Event, error)
	// UpdateEvent atomically applies the partial update and the requested
	// participant operation, then returns the refreshed event.
	UpdateEvent(ctx context.Context, id int64, update EventUpdate) (Event, error)
	// DeleteEvent removes the event; participation rows cascade. It reports
	// whether a row was actually removed; deleting an unknown id is not an
	// error.
	DeleteEvent(ctx context.Context, id int64) (bool, error)
}
