package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/meeting-scheduler/internal/persistence"
)

var referenceTime = time.Date(2024, time.May, 20, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures:
// the start of a working day.
func ReferenceTime() time.Time {
	return referenceTime
}

var (
	userCounter  uint64
	roomCounter  uint64
	eventCounter uint64
)

// ----------------------------- User fixtures -----------------------------

// UserOption configures the generated user fixture.
type UserOption func(*persistence.User)

// NewUserFixture returns a deterministic user with optional overrides. The
// ID is left zero; stores assign it on insert.
func NewUserFixture(opts ...UserOption) persistence.User {
	idx := atomic.AddUint64(&userCounter, 1)
	fixture := persistence.User{
		Name:  fmt.Sprintf("User %03d", idx),
		Email: fmt.Sprintf("user-%03d@example.com", idx),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithUserName overrides the generated display name.
func WithUserName(name string) UserOption {
	return func(u *persistence.User) {
		u.Name = name
	}
}

// WithUserEmail overrides the generated email address.
func WithUserEmail(email string) UserOption {
	return func(u *persistence.User) {
		u.Email = email
	}
}

// ----------------------------- Room fixtures -----------------------------

// RoomOption configures the generated room fixture.
type RoomOption func(*persistence.Room)

// NewRoomFixture returns a deterministic physical room with optional
// overrides.
func NewRoomFixture(opts ...RoomOption) persistence.Room {
	idx := atomic.AddUint64(&roomCounter, 1)
	fixture := persistence.Room{
		Name:     fmt.Sprintf("Room %03d", idx),
		Capacity: 8,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithRoomCapacity overrides the generated capacity.
func WithRoomCapacity(capacity int) RoomOption {
	return func(r *persistence.Room) {
		r.Capacity = capacity
	}
}

// WithVirtualRoom marks the fixture as virtual.
func WithVirtualRoom() RoomOption {
	return func(r *persistence.Room) {
		r.IsVirtual = true
	}
}

// ----------------------------- Event fixtures ----------------------------

// EventOption configures the generated event fixture.
type EventOption func(*persistence.Event)

// NewEventFixture returns a deterministic one-hour event with optional
// overrides. Successive fixtures occupy successive hours from the reference
// time, so they never overlap unless a test says so.
func NewEventFixture(opts ...EventOption) persistence.Event {
	idx := atomic.AddUint64(&eventCounter, 1)
	start := referenceTime.Add(time.Duration(idx) * time.Hour)
	fixture := persistence.Event{
		Title: fmt.Sprintf("Event %03d", idx),
		Start: start,
		End:   start.Add(time.Hour),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEventInterval overrides the generated time span.
func WithEventInterval(start, end time.Time) EventOption {
	return func(e *persistence.Event) {
		e.Start = start
		e.End = end
	}
}

// WithEventRoom books the event into the given room.
func WithEventRoom(roomID int64) EventOption {
	return func(e *persistence.Event) {
		e.RoomID = &roomID
	}
}
