package application

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newEventService(store *memStore) *EventService {
	return NewEventService(store, store, newAvailability(store), nil)
}

func TestCreateEvent_Validation(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com")
	service := newEventService(store)

	_, err := service.CreateEvent(context.Background(), CreateEventParams{
		Title:       "  ",
		Start:       hour(11),
		End:         hour(10),
		OrganizerID: alice.ID,
	})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if _, ok := vErr.FieldErrors["title"]; !ok {
		t.Fatalf("expected a title error, got %v", vErr.FieldErrors)
	}
	if _, ok := vErr.FieldErrors["interval"]; !ok {
		t.Fatalf("expected an interval error, got %v", vErr.FieldErrors)
	}
}

func TestCreateEvent_UnknownOrganizer(t *testing.T) {
	t.Parallel()

	service := newEventService(newMemStore())

	_, err := service.CreateEvent(context.Background(), CreateEventParams{
		Title:       "Sync",
		Start:       hour(10),
		End:         hour(11),
		OrganizerID: 4242,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateEvent_RejectsDoubleBookedRoom(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com")
	bob := store.addUser("Bob", "bob@example.com")
	room := store.addRoom("Conference A", 10, false)
	store.addEvent("existing", hour(10), hour(11), &room.ID, alice.ID)
	service := newEventService(store)

	_, err := service.CreateEvent(context.Background(), CreateEventParams{
		Title:       "Clashing",
		Start:       hour(10).Add(30 * time.Minute),
		End:         hour(12),
		OrganizerID: bob.ID,
		RoomID:      &room.ID,
	})
	if !errors.Is(err, ErrRoomUnavailable) {
		t.Fatalf("expected ErrRoomUnavailable, got %v", err)
	}
}

func TestCreateEvent_AllowsBackToBackRoomBookings(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com")
	room := store.addRoom("Conference A", 10, false)
	store.addEvent("first", hour(10), hour(11), &room.ID, alice.ID)
	service := newEventService(store)

	event, err := service.CreateEvent(context.Background(), CreateEventParams{
		Title:       "Second",
		Start:       hour(11),
		End:         hour(12),
		OrganizerID: alice.ID,
		RoomID:      &room.ID,
	})
	if err != nil {
		t.Fatalf("back-to-back booking must succeed: %v", err)
	}
	if event.Title != "Second" {
		t.Fatalf("unexpected event %+v", event)
	}
}

func TestCreateEvent_VirtualRoomNeverConflicts(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com")
	virtual := store.addRoom("Online Meeting", 999, true)
	store.addEvent("existing", hour(10), hour(11), &virtual.ID, alice.ID)
	service := newEventService(store)

	if _, err := service.CreateEvent(context.Background(), CreateEventParams{
		Title:       "Parallel call",
		Start:       hour(10),
		End:         hour(11),
		OrganizerID: alice.ID,
		RoomID:      &virtual.ID,
	}); err != nil {
		t.Fatalf("virtual room must accept overlapping events: %v", err)
	}
}

func TestUpdateEvent_RescheduleGuardIgnoresOwnBooking(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com")
	room := store.addRoom("Conference A", 10, false)
	event := store.addEvent("planning", hour(10), hour(11), &room.ID, alice.ID)
	store.addEvent("other", hour(14), hour(15), &room.ID, alice.ID)
	service := newEventService(store)

	// Extending within its own slot is fine.
	newEnd := hour(12)
	if _, err := service.UpdateEvent(context.Background(), event.ID, UpdateEventParams{End: &newEnd}); err != nil {
		t.Fatalf("extending into free time must succeed: %v", err)
	}

	// Moving onto another booking is not.
	badStart, badEnd := hour(14), hour(16)
	_, err := service.UpdateEvent(context.Background(), event.ID, UpdateEventParams{Start: &badStart, End: &badEnd})
	if !errors.Is(err, ErrRoomUnavailable) {
		t.Fatalf("expected ErrRoomUnavailable, got %v", err)
	}
}

func TestUpdateEvent_RejectsInvertedInterval(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com")
	event := store.addEvent("planning", hour(10), hour(11), nil, alice.ID)
	service := newEventService(store)

	// Moving only the start past the stored end must fail validation.
	badStart := hour(12)
	_, err := service.UpdateEvent(context.Background(), event.ID, UpdateEventParams{Start: &badStart})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestUpdateEvent_RejectsUnknownParticipantMode(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com")
	event := store.addEvent("planning", hour(10), hour(11), nil, alice.ID)
	service := newEventService(store)

	_, err := service.UpdateEvent(context.Background(), event.ID, UpdateEventParams{
		ParticipantOp:  "replace",
		ParticipantIDs: []int64{alice.ID},
	})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if _, ok := vErr.FieldErrors["participant_mode"]; !ok {
		t.Fatalf("expected a participant_mode error, got %v", vErr.FieldErrors)
	}
}

func TestCancelEvent_SecondCancelIsNoop(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com")
	event := store.addEvent("planning", hour(10), hour(11), nil, alice.ID)
	service := newEventService(store)

	deleted, err := service.CancelEvent(context.Background(), event.ID)
	if err != nil || !deleted {
		t.Fatalf("expected the first cancel to delete, got deleted=%v err=%v", deleted, err)
	}

	deleted, err = service.CancelEvent(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("second cancel must not error: %v", err)
	}
	if deleted {
		t.Fatal("second cancel must report nothing deleted")
	}
}
