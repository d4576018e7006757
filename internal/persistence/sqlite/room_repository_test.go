package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/example/meeting-scheduler/internal/persistence"
)

func TestCreateRoom_AndList(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()

	created, err := storage.Rooms.CreateRoom(ctx, "Conference A", 10, false)
	if err != nil {
		t.Fatalf("failed to create room: %v", err)
	}
	if created.ID == persistence.VirtualRoomID {
		t.Fatal("new room must not reuse the virtual room id")
	}

	rooms, err := storage.Rooms.ListRooms(ctx)
	if err != nil {
		t.Fatalf("failed to list rooms: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("expected virtual room plus one, got %d", len(rooms))
	}
	if rooms[0].ID != persistence.VirtualRoomID {
		t.Fatalf("seeded virtual room must list first, got %+v", rooms[0])
	}
	if rooms[1] != created {
		t.Fatalf("ListRooms[1] = %+v, want %+v", rooms[1], created)
	}
}

func TestCreateRoom_RejectsNonPositiveCapacity(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)

	if _, err := storage.Rooms.CreateRoom(context.Background(), "Closet", 0, false); !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
}

func TestGetRoom_NotFound(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)

	if _, err := storage.Rooms.GetRoom(context.Background(), 4242); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
