package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/meeting-scheduler/internal/persistence"
)

// RoomService orchestrates validation and persistence for meeting rooms.
type RoomService struct {
	rooms  persistence.RoomRepository
	logger *slog.Logger
}

// NewRoomService wires dependencies for the room service.
func NewRoomService(rooms persistence.RoomRepository, logger *slog.Logger) *RoomService {
	return &RoomService{rooms: rooms, logger: defaultLogger(logger)}
}

// CreateRoom validates input and persists a new room.
func (s *RoomService) CreateRoom(ctx context.Context, name string, capacity int, isVirtual bool) (persistence.Room, error) {
	if s == nil || s.rooms == nil {
		return persistence.Room{}, fmt.Errorf("room repository not configured")
	}

	name = strings.TrimSpace(name)

	vErr := &ValidationError{}
	if name == "" {
		vErr.add("name", "name is required")
	}
	if capacity <= 0 {
		vErr.add("capacity", "capacity must be positive")
	}
	if vErr.HasErrors() {
		return persistence.Room{}, vErr
	}

	logger := serviceLogger(ctx, s.logger, "room", "create")

	room, err := s.rooms.CreateRoom(ctx, name, capacity, isVirtual)
	if err != nil {
		logger.ErrorContext(ctx, "room creation failed", "error", err, "error_kind", ErrorKind(err))
		return persistence.Room{}, err
	}

	logger.InfoContext(ctx, "room created", "room_id", room.ID, "capacity", room.Capacity)
	return room, nil
}

// GetRoom returns the room with the given id.
func (s *RoomService) GetRoom(ctx context.Context, id int64) (persistence.Room, error) {
	room, err := s.rooms.GetRoom(ctx, id)
	if err != nil {
		return persistence.Room{}, mapNotFound(err)
	}
	return room, nil
}

// ListRooms returns all rooms, the seeded virtual room first.
func (s *RoomService) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	return s.rooms.ListRooms(ctx)
}
