package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/meeting-scheduler/internal/persistence"
)

// RoomRepository implements persistence.RoomRepository using SQLite.
type RoomRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewRoomRepository creates a SQLite room repository on the shared pool.
func NewRoomRepository(pool *ConnectionPool) *RoomRepository {
	return &RoomRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateRoom inserts a new room and returns it with its assigned id.
func (r *RoomRepository) CreateRoom(ctx context.Context, name string, capacity int, isVirtual bool) (persistence.Room, error) {
	if name == "" {
		return persistence.Room{}, errConstraint(errors.New("room name must be set"))
	}

	result, err := r.helper.Exec(ctx,
		`INSERT INTO rooms (name, capacity, is_virtual) VALUES (?, ?, ?)`,
		name, capacity, isVirtual)
	if err != nil {
		return persistence.Room{}, r.mapper.MapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return persistence.Room{}, fmt.Errorf("failed to read inserted room id: %w", err)
	}

	return persistence.Room{ID: id, Name: name, Capacity: capacity, IsVirtual: isVirtual}, nil
}

// GetRoom retrieves a room by id.
func (r *RoomRepository) GetRoom(ctx context.Context, id int64) (persistence.Room, error) {
	var room persistence.Room
	err := r.helper.QueryRow(ctx,
		`SELECT id, name, capacity, is_virtual FROM rooms WHERE id = ?`, id).
		Scan(&room.ID, &room.Name, &room.Capacity, &room.IsVirtual)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Room{}, persistence.ErrNotFound
		}
		return persistence.Room{}, r.mapper.MapError(err)
	}
	return room, nil
}

// ListRooms returns all rooms ordered by id. The seeded virtual room comes
// first.
func (r *RoomRepository) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	rows, err := r.helper.Query(ctx,
		`SELECT id, name, capacity, is_virtual FROM rooms ORDER BY id ASC`)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var rooms []persistence.Room
	for rows.Next() {
		var room persistence.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Capacity, &room.IsVirtual); err != nil {
			return nil, r.mapper.MapError(err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return rooms, nil
}
