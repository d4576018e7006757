package application

import (
	"context"
	"time"

	"github.com/example/meeting-scheduler/internal/persistence"
)

// memStore is an in-memory stand-in for the persistence repositories, just
// enough behavior for service tests.
type memStore struct {
	users  map[int64]persistence.User
	rooms  map[int64]persistence.Room
	events map[int64]persistence.Event
	nextID int64
}

func newMemStore() *memStore {
	return &memStore{
		users:  make(map[int64]persistence.User),
		rooms:  make(map[int64]persistence.Room),
		events: make(map[int64]persistence.Event),
		nextID: 100,
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) addUser(name, email string) persistence.User {
	user := persistence.User{ID: m.id(), Name: name, Email: email}
	m.users[user.ID] = user
	return user
}

func (m *memStore) addRoom(name string, capacity int, isVirtual bool) persistence.Room {
	room := persistence.Room{ID: m.id(), Name: name, Capacity: capacity, IsVirtual: isVirtual}
	m.rooms[room.ID] = room
	return room
}

func (m *memStore) addEvent(title string, start, end time.Time, roomID *int64, userIDs ...int64) persistence.Event {
	event := persistence.Event{ID: m.id(), Title: title, Start: start, End: end, RoomID: roomID}
	for i, userID := range userIDs {
		user := m.users[userID]
		event.Participants = append(event.Participants, persistence.Participant{
			UserID: userID, Name: user.Name, Email: user.Email, IsOrganizer: i == 0,
		})
	}
	m.events[event.ID] = event
	return event
}

// UserRepository

func (m *memStore) CreateUser(ctx context.Context, name, email string) (persistence.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return m.addUser(name, email), nil
}

func (m *memStore) GetUser(ctx context.Context, id int64) (persistence.User, error) {
	user, ok := m.users[id]
	if !ok {
		return persistence.User{}, persistence.ErrNotFound
	}
	return user, nil
}

func (m *memStore) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return persistence.User{}, persistence.ErrNotFound
}

func (m *memStore) SearchUsersByName(ctx context.Context, name string) ([]persistence.User, error) {
	var out []persistence.User
	for _, user := range m.users {
		out = append(out, user)
	}
	return out, nil
}

func (m *memStore) ListUsers(ctx context.Context) ([]persistence.User, error) {
	return m.SearchUsersByName(ctx, "")
}

// RoomRepository

func (m *memStore) CreateRoom(ctx context.Context, name string, capacity int, isVirtual bool) (persistence.Room, error) {
	return m.addRoom(name, capacity, isVirtual), nil
}

func (m *memStore) GetRoom(ctx context.Context, id int64) (persistence.Room, error) {
	room, ok := m.rooms[id]
	if !ok {
		return persistence.Room{}, persistence.ErrNotFound
	}
	return room, nil
}

func (m *memStore) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	var out []persistence.Room
	for _, room := range m.rooms {
		out = append(out, room)
	}
	return out, nil
}

// EventRepository

func (m *memStore) CreateEvent(ctx context.Context, event persistence.Event, organizerID int64, attendeeIDs []int64) (int64, error) {
	if _, ok := m.users[organizerID]; !ok {
		return 0, persistence.ErrForeignKeyViolation
	}
	for _, id := range attendeeIDs {
		if _, ok := m.users[id]; !ok {
			return 0, persistence.ErrForeignKeyViolation
		}
	}
	created := m.addEvent(event.Title, event.Start, event.End, event.RoomID, append([]int64{organizerID}, attendeeIDs...)...)
	created.Description = event.Description
	m.events[created.ID] = created
	return created.ID, nil
}

func (m *memStore) GetEvent(ctx context.Context, id int64) (persistence.Event, error) {
	event, ok := m.events[id]
	if !ok {
		return persistence.Event{}, persistence.ErrNotFound
	}
	return event, nil
}

func (m *memStore) ListUserEvents(ctx context.Context, userID int64, filter persistence.EventFilter) ([]persistence.Event, error) {
	var out []persistence.Event
	for _, event := range m.events {
		participates := false
		for _, p := range event.Participants {
			if p.UserID == userID {
				participates = true
			}
		}
		if participates && matchesFilter(event, filter) {
			out = append(out, event)
		}
	}
	return out, nil
}

func (m *memStore) ListRoomEvents(ctx context.Context, roomID int64, filter persistence.EventFilter) ([]persistence.Event, error) {
	var out []persistence.Event
	for _, event := range m.events {
		if event.RoomID != nil && *event.RoomID == roomID && matchesFilter(event, filter) {
			out = append(out, event)
		}
	}
	return out, nil
}

func (m *memStore) ListBookedEvents(ctx context.Context) ([]persistence.Event, error) {
	var out []persistence.Event
	for _, event := range m.events {
		if event.RoomID != nil {
			out = append(out, event)
		}
	}
	return out, nil
}

func (m *memStore) UpdateEvent(ctx context.Context, id int64, update persistence.EventUpdate) (persistence.Event, error) {
	event, ok := m.events[id]
	if !ok {
		return persistence.Event{}, persistence.ErrNotFound
	}
	if update.Title != nil {
		event.Title = *update.Title
	}
	if update.Description != nil {
		event.Description = *update.Description
	}
	if update.Start != nil {
		event.Start = *update.Start
	}
	if update.End != nil {
		event.End = *update.End
	}
	m.events[id] = event
	return event, nil
}

func (m *memStore) DeleteEvent(ctx context.Context, id int64) (bool, error) {
	if _, ok := m.events[id]; !ok {
		return false, nil
	}
	delete(m.events, id)
	return true, nil
}

func matchesFilter(event persistence.Event, filter persistence.EventFilter) bool {
	if filter.StartFrom != nil && event.Start.Before(*filter.StartFrom) {
		return false
	}
	if filter.StartUntil != nil && event.Start.After(*filter.StartUntil) {
		return false
	}
	if filter.EndUntil != nil && event.End.After(*filter.EndUntil) {
		return false
	}
	return true
}
