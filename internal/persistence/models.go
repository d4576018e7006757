package persistence

import "time"

// User represents a registered calendar user.
type User struct {
	ID    int64
	Name  string
	Email string
}

// Room represents a bookable meeting room. Virtual rooms are never subject
// to double-booking checks.
type Room struct {
	ID        int64
	Name      string
	Capacity  int
	IsVirtual bool
}

// VirtualRoomID identifies the seeded "Online Meeting" room that always
// exists so that online events are representable without a room reference.
const VirtualRoomID int64 = 1

// Participant is a user's membership on an event, resolved with the user's
// display attributes for read paths.
type Participant struct {
	UserID      int64
	Name        string
	Email       string
	IsOrganizer bool
}

// Event represents a calendar entry. Start and End form the half-open
// interval [Start, End); Start strictly precedes End for every stored row.
type Event struct {
	ID           int64
	Title        string
	Description  string
	Start        time.Time
	End          time.Time
	RoomID       *int64
	RoomName     *string
	Participants []Participant
}

// Organizer returns the event's organizer participation row. Every stored
// event has exactly one.
func (e Event) Organizer() (Participant, bool) {
	for _, p := range e.Participants {
		if p.IsOrganizer {
			return p, true
		}
	}
	return Participant{}, false
}
