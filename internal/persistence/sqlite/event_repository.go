package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/example/meeting-scheduler/internal/persistence"
)

// EventRepository implements persistence.EventRepository using SQLite. Every
// compound write runs in a single transaction so a rejected participant row
// takes the event row down with it.
type EventRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewEventRepository creates a SQLite event repository on the shared pool.
func NewEventRepository(pool *ConnectionPool) *EventRepository {
	return &EventRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

const eventColumns = `
	e.id, e.title, e.description, e.start_time, e.end_time, e.room_id, r.name
	FROM events e
	LEFT JOIN rooms r ON r.id = e.room_id`

// CreateEvent atomically inserts the event, the organizer's participation
// row and one row per distinct attendee. An unknown user or room id fails
// the whole call with ErrForeignKeyViolation and leaves nothing behind.
func (r *EventRepository) CreateEvent(ctx context.Context, event persistence.Event, organizerID int64, attendeeIDs []int64) (int64, error) {
	if event.Title == "" {
		return 0, errConstraint(errors.New("event title must be set"))
	}
	if !event.Start.Before(event.End) {
		return 0, errConstraint(errors.New("event start must precede end"))
	}

	var eventID int64
	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := r.helper.ExecTx(tx,
			`INSERT INTO events (title, description, start_time, end_time, room_id)
			 VALUES (?, ?, ?, ?, ?)`,
			event.Title, event.Description,
			formatTime(event.Start), formatTime(event.End), event.RoomID)
		if err != nil {
			return r.mapper.MapError(err)
		}

		eventID, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read inserted event id: %w", err)
		}

		if _, err := r.helper.ExecTx(tx,
			`INSERT INTO user_events (user_id, event_id, is_organizer) VALUES (?, ?, 1)`,
			organizerID, eventID); err != nil {
			return r.mapper.MapError(err)
		}

		for _, attendeeID := range dedupeIDs(attendeeIDs, organizerID) {
			if _, err := r.helper.ExecTx(tx,
				`INSERT INTO user_events (user_id, event_id, is_organizer) VALUES (?, ?, 0)`,
				attendeeID, eventID); err != nil {
				return r.mapper.MapError(err)
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return eventID, nil
}

// GetEvent returns the event with its participants and room name resolved.
func (r *EventRepository) GetEvent(ctx context.Context, id int64) (persistence.Event, error) {
	event, err := r.scanEvent(r.helper.QueryRow(ctx,
		`SELECT`+eventColumns+` WHERE e.id = ?`, id))
	if err != nil {
		return persistence.Event{}, err
	}

	if event.Participants, err = r.loadParticipants(ctx, event.ID); err != nil {
		return persistence.Event{}, err
	}

	return event, nil
}

// ListUserEvents returns the user's events matching the filter, ordered by
// start time then id. An unknown user yields an empty list.
func (r *EventRepository) ListUserEvents(ctx context.Context, userID int64, filter persistence.EventFilter) ([]persistence.Event, error) {
	query := `SELECT` + eventColumns + `
		JOIN user_events ue ON ue.event_id = e.id
		WHERE ue.user_id = ?`
	args := []any{userID}
	query, args = applyFilter(query, args, filter)
	query += ` ORDER BY e.start_time ASC, e.id ASC`

	return r.listEvents(ctx, query, args, true)
}

// ListRoomEvents returns events booked into the room, matching the filter,
// ordered by start time then id.
func (r *EventRepository) ListRoomEvents(ctx context.Context, roomID int64, filter persistence.EventFilter) ([]persistence.Event, error) {
	query := `SELECT` + eventColumns + ` WHERE e.room_id = ?`
	args := []any{roomID}
	query, args = applyFilter(query, args, filter)
	query += ` ORDER BY e.start_time ASC, e.id ASC`

	return r.listEvents(ctx, query, args, true)
}

// ListBookedEvents returns every event holding a room reference. Participant
// rows are not resolved; callers only need the time span and room.
func (r *EventRepository) ListBookedEvents(ctx context.Context) ([]persistence.Event, error) {
	query := `SELECT` + eventColumns + `
		WHERE e.room_id IS NOT NULL
		ORDER BY e.start_time ASC, e.id ASC`

	return r.listEvents(ctx, query, nil, false)
}

// UpdateEvent applies the partial update and participant operation in one
// transaction, then returns the refreshed event.
func (r *EventRepository) UpdateEvent(ctx context.Context, id int64, update persistence.EventUpdate) (persistence.Event, error) {
	var updated persistence.Event
	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		current, err := r.scanEvent(r.helper.QueryRowTx(tx,
			`SELECT`+eventColumns+` WHERE e.id = ?`, id))
		if err != nil {
			return err
		}

		if err := r.applyFieldUpdates(tx, current, update); err != nil {
			return err
		}
		if err := r.applyParticipantOp(tx, id, update); err != nil {
			return err
		}

		updated, err = r.scanEvent(r.helper.QueryRowTx(tx,
			`SELECT`+eventColumns+` WHERE e.id = ?`, id))
		if err != nil {
			return err
		}
		updated.Participants, err = r.loadParticipantsTx(tx, id)
		return err
	})
	if err != nil {
		return persistence.Event{}, err
	}

	return updated, nil
}

// DeleteEvent removes the event; its participation rows cascade. It reports
// whether a row was removed, so deleting twice is visible but not an error.
func (r *EventRepository) DeleteEvent(ctx context.Context, id int64) (bool, error) {
	result, err := r.helper.Exec(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return false, r.mapper.MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *EventRepository) applyFieldUpdates(tx *sql.Tx, current persistence.Event, update persistence.EventUpdate) error {
	setClauses := make([]string, 0, 4)
	args := make([]any, 0, 5)

	if update.Title != nil {
		setClauses = append(setClauses, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Description != nil {
		setClauses = append(setClauses, "description = ?")
		args = append(args, *update.Description)
	}

	// When only one end of the interval moves, the CHECK constraint still
	// has to hold against the stored other end, so both are validated here
	// against the merged values before touching the row.
	start, end := current.Start, current.End
	if update.Start != nil {
		start = *update.Start
		setClauses = append(setClauses, "start_time = ?")
		args = append(args, formatTime(start))
	}
	if update.End != nil {
		end = *update.End
		setClauses = append(setClauses, "end_time = ?")
		args = append(args, formatTime(end))
	}
	if (update.Start != nil || update.End != nil) && !start.Before(end) {
		return errConstraint(errors.New("event start must precede end"))
	}

	if len(setClauses) == 0 {
		return nil
	}

	query := "UPDATE events SET " + strings.Join(setClauses, ", ") + " WHERE id = ?"
	args = append(args, current.ID)
	if _, err := r.helper.ExecTx(tx, query, args...); err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

func (r *EventRepository) applyParticipantOp(tx *sql.Tx, eventID int64, update persistence.EventUpdate) error {
	switch update.ParticipantOp {
	case persistence.ParticipantOpNone:
		return nil
	case persistence.ParticipantOpSet, persistence.ParticipantOpAdd:
	default:
		return errConstraint(fmt.Errorf("unknown participant operation %q", update.ParticipantOp))
	}

	var organizerID int64
	err := r.helper.QueryRowTx(tx,
		`SELECT user_id FROM user_events WHERE event_id = ? AND is_organizer = 1`,
		eventID).Scan(&organizerID)
	if err != nil {
		return r.mapper.MapError(err)
	}

	if update.ParticipantOp == persistence.ParticipantOpSet {
		// Replace attendees only; the organizer row survives even when the
		// new list omits them.
		if _, err := r.helper.ExecTx(tx,
			`DELETE FROM user_events WHERE event_id = ? AND is_organizer = 0`,
			eventID); err != nil {
			return r.mapper.MapError(err)
		}
	}

	for _, userID := range dedupeIDs(update.ParticipantIDs, organizerID) {
		if _, err := r.helper.ExecTx(tx,
			`INSERT OR IGNORE INTO user_events (user_id, event_id, is_organizer)
			 VALUES (?, ?, 0)`,
			userID, eventID); err != nil {
			return r.mapper.MapError(err)
		}
	}

	return nil
}

func (r *EventRepository) listEvents(ctx context.Context, query string, args []any, withParticipants bool) ([]persistence.Event, error) {
	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var events []persistence.Event
	for rows.Next() {
		event, err := r.scanEventRow(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	if withParticipants {
		for i := range events {
			if events[i].Participants, err = r.loadParticipants(ctx, events[i].ID); err != nil {
				return nil, err
			}
		}
	}

	return events, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *EventRepository) scanEvent(row *sql.Row) (persistence.Event, error) {
	event, err := r.scanEventRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Event{}, persistence.ErrNotFound
		}
		return persistence.Event{}, err
	}
	return event, nil
}

func (r *EventRepository) scanEventRow(row rowScanner) (persistence.Event, error) {
	var (
		event            persistence.Event
		startStr, endStr string
		roomID           sql.NullInt64
		roomName         sql.NullString
	)
	if err := row.Scan(&event.ID, &event.Title, &event.Description,
		&startStr, &endStr, &roomID, &roomName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Event{}, err
		}
		return persistence.Event{}, r.mapper.MapError(err)
	}

	var err error
	if event.Start, err = parseTime(startStr); err != nil {
		return persistence.Event{}, err
	}
	if event.End, err = parseTime(endStr); err != nil {
		return persistence.Event{}, err
	}
	if roomID.Valid {
		event.RoomID = &roomID.Int64
	}
	if roomName.Valid {
		event.RoomName = &roomName.String
	}

	return event, nil
}

const participantQuery = `
	SELECT u.id, u.name, u.email, ue.is_organizer
	FROM user_events ue
	JOIN users u ON u.id = ue.user_id
	WHERE ue.event_id = ?
	ORDER BY ue.is_organizer DESC, u.id ASC`

func (r *EventRepository) loadParticipants(ctx context.Context, eventID int64) ([]persistence.Participant, error) {
	rows, err := r.helper.Query(ctx, participantQuery, eventID)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()
	return collectParticipants(rows)
}

func (r *EventRepository) loadParticipantsTx(tx *sql.Tx, eventID int64) ([]persistence.Participant, error) {
	rows, err := r.helper.QueryTx(tx, participantQuery, eventID)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()
	return collectParticipants(rows)
}

func collectParticipants(rows *sql.Rows) ([]persistence.Participant, error) {
	var participants []persistence.Participant
	for rows.Next() {
		var p persistence.Participant
		if err := rows.Scan(&p.UserID, &p.Name, &p.Email, &p.IsOrganizer); err != nil {
			return nil, NewErrorMapper().MapError(err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, NewErrorMapper().MapError(err)
	}
	return participants, nil
}

// applyFilter appends WHERE conditions for the set bounds. The query must
// already contain a WHERE clause.
func applyFilter(query string, args []any, filter persistence.EventFilter) (string, []any) {
	if filter.StartFrom != nil {
		query += ` AND e.start_time >= ?`
		args = append(args, formatTime(*filter.StartFrom))
	}
	if filter.StartUntil != nil {
		query += ` AND e.start_time <= ?`
		args = append(args, formatTime(*filter.StartUntil))
	}
	if filter.EndUntil != nil {
		query += ` AND e.end_time <= ?`
		args = append(args, formatTime(*filter.EndUntil))
	}
	return query, args
}

// dedupeIDs returns ids with duplicates and the excluded id removed,
// preserving order.
func dedupeIDs(ids []int64, exclude int64) []int64 {
	seen := map[int64]bool{exclude: true}
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
