package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/meeting-scheduler/internal/persistence"
)

// Timestamps are stored as RFC3339 UTC text. The format sorts
// lexicographically in chronological order, which the start_time indexes and
// the CHECK constraint below rely on.
const timeLayout = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored timestamp %q: %w", s, err)
	}
	return t, nil
}

// statements applied in order by Migrate. Every statement is idempotent so
// Migrate can run on every startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id    INTEGER PRIMARY KEY AUTOINCREMENT,
		name  TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		capacity   INTEGER NOT NULL CHECK (capacity > 0),
		is_virtual INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		start_time  TEXT NOT NULL,
		end_time    TEXT NOT NULL,
		room_id     INTEGER REFERENCES rooms(id),
		CHECK (start_time < end_time)
	)`,
	`CREATE TABLE IF NOT EXISTS user_events (
		user_id      INTEGER NOT NULL REFERENCES users(id),
		event_id     INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		is_organizer INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, event_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_start_time ON events (start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_events_room_id ON events (room_id)`,
	`CREATE INDEX IF NOT EXISTS idx_user_events_event_id ON user_events (event_id)`,
}

// seedStatements guarantee the virtual room exists. The fixed id keeps
// "Online Meeting" addressable without a lookup, and the generous capacity
// means it never rejects an attendee list.
var seedStatements = []string{
	`INSERT OR IGNORE INTO rooms (id, name, capacity, is_virtual)
		VALUES (?, 'Online Meeting', 999, 1)`,
}

// Migrate creates the schema and seed rows if they do not exist. It is safe
// to call on every startup.
func (s *Storage) Migrate(ctx context.Context) error {
	return s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range schemaStatements {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("failed to apply schema statement: %w", err)
			}
		}
		for _, stmt := range seedStatements {
			if _, err := tx.Exec(stmt, persistence.VirtualRoomID); err != nil {
				return fmt.Errorf("failed to seed rooms: %w", err)
			}
		}
		return nil
	})
}
