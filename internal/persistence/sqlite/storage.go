package sqlite

import "context"

// Storage bundles the SQLite-backed repositories behind a single handle with
// a shared connection pool. Open then Migrate before first use.
type Storage struct {
	pool *ConnectionPool

	Users  *UserRepository
	Rooms  *RoomRepository
	Events *EventRepository
}

// Open creates a Storage for the database file at path. The schema is not
// touched; call Migrate before using the repositories.
func Open(path string) (*Storage, error) {
	return OpenDSN(DSN(path))
}

// OpenDSN creates a Storage for a raw connection string. Useful for
// in-memory databases in tests.
func OpenDSN(dsn string) (*Storage, error) {
	pool, err := NewConnectionPool(dsn)
	if err != nil {
		return nil, err
	}

	return &Storage{
		pool:   pool,
		Users:  NewUserRepository(pool),
		Rooms:  NewRoomRepository(pool),
		Events: NewEventRepository(pool),
	}, nil
}

// Ping tests the database connection.
func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Storage) Close() error {
	return s.pool.Close()
}
