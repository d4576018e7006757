package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/example/meeting-scheduler/internal/persistence"
)

// UserRepository implements persistence.UserRepository using SQLite.
type UserRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewUserRepository creates a SQLite user repository on the shared pool.
func NewUserRepository(pool *ConnectionPool) *UserRepository {
	return &UserRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateUser inserts a new user, or returns the already-registered user when
// the email is taken. The lookup and insert share a transaction so two
// concurrent registrations of the same address cannot both insert.
func (r *UserRepository) CreateUser(ctx context.Context, name, email string) (persistence.User, error) {
	if name == "" || email == "" {
		return persistence.User{}, errConstraint(errors.New("name and email must be set"))
	}

	normalized := normalizeEmail(email)

	var user persistence.User
	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		existing, err := scanUser(r.helper.QueryRowTx(tx,
			`SELECT id, name, email FROM users WHERE email = ?`, normalized))
		if err == nil {
			user = existing
			return nil
		}
		if !errors.Is(err, persistence.ErrNotFound) {
			return err
		}

		result, err := r.helper.ExecTx(tx,
			`INSERT INTO users (name, email) VALUES (?, ?)`, name, normalized)
		if err != nil {
			return r.mapper.MapError(err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read inserted user id: %w", err)
		}

		user = persistence.User{ID: id, Name: name, Email: normalized}
		return nil
	})
	if err != nil {
		return persistence.User{}, err
	}

	return user, nil
}

// GetUser retrieves a user by id.
func (r *UserRepository) GetUser(ctx context.Context, id int64) (persistence.User, error) {
	return scanUser(r.helper.QueryRow(ctx,
		`SELECT id, name, email FROM users WHERE id = ?`, id))
}

// GetUserByEmail retrieves a user by email address.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	return scanUser(r.helper.QueryRow(ctx,
		`SELECT id, name, email FROM users WHERE email = ?`, normalizeEmail(email)))
}

// SearchUsersByName returns users whose name contains the substring,
// case-insensitively, ordered by id.
func (r *UserRepository) SearchUsersByName(ctx context.Context, name string) ([]persistence.User, error) {
	rows, err := r.helper.Query(ctx,
		`SELECT id, name, email FROM users
		 WHERE name LIKE '%' || ? || '%'
		 ORDER BY id ASC`, name)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// ListUsers returns all users ordered by id.
func (r *UserRepository) ListUsers(ctx context.Context) ([]persistence.User, error) {
	rows, err := r.helper.Query(ctx,
		`SELECT id, name, email FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

func scanUser(row *sql.Row) (persistence.User, error) {
	var user persistence.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.User{}, persistence.ErrNotFound
		}
		return persistence.User{}, NewErrorMapper().MapError(err)
	}
	return user, nil
}

func collectUsers(rows *sql.Rows) ([]persistence.User, error) {
	var users []persistence.User
	for rows.Next() {
		var user persistence.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email); err != nil {
			return nil, NewErrorMapper().MapError(err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, NewErrorMapper().MapError(err)
	}
	return users, nil
}

// normalizeEmail normalizes addresses for consistent storage and lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
