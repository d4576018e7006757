package sqlite

import (
	"fmt"

	"github.com/example/meeting-scheduler/internal/persistence"
)

// The helpers below wrap the persistence sentinels so that errors.Is keeps
// working while the driver-level cause stays visible in logs.

func errNotFound(cause error) error {
	return fmt.Errorf("%w: %v", persistence.ErrNotFound, cause)
}

func errDuplicate(cause error) error {
	return fmt.Errorf("%w: %v", persistence.ErrDuplicate, cause)
}

func errConstraint(cause error) error {
	return fmt.Errorf("%w: %v", persistence.ErrConstraintViolation, cause)
}

func errForeignKey(cause error) error {
	return fmt.Errorf("%w: %v", persistence.ErrForeignKeyViolation, cause)
}
