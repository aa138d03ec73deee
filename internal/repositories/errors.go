package repositories

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when no active row matches the identifier.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when a natural key already exists.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrProtected is returned for rows that must never be deleted.
	ErrProtected = errors.New("protected record")
	// ErrMissingReference is returned when a foreign key target is absent.
	ErrMissingReference = errors.New("referenced record not found")
)

// translateConstraint maps SQLite constraint failures to sentinel errors so
// handlers can pick status codes without knowing the driver.
func translateConstraint(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return ErrDuplicateKey
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ErrMissingReference
	default:
		return err
	}
}
