// README: Common value types shared across modules.
package types

import "github.com/google/uuid"

// ID is an opaque entity identifier (UUID string form).
type ID string

// NewID returns a fresh random ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// Valid reports whether s parses as a UUID.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
