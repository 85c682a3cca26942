package tusclient

import "github.com/google/uuid"

// newID generates a new opaque, stable upload identifier.
func newID() string {
	return uuid.NewString()
}
