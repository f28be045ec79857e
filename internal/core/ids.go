package core

import "github.com/google/uuid"

// NewID allocates an identifier for trips, members, and expenses. UUIDs are
// collision-free even when entities are created in rapid succession, so one
// scheme covers both the global trip-id scope and the per-trip scopes.
func NewID() string {
	return uuid.NewString()
}
