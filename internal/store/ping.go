package store

import (
	"context"
	"errors"
)

// Ping probes the durable slot for readiness checks. An empty slot is
// healthy; only an unreadable one is not.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.slot.Read(ctx); err != nil && !errors.Is(err, ErrSlotEmpty) {
		return err
	}
	return nil
}
