package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"tripledger/internal/core"
)

// ErrSlotEmpty is returned by a Slot read when the slot exists but holds no
// collection yet. The store treats it like any other read failure: fall back
// to the seed collection.
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is the durable external slot for the trip collection: one named key
// holding the whole collection as a JSON-encoded array of trips.
type Slot interface {
	Read(ctx context.Context) ([]core.Trip, error)
	Write(ctx context.Context, trips []core.Trip) error
}

// MemorySlot keeps the encoded payload in process memory. It round-trips
// through JSON like the real backends so serialization bugs still surface.
// Used for tests and the dev backend.
type MemorySlot struct {
	mu      sync.Mutex
	payload []byte
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// Seed replaces the slot content with raw bytes, bypassing encoding. Lets
// tests exercise corrupt-payload behavior.
func (s *MemorySlot) Seed(payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = append([]byte(nil), payload...)
}

func (s *MemorySlot) Read(_ context.Context) ([]core.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.payload) == 0 {
		return nil, ErrSlotEmpty
	}
	var trips []core.Trip
	if err := json.Unmarshal(s.payload, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (s *MemorySlot) Write(_ context.Context, trips []core.Trip) error {
	payload, err := json.Marshal(trips)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = payload
	return nil
}
