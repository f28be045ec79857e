package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tripledger/internal/core"
)

// FileSlot persists the collection as a single JSON file. Writes go through
// a temp file and rename so a crash mid-write never leaves a torn payload.
type FileSlot struct {
	path string
}

func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

func (s *FileSlot) Read(_ context.Context) ([]core.Trip, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrSlotEmpty
	}
	var trips []core.Trip
	if err := json.Unmarshal(data, &trips); err != nil {
		return nil, fmt.Errorf("decode store file: %w", err)
	}
	return trips, nil
}

func (s *FileSlot) Write(_ context.Context, trips []core.Trip) error {
	payload, err := json.MarshalIndent(trips, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
