// Package storage provides the SQLite-backed durable slot for the trip
// collection. The whole collection is stored as a single JSON payload under
// one named key, matching the external storage contract.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tripledger/internal/core"
	"tripledger/internal/store"

	_ "modernc.org/sqlite"
)

type SQLiteSlot struct {
	db  *sql.DB
	key string
}

func NewSQLiteSlot(dbPath, key string) (*SQLiteSlot, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteSlot{db: db, key: key}, nil
}

func (s *SQLiteSlot) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Read implements store.Slot.
func (s *SQLiteSlot) Read(ctx context.Context) ([]core.Trip, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM trip_store WHERE key = ?`, s.key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %q: %w", s.key, err)
	}
	if len(payload) == 0 {
		return nil, store.ErrSlotEmpty
	}

	var trips []core.Trip
	if err := json.Unmarshal(payload, &trips); err != nil {
		return nil, fmt.Errorf("decode slot %q: %w", s.key, err)
	}
	return trips, nil
}

// Write implements store.Slot. The whole collection replaces the previous
// payload in one statement.
func (s *SQLiteSlot) Write(ctx context.Context, trips []core.Trip) error {
	payload, err := json.Marshal(trips)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO trip_store (key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		s.key, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write slot %q: %w", s.key, err)
	}
	return nil
}
