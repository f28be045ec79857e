// Package worker implements the snapshot-export loop run by
// cmd/tripledger-worker. It reads the trip collection from the durable slot
// and writes a JSON export to disk, both on a fixed interval and whenever a
// mutation event arrives.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tripledger/internal/log"
	"tripledger/internal/store"
)

const exportFileName = "trips-export.json"

type ExportWorker struct {
	slot   store.Slot
	dir    string
	logger *log.Logger

	// kick coalesces bursts of mutation events into one export.
	kick chan struct{}
}

func NewExportWorker(slot store.Slot, dir string, logger *log.Logger) *ExportWorker {
	return &ExportWorker{
		slot:   slot,
		dir:    dir,
		logger: logger.WithComponent(log.ComponentWorker),
		kick:   make(chan struct{}, 1),
	}
}

// Kick requests an export soon. Non-blocking; pending requests collapse.
func (w *ExportWorker) Kick() {
	select {
	case w.kick <- struct{}{}:
	default:
	}
}

// Run exports on every tick and on every kick until the context ends.
func (w *ExportWorker) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-w.kick:
		}

		if err := w.Export(ctx); err != nil {
			w.logger.ErrorContext(ctx, "Snapshot export failed",
				log.FieldOperation, log.OpExport,
				log.FieldError, err)
		}
	}
}

// Export reads the collection from the slot and writes it to the export
// file atomically. An empty slot exports nothing and is not an error.
func (w *ExportWorker) Export(ctx context.Context) error {
	trips, err := w.slot.Read(ctx)
	if err != nil {
		if errors.Is(err, store.ErrSlotEmpty) {
			w.logger.InfoContext(ctx, "Slot empty, nothing to export",
				log.FieldOperation, log.OpExport)
			return nil
		}
		return fmt.Errorf("read slot: %w", err)
	}

	payload, err := json.MarshalIndent(trips, "", "  ")
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(w.dir, exportFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace export file: %w", err)
	}

	w.logger.InfoContext(ctx, "Snapshot exported",
		log.FieldOperation, log.OpExport,
		"trips", len(trips),
		log.FieldPath, path)
	return nil
}
