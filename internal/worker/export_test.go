package worker

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"tripledger/internal/core"
	"tripledger/internal/log"
	"tripledger/internal/store"
)

func testLogger() *log.Logger {
	return log.New(log.DefaultConfig())
}

func TestExportWritesCollection(t *testing.T) {
	ctx := context.Background()
	slot := store.NewMemorySlot()
	trips := core.SeedTrips()
	if err := slot.Write(ctx, trips); err != nil {
		t.Fatalf("seed slot: %v", err)
	}

	dir := t.TempDir()
	w := NewExportWorker(slot, dir, testLogger())
	if err := w.Export(ctx); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, exportFileName))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var exported []core.Trip
	if err := json.Unmarshal(data, &exported); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if !reflect.DeepEqual(exported, trips) {
		t.Fatalf("export mismatch:\n got %+v\nwant %+v", exported, trips)
	}
}

func TestExportEmptySlotIsNoop(t *testing.T) {
	dir := t.TempDir()
	w := NewExportWorker(store.NewMemorySlot(), dir, testLogger())
	if err := w.Export(context.Background()); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, exportFileName)); !os.IsNotExist(err) {
		t.Fatalf("export file should not exist for an empty slot")
	}
}

func TestRunExportsOnKick(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slot := store.NewMemorySlot()
	if err := slot.Write(ctx, core.SeedTrips()); err != nil {
		t.Fatalf("seed slot: %v", err)
	}

	dir := t.TempDir()
	w := NewExportWorker(slot, dir, testLogger())

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, time.Hour) }()

	w.Kick()

	path := filepath.Join(dir, exportFileName)
	deadline := time.After(2 * time.Second)
	for {
		if _, err := os.Stat(path); err == nil {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("export file never appeared")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Fatalf("run returned %v, want context.Canceled", err)
	}
}
