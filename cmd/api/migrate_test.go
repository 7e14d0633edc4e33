package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"pet-growth-diary/internal/adapters/storage/csvfile"
	"pet-growth-diary/internal/adapters/storage/sqlite"
	"pet-growth-diary/internal/domain/healthlog"
	"pet-growth-diary/internal/domain/pages"
	"pet-growth-diary/internal/platform/logger"
)

func TestRunMigrate_RerunDoesNotDuplicate(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := csvfile.NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}

	// seed: un memo y un registro de salud en el backend CSV
	if err := csvfile.NewPagesRepo(store).Append(ctx, []pages.Record{{
		PetName:  "Pochi",
		Category: pages.CategoryMemo,
		Fields:   pages.Memo{Date: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), Text: "hola"},
	}}); err != nil {
		t.Fatalf("seed memo: %v", err)
	}
	if err := csvfile.NewHealthLogRepo(store).Append(ctx, healthlog.Entry{
		PetName:  "Pochi",
		Date:     time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		WeightKg: 4.2,
	}); err != nil {
		t.Fatalf("seed health: %v", err)
	}

	db, err := sqlite.Open(filepath.Join(dir, "diary.db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer db.Close()

	log := logger.New(logger.Options{Level: logger.Error})

	for i := 0; i < 2; i++ {
		if err := runMigrate(ctx, log, store, db); err != nil {
			t.Fatalf("runMigrate #%d error: %v", i+1, err)
		}
	}

	for _, table := range []string{"memo_log", "health_log"} {
		var count int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if count != 1 {
			t.Fatalf("after two migrate runs %s has %d rows, want 1", table, count)
		}
	}
}
