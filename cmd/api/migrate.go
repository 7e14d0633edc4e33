package main

import (
	"context"
	"database/sql"
	"path/filepath"

	"pet-growth-diary/internal/adapters/storage/csvfile"
	"pet-growth-diary/internal/adapters/storage/sqlite"
	"pet-growth-diary/internal/domain/pages"
	"pet-growth-diary/internal/platform/config"
	"pet-growth-diary/internal/platform/logger"

	"github.com/spf13/cobra"
)

// migrateCmd copia todos los registros del backend CSV al archivo sqlite.
// Es idempotente: el import vacía las tablas destino primero, así que
// re-ejecutarlo deja el mismo resultado que correrlo una vez.
func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Copy CSV records into the sqlite database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log := logger.New(logger.Options{
				Level:  logger.ParseLevel(cfg.Log.Level),
				Format: logger.ParseFormat(cfg.Log.Format),
				App:    "pet-growth-diary",
			})

			store, err := csvfile.NewStore(cfg.DataDir)
			if err != nil {
				return err
			}

			db, err := sqlite.Open(filepath.Join(cfg.DataDir, "diary.db"))
			if err != nil {
				return err
			}
			defer db.Close()

			return runMigrate(context.Background(), log, store, db)
		},
	}
}

func runMigrate(ctx context.Context, log logger.Logger, store *csvfile.Store, db *sql.DB) error {
	// siempre se parte de base vacía: el CSV es la fuente de verdad del import
	if err := sqlite.Reset(ctx, db); err != nil {
		return err
	}

	srcPages := csvfile.NewPagesRepo(store)
	dstPages := sqlite.NewPagesRepo(db)
	for _, cat := range pages.AllCategories() {
		recs, err := srcPages.ListAll(ctx, cat)
		if err != nil {
			return err
		}
		if err := dstPages.Append(ctx, recs); err != nil {
			return err
		}
		log.Info("migrated page records", map[string]any{
			"category": string(cat),
			"count":    len(recs),
		})
	}

	srcGrowth := csvfile.NewGrowthLogRepo(store)
	dstGrowth := sqlite.NewGrowthLogRepo(db)
	growthEntries, err := srcGrowth.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, e := range growthEntries {
		if err := dstGrowth.Append(ctx, e); err != nil {
			return err
		}
	}
	log.Info("migrated growth log", map[string]any{"count": len(growthEntries)})

	srcHealth := csvfile.NewHealthLogRepo(store)
	dstHealth := sqlite.NewHealthLogRepo(db)
	healthEntries, err := srcHealth.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, e := range healthEntries {
		if err := dstHealth.Append(ctx, e); err != nil {
			return err
		}
	}
	log.Info("migrated health log", map[string]any{"count": len(healthEntries)})

	return nil
}
