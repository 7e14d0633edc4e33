package main

import (
	"database/sql"
	"net/http"
	"path/filepath"
	"time"

	"pet-growth-diary/internal/adapters/storage/sqlite"
	"pet-growth-diary/internal/platform/config"
	"pet-growth-diary/internal/platform/logger"
	"pet-growth-diary/internal/router"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the diary HTTP server",
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

			var db *sql.DB
			if cfg.Storage == "sqlite" {
				db, err = sqlite.Open(filepath.Join(cfg.DataDir, "diary.db"))
				if err != nil {
					return err
				}
				defer db.Close()
			}

			h, err := router.NewRouter(router.Options{
				Logger:    log,
				DataDir:   cfg.DataDir,
				ImagesDir: cfg.ImagesDir,
				DB:        db,
				WeekStart: cfg.WeekStartDay(),
			})
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:         cfg.Addr,
				Handler:      h,
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 10 * time.Second,
			}

			log.Info("starting server", map[string]any{
				"addr":    cfg.Addr,
				"storage": cfg.Storage,
			})
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
}
