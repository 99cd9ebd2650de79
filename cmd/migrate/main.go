package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"

	"recruitment-platform/config"
	"recruitment-platform/migrations"
	"recruitment-platform/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		logger.Log.Error("Failed to reach database", "error", err)
		os.Exit(1)
	}

	applied, err := migrations.Apply(ctx, db)
	if err != nil {
		logger.Log.Error("Migration failed", "applied", applied, "error", err)
		os.Exit(1)
	}
	if len(applied) == 0 {
		logger.Log.Info("Schema up to date")
		return
	}
	logger.Log.Info("Migrations applied", "versions", applied)
}
