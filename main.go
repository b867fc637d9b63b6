package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/dbrown13/home-harmony/internal/config"
	"github.com/dbrown13/home-harmony/internal/repository"
	"github.com/dbrown13/home-harmony/internal/server"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Load configuration
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// A missing signing secret is a boot-time invariant, never a per-request
	// error
	if cfg.Auth.Secret == "" {
		logger.Fatal("Signing secret is not configured")
	}

	// Database connection
	db, err := repository.NewSQLiteDB(cfg.Database.Path, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := repository.Migrate(db); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.Info("Database migration was run successfully")

	// Upload staging directory
	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		logger.Fatal("Failed to create upload directory", zap.Error(err))
	}

	// Initialize and run the server
	srv := server.NewServer(db, cfg, logger)
	srv.Run(cfg.Server.Port)
}
