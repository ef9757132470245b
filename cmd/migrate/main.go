package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"produtos-alert/internal/config"
	"produtos-alert/internal/db"
	"produtos-alert/internal/logging"
	"produtos-alert/internal/migrate"
)

func main() {
	cfg := config.Load()
	logger, err := logging.New(cfg.Log, "migrate")
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL, cfg.DatabaseKey)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}

	logger.Info("migrations applied")
}
