package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"produtos-alert/internal/config"
	"produtos-alert/internal/db"
	"produtos-alert/internal/logging"
	"produtos-alert/internal/seed"
)

func main() {
	cfg := config.Load()
	logger, err := logging.New(cfg.Log, "seed")
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	loc, err := cfg.Alert.Location()
	if err != nil {
		logger.Fatal("load timezone", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL, cfg.DatabaseKey)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if err := seed.Apply(ctx, pool, time.Now().In(loc)); err != nil {
		logger.Fatal("seed apply", zap.Error(err))
	}

	logger.Info("seed applied")
}
