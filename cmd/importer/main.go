package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"produtos-alert/internal/config"
	"produtos-alert/internal/db"
	"produtos-alert/internal/importer"
	"produtos-alert/internal/logging"
	productrepo "produtos-alert/internal/repository/product"
	productsvc "produtos-alert/internal/service/product"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a CSV with name and expiration_date columns")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	logger, err := logging.New(cfg.Log, "importer")
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL, cfg.DatabaseKey)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatal("open file", zap.Error(err))
	}
	defer f.Close()

	products := productsvc.New(productrepo.NewPostgres(pool, logger.Named("store")), cfg.StoreTimeout)
	imp := importer.NewCSVImporter(f, products, logger)

	start := time.Now()
	report, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal("import failed", zap.Int("imported", report.Imported), zap.Error(err))
	}

	fmt.Printf("Imported %d products (%d skipped) in %s\n", report.Imported, len(report.Skipped), time.Since(start).Truncate(time.Millisecond))
	for _, s := range report.Skipped {
		fmt.Printf("  line %d: %s\n", s.Line, s.Reason)
	}
}
