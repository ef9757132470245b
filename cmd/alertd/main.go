package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"produtos-alert/internal/config"
	"produtos-alert/internal/db"
	"produtos-alert/internal/logging"
	"produtos-alert/internal/mailer"
	productrepo "produtos-alert/internal/repository/product"
	"produtos-alert/internal/scheduler"
	alertsvc "produtos-alert/internal/service/alert"
	productsvc "produtos-alert/internal/service/product"
)

func main() {
	var once bool
	flag.BoolVar(&once, "once", false, "Run a single scan and exit")
	flag.Parse()

	cfg := config.Load()
	logger, err := logging.New(cfg.Log, "alertd")
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	loc, err := cfg.Alert.Location()
	if err != nil {
		logger.Fatal("load timezone", zap.String("timezone", cfg.Alert.Timezone), zap.Error(err))
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL, cfg.DatabaseKey)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	sender, err := mailer.New(cfg.Email, logger.Named("mailer"))
	if err != nil {
		logger.Fatal("init mailer", zap.Error(err))
	}

	products := productsvc.New(productrepo.NewPostgres(pool, logger.Named("store")), cfg.StoreTimeout)
	alerts := alertsvc.New(products, sender, alertsvc.Options{
		From:        cfg.Alert.From,
		To:          cfg.Alert.To,
		Now:         func() time.Time { return time.Now().In(loc) },
		SendTimeout: cfg.Email.Timeout,
		Logger:      logger.Named("alert"),
	})

	timeout := cfg.StoreTimeout + cfg.Email.Timeout
	sched, err := scheduler.New(cfg.Alert.Cron, loc, alerts, timeout, logger.Named("scheduler"))
	if err != nil {
		logger.Fatal("init scheduler", zap.String("cron", cfg.Alert.Cron), zap.Error(err))
	}

	if once {
		sched.RunOnce(ctx)
		return
	}

	sched.Start()
	logger.Info("alert scheduler started", zap.String("cron", cfg.Alert.Cron), zap.String("timezone", loc.String()))

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stopCh
	logger.Info("received signal, stopping", zap.String("signal", sig.String()))

	select {
	case <-sched.Stop().Done():
	case <-time.After(cfg.ShutdownTimeout):
		logger.Warn("scan still running at shutdown")
	}
}
