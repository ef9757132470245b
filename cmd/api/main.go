package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"produtos-alert/internal/config"
	"produtos-alert/internal/db"
	"produtos-alert/internal/httpserver"
	"produtos-alert/internal/logging"
	"produtos-alert/internal/mailer"
	productrepo "produtos-alert/internal/repository/product"
	alertsvc "produtos-alert/internal/service/alert"
	productsvc "produtos-alert/internal/service/product"
)

func main() {
	cfg := config.Load()
	logger, err := logging.New(cfg.Log, "api")
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
	dbpool, err := db.Connect(ctx, cfg.DatabaseURL, cfg.DatabaseKey)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	sender, err := mailer.New(cfg.Email, logger.Named("mailer"))
	if err != nil {
		logger.Fatal("init mailer", zap.Error(err))
	}

	productRepo := productrepo.NewPostgres(dbpool, logger.Named("store"))
	productService := productsvc.New(productRepo, cfg.StoreTimeout)
	alertService := alertsvc.New(productService, sender, alertsvc.Options{
		From:        cfg.Alert.From,
		To:          cfg.Alert.To,
		Now:         func() time.Time { return time.Now().In(loc) },
		SendTimeout: cfg.Email.Timeout,
		Logger:      logger.Named("alert"),
	})

	srv, err := httpserver.New(cfg.HTTPAddr, logger.Named("http"), dbpool, httpserver.Deps{
		ProductSvc: productService,
		AlertSvc:   alertService,
	})
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr), zap.String("email_driver", cfg.Email.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
