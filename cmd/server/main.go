package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmreg/internal/config"
	"github.com/mamadbah2/farmreg/internal/repository/mongodb"
	"github.com/mamadbah2/farmreg/internal/repository/sheets"
	"github.com/mamadbah2/farmreg/internal/scheduler"
	"github.com/mamadbah2/farmreg/internal/server/handlers"
	"github.com/mamadbah2/farmreg/internal/server/router"
	authsvc "github.com/mamadbah2/farmreg/internal/service/auth"
	registrysvc "github.com/mamadbah2/farmreg/internal/service/registry"
	reportingsvc "github.com/mamadbah2/farmreg/internal/service/reporting"
	"github.com/mamadbah2/farmreg/pkg/clients/qrserver"
	"github.com/mamadbah2/farmreg/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(os.Getenv("APP_DEBUG") != ""))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.NewStore(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var exporter sheets.Exporter
	if cfg.Sheets.Enabled() {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("google sheets export enabled")
	} else {
		baseLogger.Warn("google sheets credentials missing, roster push disabled")
	}

	farmers := store.Farmers()
	qrClient := qrserver.NewClient(cfg.QR)

	registrySvc := registrysvc.NewService(farmers, cfg.Registry.FarmerIDPrefix, baseLogger.Named("svc.registry"))
	authService := authsvc.NewService(store.Users(), cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, baseLogger.Named("svc.auth"))
	reportingSvc := reportingsvc.NewService(farmers, store.Summaries(), exporter, qrClient, baseLogger.Named("svc.reporting"))

	// Shared live view backing the dashboard; released on shutdown.
	dashboardCache := registrysvc.NewCache(farmers, mongodb.Filter{}, baseLogger.Named("svc.cache"))
	if err := dashboardCache.Start(context.Background()); err != nil {
		baseLogger.Fatal("failed to start dashboard view", zap.Error(err))
	}
	defer dashboardCache.Close()

	authHandler := handlers.NewAuthHandler(authService, baseLogger.Named("handlers.auth"))
	farmerHandler := handlers.NewFarmerHandler(registrySvc, dashboardCache, baseLogger.Named("handlers.farmers"))
	reportHandler := handlers.NewReportHandler(reportingSvc, baseLogger.Named("handlers.reports"))
	engine := router.New(authHandler, farmerHandler, reportHandler, baseLogger.Named("router"))

	// Initialize Scheduler
	sched := scheduler.NewScheduler(cfg.Reporting, reportingSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
