package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/abonnet/univ-edt-api/api/swagger"
	"github.com/abonnet/univ-edt-api/internal/router"
	"github.com/abonnet/univ-edt-api/internal/seed"
	"github.com/abonnet/univ-edt-api/internal/service"
	"github.com/abonnet/univ-edt-api/internal/store"
	"github.com/abonnet/univ-edt-api/pkg/config"
	"github.com/abonnet/univ-edt-api/pkg/logger"
	"github.com/abonnet/univ-edt-api/pkg/storage"
)

// @title Univ EDT API
// @version 1.0.0
// @description University timetable and roster engine
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := store.Open(cfg.Store.SnapshotPath, seed.Func(cfg.Seed.CalendarPath, cfg.Seed.StudentsPath, logr), logr)

	metrics := service.NewMetricsService()

	flusher := store.NewFlusher(st, cfg.Store.SnapshotPath, cfg.Store.FlushInterval, logr)
	flusher.OnFlush = metrics.ObserveFlush
	go flusher.Run(ctx)

	files, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	exportSvc := service.NewExportService(st, files, signer, service.ExportConfig{
		APIPrefix:  cfg.APIPrefix,
		Workers:    cfg.Exports.WorkerConcurrency,
		MaxRetries: cfg.Exports.WorkerRetries,
	}, nil, metrics, logr)
	exportSvc.Start(ctx)
	defer exportSvc.Stop()

	svcs := router.Services{
		Auth:      service.NewAuthService(st, nil, logr),
		Profile:   service.NewProfileService(st, nil, logr),
		Classroom: service.NewClassroomService(st, nil, logr),
		Class:     service.NewClassService(st, nil, logr),
		Teacher:   service.NewTeacherService(st, nil, logr),
		Student:   service.NewStudentService(st, nil, logr),
		Subject:   service.NewSubjectService(st, nil, logr),
		Occupancy: service.NewOccupancyService(st, logr),
		Admin:     service.NewAdminService(st, logr),
		Export:    exportSvc,
		Metrics:   metrics,
	}

	r := router.New(cfg, st, svcs, logr)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown incomplete", "error", err)
	}

	// One last flush so the snapshot reflects everything served.
	flusher.Flush()
}
