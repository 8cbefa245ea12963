package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/kittipatv/yt-sched/app/api"
	"github.com/kittipatv/yt-sched/app/cfg"
	"github.com/kittipatv/yt-sched/app/database"
	"github.com/kittipatv/yt-sched/app/metrics"
	"github.com/kittipatv/yt-sched/app/presets"
	"github.com/kittipatv/yt-sched/app/schedule"
	"github.com/kittipatv/yt-sched/app/tasks"
	"github.com/kittipatv/yt-sched/app/youtube"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting yt-sched", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open settings database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	migrationVersion, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Settings database ready", "path", appCfg.DBPath, "migration_version", migrationVersion, "dirty", dirty)

	settingsRepo := database.NewSettingsRepository(db)

	presetCache := presets.NewCache(appCfg.PresetsDir)
	if err := presetCache.Run(); err != nil {
		slog.Warn("Failed to load presets", "dir", appCfg.PresetsDir, "error", err)
	} else {
		slog.Info("Presets loaded", "dir", appCfg.PresetsDir, "count", presetCache.Count())
	}

	metrics.Register()

	store := schedule.NewResultStore()

	httpClient := &http.Client{Timeout: 30 * time.Second}
	limiter := rate.NewLimiter(rate.Limit(appCfg.RateLimit), 1)

	scheduler := tasks.NewScheduler(settingsRepo, store, presetCache, httpClient, limiter)
	scheduler.Start()
	defer scheduler.Stop()

	resolver := youtube.NewResolver(httpClient, limiter, appCfg.UserAgent)
	handler := api.NewHandler(settingsRepo, store, presetCache, scheduler, resolver)
	server := api.NewServer(handler, settingsRepo)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer; a fetch still in flight publishes
	// into the store, which simply goes away with the process.
	slog.Info("Shutdown complete")
}
