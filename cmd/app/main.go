package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/playventures/bizlab/internal/bootstrap"
	"github.com/playventures/bizlab/internal/catalog"
	"github.com/playventures/bizlab/internal/config"
	"github.com/playventures/bizlab/internal/database"
	"github.com/playventures/bizlab/internal/database/postgres"
	"github.com/playventures/bizlab/internal/event"
	"github.com/playventures/bizlab/internal/game"
	"github.com/playventures/bizlab/internal/ledger"
	"github.com/playventures/bizlab/internal/logger"
	"github.com/playventures/bizlab/internal/scheduler"
	"github.com/playventures/bizlab/internal/server"
	"github.com/playventures/bizlab/internal/skill"
	"github.com/playventures/bizlab/internal/worker"
)

// Database pool sizing
const (
	dbMaxConnections = 10
	dbMaxIdleTime    = 5 * time.Minute
	dbMaxLifetime    = 30 * time.Minute
)

// janitorSweepInterval is how often idle sessions are checked for expiry
const janitorSweepInterval = time.Minute

// shutdownTimeout bounds the graceful shutdown sequence
const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logFile, err := logger.Setup(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	dbPool, err := database.NewPool(context.Background(), cfg.GetDBConnString(), dbMaxConnections, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	businesses, err := catalog.LoadDir(cfg.BusinessConfigDir)
	if err != nil {
		slog.Error("Failed to load business configs", "dir", cfg.BusinessConfigDir, "error", err)
		os.Exit(1)
	}

	ledgerRepo := postgres.NewLedgerRepository(dbPool)
	saveRepo := postgres.NewSessionSaveRepository(dbPool)

	eventBus := event.NewMemoryBus()
	ledgerService := ledger.NewService(ledgerRepo, businesses, eventBus)
	gameManager := game.NewManager(businesses, ledgerService, saveRepo, skill.NewResolver())

	// Background janitor: sweeps idle game sessions, committing their rewards
	workerPool := worker.NewPool(worker.DefaultWorkers, worker.DefaultQueueSize)
	workerPool.Start()
	sched := scheduler.New(workerPool)
	sched.Schedule(janitorSweepInterval, worker.NewSessionJanitorJob(gameManager, cfg.SessionIdleTimeout))

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, dbPool, ledgerService, gameManager, businesses)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
	case sig := <-quit:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:        srv,
		Scheduler:     sched,
		WorkerPool:    workerPool,
		GameManager:   gameManager,
		LedgerService: ledgerService,
	})
}
