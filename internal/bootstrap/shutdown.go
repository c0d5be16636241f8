package bootstrap

import (
	"context"
	"log/slog"

	"github.com/playventures/bizlab/internal/game"
	"github.com/playventures/bizlab/internal/ledger"
	"github.com/playventures/bizlab/internal/scheduler"
	"github.com/playventures/bizlab/internal/server"
	"github.com/playventures/bizlab/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server        *server.Server
	Scheduler     *scheduler.Scheduler
	WorkerPool    *worker.Pool
	GameManager   *game.Manager
	LedgerService ledger.Service
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in dependency order:
//  1. HTTP server (stop accepting new requests)
//  2. Scheduler and worker pool (no more janitor sweeps)
//  3. Game manager (force-exits sessions, committing their rewards)
//  4. Ledger service (flushes pending event publishes)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	// Sessions must close before the ledger: each exit commits its reward
	if components.GameManager != nil {
		if err := components.GameManager.Shutdown(ctx); err != nil {
			slog.Error(ServiceNameGameManager+LogMsgServiceShutdownFailed, "error", err)
		}
	}

	if components.LedgerService != nil {
		if err := components.LedgerService.Shutdown(ctx); err != nil {
			slog.Error(ServiceNameLedger+LogMsgServiceShutdownFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
