package bootstrap

import (
	"context"
	"log/slog"

	"github.com/firesafetykz/portal/internal/event"
	"github.com/firesafetykz/portal/internal/gamification"
)

// Stopper is the part of the HTTP server shutdown needs
type Stopper interface {
	Stop(ctx context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server              Stopper
	GamificationService gamification.Service
	ResilientPublisher  *event.ResilientPublisher
}

// GracefulShutdown stops components in order:
// 1. HTTP server, which closes open sockets and stops accepting requests
// 2. Application services
// 3. Event publisher, flushing queued retries
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.GamificationService != nil {
		shutdownService(ctx, ServiceNameGamification, components.GamificationService)
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
