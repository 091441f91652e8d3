package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/firesafetykz/portal/internal/bootstrap"
	"github.com/firesafetykz/portal/internal/config"
	"github.com/firesafetykz/portal/internal/database"
	"github.com/firesafetykz/portal/internal/gamification"
	"github.com/firesafetykz/portal/internal/handler"
	"github.com/firesafetykz/portal/internal/notification"
	"github.com/firesafetykz/portal/internal/relay"
	"github.com/firesafetykz/portal/internal/server"
)

const (
	serviceName     = "firesafety-portal"
	shutdownTimeout = 15 * time.Second
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// @title Fire Safety Portal API
// @version 1.0
// @description Notifications, real-time relay and training-game progress for the fire safety portal.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)
	slog.Info("Starting portal", "version", version, "environment", cfg.Environment, "port", cfg.Port)

	if cfg.Environment == "prod" || cfg.Environment == "production" {
		warnings, err := config.ValidateEnvWithWarnings()
		if err != nil {
			slog.Error("Environment validation failed", "error", err)
			os.Exit(1)
		}
		for _, w := range warnings {
			slog.Warn(w)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, database.PoolConfig{
		ConnString:      cfg.GetDBConnString(),
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if _, err := database.Migrate(ctx, dbPool); err != nil {
		slog.Error("Failed to apply migrations", "error", err)
		os.Exit(1)
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	notificationService := notification.NewService(repos.Notification, publisher)
	gamificationService := gamification.NewService(repos.Gamification, publisher,
		gamification.WithCache(cfg.ProfileCacheSize, cfg.ProfileCacheTTL))

	hub := relay.NewHub()
	bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:            eventBus,
		NotificationService: notificationService,
		Hub:                 hub,
	})

	handler.InitValidator()

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		AllowedOrigins: cfg.WSAllowedOrigins,
		Version:        version,
		DBPool:         dbPool,
		Notifications:  notificationService,
		Games:          gamificationService,
		Hub:            hub,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:              srv,
		GamificationService: gamificationService,
		ResilientPublisher:  publisher,
	})
}
