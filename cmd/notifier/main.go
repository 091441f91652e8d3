// Command notifier keeps a real-time channel open for one user and shows every
// pushed frame as a toast in the terminal, optionally mirrored to Discord.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/firesafetykz/portal/internal/config"
	"github.com/firesafetykz/portal/internal/discord"
	"github.com/firesafetykz/portal/internal/domain"
	"github.com/firesafetykz/portal/internal/logger"
	"github.com/firesafetykz/portal/internal/realtime"
	"github.com/firesafetykz/portal/internal/toast"
)

const serviceName = "firesafety-notifier"

var version = "dev"

func main() {
	os.Exit(run())
}

// run returns the process exit code; it is non-zero when the server stays unreachable
func run() int {
	cfg, err := config.LoadNotifier()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		return 1
	}

	// stdout belongs to the toasts
	log := logger.InitLoggerWithWriter(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, serviceName, version, "", false), os.Stderr)

	endpoint, err := realtime.EndpointFromOrigin(cfg.Origin)
	if err != nil {
		log.Error("Invalid origin", "origin", cfg.Origin, "error", err)
		return 1
	}

	// json logs go to a collector, so toasts become log records there
	var sinks []toast.Sink
	if cfg.LogFormat == "json" {
		sinks = append(sinks, toast.LogSink{Logger: log})
	} else {
		sinks = append(sinks, toast.NewWriterSink(os.Stdout, true))
	}

	if cfg.DiscordEnabled() {
		session, err := discord.Open(cfg.DiscordToken)
		if err != nil {
			log.Error("Failed to open Discord session", "error", err)
			return 1
		}
		defer discord.Close(session)
		sinks = append(sinks, discord.NewNotifier(session, cfg.DiscordChannelID))
	}

	locale := domain.ParseLocale(cfg.Locale)
	presenter := toast.NewPresenter(locale, sinks...)
	dispatcher := realtime.NewDispatcher(presenter, realtime.RealClock{})

	client := realtime.NewClient(endpoint,
		realtime.Session{UserID: cfg.UserID, Locale: locale},
		dispatcher,
		realtime.WithLogger(log))

	client.OnStateChange(func(st realtime.Status) {
		log.Info("Connection state", "state", st.State.String(), "attempt", st.Attempt, "message", st.Message)
	})
	failed := failedSignal(client)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client.Connect(ctx)

	code := 0
	select {
	case <-ctx.Done():
	case st := <-failed:
		log.Error("Server unreachable, giving up", "attempts", st.Attempt, "error", st.LastError)
		code = 1
	}

	client.Disconnect()
	log.Info("Notifier stopped", "unread", presenter.Badge())
	return code
}

// failedSignal delivers the first Failed status of client. Register it before Connect.
func failedSignal(client *realtime.Client) <-chan realtime.Status {
	failed := make(chan realtime.Status, 1)
	client.OnStateChange(func(st realtime.Status) {
		if st.State != realtime.StateFailed {
			return
		}
		select {
		case failed <- st:
		default:
		}
	})
	return failed
}
