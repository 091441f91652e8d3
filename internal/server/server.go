package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/firesafetykz/portal/internal/database"
	"github.com/firesafetykz/portal/internal/gamification"
	"github.com/firesafetykz/portal/internal/handler"
	"github.com/firesafetykz/portal/internal/logger"
	"github.com/firesafetykz/portal/internal/metrics"
	"github.com/firesafetykz/portal/internal/notification"
	"github.com/firesafetykz/portal/internal/realtime"
	"github.com/firesafetykz/portal/internal/relay"
)

// Options carries everything the HTTP surface is wired to
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	AllowedOrigins []string
	Version        string

	DBPool        database.Pool
	Notifications notification.Service
	Games         gamification.Service
	Hub           *relay.Hub
	// Authenticator decides who may bind a socket; nil accepts any well-formed user id
	Authenticator relay.Authenticator
}

type Server struct {
	httpServer *http.Server
	hub        *relay.Hub
}

// NewServer creates a new Server instance
func NewServer(opts Options) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts),
			ReadHeaderTimeout: 5 * time.Second,
		},
		hub: opts.Hub,
	}
}

// NewRouter builds the chi router. Middleware runs in the order it is added.
func NewRouter(opts Options) chi.Router {
	r := chi.NewRouter()

	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(SecurityLoggingMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(opts.DBPool))
	r.Get("/version", handler.HandleVersion(opts.Version))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	if opts.Hub != nil {
		r.Get(realtime.Path, relay.Handler(opts.Hub, opts.Authenticator, opts.AllowedOrigins))
	}

	requireKey := AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector)

	r.Route("/api", func(r chi.Router) {
		if opts.Notifications != nil {
			h := handler.NewNotificationHandler(opts.Notifications)
			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.HandleList)
				r.Get("/unread-count", h.HandleUnreadCount)
				r.Put("/read-all", h.HandleMarkAllRead)
				r.Put("/{id}/read", h.HandleMarkRead)
				r.Delete("/{id}", h.HandleDelete)

				// server-to-server writes
				r.Group(func(r chi.Router) {
					r.Use(requireKey)
					r.Post("/", h.HandleCreate)
					r.Post("/broadcast", h.HandleBroadcast)
				})
			})
		}

		if opts.Games != nil {
			h := handler.NewGameHandler(opts.Games)
			r.Route("/games", func(r chi.Router) {
				r.Get("/levels", h.HandleLevels)
				r.Get("/achievements", h.HandleAchievements)
				r.Get("/scenarios", h.HandleScenarios)
				r.Get("/profile", h.HandleProfile)
				r.Post("/sessions", h.HandleStartSession)
				r.Post("/sessions/{id}/complete", h.HandleCompleteSession)
			})
		}
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Hijack hands the connection to the WebSocket upgrader. The handshake response
// is written on the raw connection, so the status is recorded here.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New(ErrMsgHijackUnsupported)
	}
	rw.statusCode = http.StatusSwitchingProtocols
	rw.written = true
	return h.Hijack()
}

func isQuietPath(path string) bool {
	return strings.HasPrefix(path, "/healthz") ||
		strings.HasPrefix(path, "/readyz") ||
		strings.HasPrefix(path, "/metrics")
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop closes open sockets with a going-away frame, then drains HTTP requests.
// Shutdown does not wait for hijacked connections, so the hub goes first.
func (s *Server) Stop(ctx context.Context) error {
	if s.hub != nil {
		s.hub.Close()
	}
	return s.httpServer.Shutdown(ctx)
}
