// Package main is the entry point for the Agent Console Service: the state
// and polling layer between the call-center UI and the backend API.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/agentdesk/console-service/internal/api/handlers"
	"github.com/agentdesk/console-service/internal/api/middleware"
	"github.com/agentdesk/console-service/internal/api/routes"
	"github.com/agentdesk/console-service/internal/config"
	"github.com/agentdesk/console-service/internal/core/archive"
	"github.com/agentdesk/console-service/internal/core/kv"
	mongoarchive "github.com/agentdesk/console-service/internal/infrastructure/archive/mongodb"
	rediskv "github.com/agentdesk/console-service/internal/infrastructure/kv/redis"
	"github.com/agentdesk/console-service/internal/services/auth"
	"github.com/agentdesk/console-service/internal/services/backend"
	"github.com/agentdesk/console-service/internal/services/session"
	"github.com/agentdesk/console-service/internal/services/status"
	"github.com/agentdesk/console-service/internal/services/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogging(cfg.Log)

	ctx := context.Background()

	// Persistent key-value store for token, user and language entries
	store, err := rediskv.NewStore(rediskv.Config{
		Host:     cfg.KV.Host,
		Port:     cfg.KV.Port,
		Password: cfg.KV.Password,
		DB:       cfg.KV.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize key-value store")
	}
	defer store.Close()

	// Optional durable archive for resolved requests and ended sessions
	var arc archive.Archive
	if cfg.Archive.Enabled {
		mongoArc, err := mongoarchive.NewArchive(ctx, &mongoarchive.Config{
			URI:          cfg.Archive.URI,
			DatabaseName: cfg.Archive.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize archive")
		}
		defer mongoArc.Close(ctx)

		if err := mongoArc.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to ensure archive indexes")
		}
		arc = mongoArc
	}

	backendClient, err := backend.NewClient(&backend.ClientConfig{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize backend client")
	}

	statusSvc, err := status.NewService(&status.Config{Store: store})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize status service")
	}

	authSvc, err := auth.NewService(&auth.Config{
		Backend: backendClient,
		Store:   store,
		Status:  statusSvc,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize auth service")
	}

	sessionSvc, err := session.NewService(&session.Config{
		Backend: backendClient,
		Status:  statusSvc,
		Archive: arc,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize session service")
	}

	// The backend client attaches the auth service's token to every call;
	// a 401 from any endpoint logs the agent out and resets the session.
	backend.BindAuth(backendClient, authSvc, func() {
		sessionSvc.Clear(context.Background())
		authSvc.Logout(context.Background())
	})

	billingSvc := newTracker(tracker.Billing(), cfg, backendClient, sessionSvc, statusSvc, arc)
	internationalSvc := newTracker(tracker.International(), cfg, backendClient, sessionSvc, statusSvc, arc)
	defer billingSvc.Close()
	defer internationalSvc.Close()

	// Restore persisted state from the previous run
	if err := authSvc.Restore(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to restore auth state")
	}
	if err := statusSvc.Restore(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to restore language preference")
	}

	gin.SetMode(cfg.Server.GinMode)
	router := setupRouter(store, arc, authSvc, sessionSvc, statusSvc, billingSvc, internationalSvc)

	srv := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Address()).Msg("starting console facade")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// newTracker builds a tracker instance for one service domain.
func newTracker(domain tracker.Domain, cfg *config.Config, backendClient backend.Client, sessionSvc *session.Service, statusSvc *status.Service, arc archive.Archive) *tracker.Service {
	svc, err := tracker.NewService(&tracker.Config{
		Domain:          domain,
		Backend:         backendClient,
		Sessions:        sessionSvc,
		Status:          statusSvc,
		Archive:         arc,
		PollInterval:    cfg.Poll.Interval,
		MaxPollAttempts: cfg.Poll.MaxAttempts,
	})
	if err != nil {
		log.Fatal().Err(err).Str("domain", domain.Name).Msg("failed to initialize tracker")
	}
	return svc
}

// setupLogging configures the global zerolog logger.
func setupLogging(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// setupRouter creates and configures the Gin router.
func setupRouter(store kv.Store, arc archive.Archive, authSvc *auth.Service, sessionSvc *session.Service, statusSvc *status.Service, billingSvc, internationalSvc *tracker.Service) *gin.Engine {
	router := gin.New()

	loggingMw := middleware.NewLoggingMiddleware()
	errorMw := middleware.NewErrorMiddleware()
	guard := middleware.NewGuard(authSvc)

	routesCfg := &routes.Config{
		HealthHandler:        handlers.NewHealthHandler(store, arc),
		AuthHandler:          handlers.NewAuthHandler(authSvc, sessionSvc),
		SessionHandler:       handlers.NewSessionHandler(sessionSvc),
		BillingHandler:       handlers.NewRequestsHandler(billingSvc),
		InternationalHandler: handlers.NewRequestsHandler(internationalSvc),
		StateHandler:         handlers.NewStateHandler(statusSvc, authSvc),
		SupervisorHandler:    handlers.NewSupervisorHandler(sessionSvc, billingSvc, internationalSvc),
		Guard:                guard,
	}

	routes.SetupWithMiddleware(router, routesCfg, loggingMw, errorMw)

	return router
}
