package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"stockcast/internal/auth"
	"stockcast/internal/market"
	"stockcast/internal/session"
	"stockcast/internal/store"
	"stockcast/internal/web"
	"stockcast/internal/web/handlers"
	"stockcast/pkg/config"
	"stockcast/pkg/database"
	"stockcast/pkg/httputil"
	"stockcast/pkg/logger"
	"stockcast/pkg/redis"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the HTTP server.

Endpoints:
  GET  /              - redirect to /login
  GET,POST /register  - create an account
  GET,POST /login     - authenticate
  GET  /logout        - clear the session
  GET,POST /dashboard - prediction workflow (session required)
  GET,POST /feedback  - feedback form (session required)
  GET  /admin         - usage statistics
  GET  /health        - health check`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "override the listen port")
}

func runServe(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port":     cfg.Port,
		"env":      cfg.Env,
		"postgres": cfg.UsesPostgres(),
	}).Info("Initializing server")

	// 3. Open storage and run migrations
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	log.WithField("dialect", db.Dialect).Info("Connected to database")

	// 4. Session store: redis when enabled, in-process otherwise
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	var sessions session.Store
	if redisClient.Enabled() {
		sessions = session.NewRedisStore(redisClient, cfg.Session.TTL)
		log.Info("Using redis session store")
	} else {
		sessions = session.NewMemoryStore(cfg.Session.TTL)
	}

	// 5. Prune expired sessions in the background
	pruner := cron.New()
	if _, err := pruner.AddFunc("@hourly", func() {
		if err := sessions.DeleteExpired(context.Background()); err != nil {
			log.WithError(err).Warn("Session pruning failed")
		}
	}); err != nil {
		return fmt.Errorf("schedule session pruning: %w", err)
	}
	pruner.Start()
	defer pruner.Stop()

	// 6. Market data client
	httpClient := httputil.NewWithTimeout(cfg, log, cfg.Market.Timeout).
		WithRateLimit(cfg.Market.RequestsPerSec, 1)
	marketClient := market.NewClient(cfg, httpClient, log)

	// 7. Repositories and services
	users := store.NewUserRepository(db.SQL)
	predictions := store.NewPredictionRepository(db.SQL)
	feedback := store.NewFeedbackRepository(db.SQL)
	reporter := store.NewReporter(users, predictions, feedback)
	authService := auth.NewService(users, log)

	// 8. Handlers and router
	authHandler := handlers.NewAuthHandler(authService, sessions, cfg.Session.TTL, log)
	dashboardHandler := handlers.NewDashboardHandler(marketClient, predictions, log)
	feedbackHandler := handlers.NewFeedbackHandler(feedback, log)
	adminHandler := handlers.NewAdminHandler(reporter, log)

	router := web.NewRouter(cfg, authHandler, dashboardHandler, feedbackHandler, adminHandler, sessions, log)

	// 9. Start server with graceful shutdown
	server := web.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
