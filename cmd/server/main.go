package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blog-platform/internal/config"
	"github.com/blog-platform/internal/database"
	"github.com/blog-platform/internal/mail"
	"github.com/blog-platform/internal/repository"
	"github.com/blog-platform/internal/service"
	"github.com/blog-platform/internal/web"
	"github.com/blog-platform/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// A local .env is optional; real deployments set the environment.
	_ = godotenv.Load()

	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting blog server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories and services
	repos := repository.New(db)
	services := service.NewServices(repos, cfg, log)
	relay := mail.NewRelay(&cfg.Mail, log)

	// Sweep expired sessions in the background
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go sweepSessions(sweepCtx, repos.Session, log)

	// Initialize router
	router := web.NewRouter(services, relay, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

// sweepSessions periodically deletes expired sessions. Expired tokens are
// already rejected at read time; this just keeps the table from growing.
func sweepSessions(ctx context.Context, sessions repository.SessionRepository, log zerolog.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := sessions.DeleteExpired(ctx)
			if err != nil {
				log.Error().Err(err).Msg("Session sweep failed")
				continue
			}
			if removed > 0 {
				log.Info().Int64("removed", removed).Msg("Expired sessions swept")
			}
		}
	}
}
