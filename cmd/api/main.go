package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/campusbook/appointments/internal/http/handlers"
	mw "github.com/campusbook/appointments/internal/http/middleware"
	"github.com/campusbook/appointments/internal/repo/postgres"
	"github.com/campusbook/appointments/internal/service"
	"github.com/campusbook/appointments/pkg/config"
	"github.com/campusbook/appointments/pkg/database"
	"github.com/campusbook/appointments/pkg/events"
	"github.com/campusbook/appointments/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Idempotent schema; missing file is fine on a pre-migrated database.
	if migration, err := os.ReadFile("db/migrations/001_init.sql"); err != nil {
		logger.Warn("Migration file not found, skipping", "error", err)
	} else if _, err := pool.Exec(ctx, string(migration)); err != nil {
		logger.Error("Failed to apply migration", "error", err)
		os.Exit(1)
	}

	publisher, err := events.NewNATSPublisher(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Error("Invalid Redis URL", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	usersRepo := postgres.NewUsersRepo(pool)
	slotsRepo := postgres.NewSlotsRepo(pool)
	appointmentsRepo := postgres.NewAppointmentsRepo(pool)

	authService := service.NewAuthService(usersRepo, cfg)
	bookingService := service.NewBookingService(slotsRepo, appointmentsRepo, publisher)

	h := handlers.New(authService, bookingService)
	rateLimiter := mw.NewRateLimiter(redisClient, cfg.RateLimit)

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(mw.Health)

	r.Mount("/", h.Routes(
		mw.RequireAuth(cfg.Auth.JWTSecret, usersRepo),
		rateLimiter.Middleware(),
	))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down appointments service...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Shutdown error", "error", err)
		}
	}()

	logger.Info("Starting appointments service", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
