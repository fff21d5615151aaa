package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tahseel-app/tahseel-backend/config"
	"github.com/tahseel-app/tahseel-backend/db"
	"github.com/tahseel-app/tahseel-backend/handlers"
	"github.com/tahseel-app/tahseel-backend/internal/access"
	"github.com/tahseel-app/tahseel-backend/internal/store/postgres"
	"github.com/tahseel-app/tahseel-backend/logger"
	"github.com/tahseel-app/tahseel-backend/router"
	"github.com/tahseel-app/tahseel-backend/services"
)

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() {
		_ = logger.Close()
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL())
	if err != nil {
		log.Fatalf("Failed to parse database config: %v", err)
	}
	if cfg.Database.MaxOpenConns > 0 {
		poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.ConnMaxLife != "" {
		if life, err := time.ParseDuration(cfg.Database.ConnMaxLife); err == nil {
			poolConfig.MaxConnLifetime = life
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Stores
	userStore := postgres.NewUserStore(pool)
	projectStore := postgres.NewProjectStore(pool)
	membershipStore := postgres.NewMembershipStore(pool)
	tripStore := postgres.NewTripStore(pool)
	participantStore := postgres.NewParticipantStore(pool)
	paymentStore := postgres.NewPaymentStore(pool)

	evaluator := access.NewEvaluator(membershipStore, tripStore, projectStore, userStore)

	// Services
	emailService := services.NewEmailService(&cfg.Email, cfg.Server.FrontendURL)
	authService := services.NewAuthService(userStore, emailService, cfg.Server.JwtSecretKey)
	projectService := services.NewProjectService(projectStore, membershipStore, userStore, evaluator)
	tripService := services.NewTripService(tripStore, evaluator)
	participantService := services.NewParticipantService(participantStore, paymentStore, userStore, evaluator)
	paymentService := services.NewPaymentService(paymentStore, participantStore, evaluator)
	reportService := services.NewReportService(
		projectStore, membershipStore, tripStore, participantStore, paymentStore, userStore, evaluator)
	adminService := services.NewAdminService(userStore, projectStore, tripStore, paymentStore, evaluator)

	r := router.SetupRouter(router.Dependencies{
		Config:             cfg,
		AuthHandler:        handlers.NewAuthHandler(authService),
		ProjectHandler:     handlers.NewProjectHandler(projectService),
		TripHandler:        handlers.NewTripHandler(tripService),
		ParticipantHandler: handlers.NewParticipantHandler(participantService),
		PaymentHandler:     handlers.NewPaymentHandler(paymentService),
		ReportHandler:      handlers.NewReportHandler(reportService),
		AdminHandler:       handlers.NewAdminHandler(adminService),
		HealthHandler:      handlers.NewHealthHandler(pool, cfg.Server.Version),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Server shutdown failed", "error", err)
	}
	log.Info("Server stopped")
}
