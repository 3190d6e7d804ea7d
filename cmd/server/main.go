package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"mediastaffing/config"
	_ "mediastaffing/docs"
	"mediastaffing/internal/adapters/auth"
	"mediastaffing/internal/adapters/email"
	httpdelivery "mediastaffing/internal/delivery/http"
	"mediastaffing/internal/delivery/http/controllers"
	"mediastaffing/internal/delivery/http/middleware"
	"mediastaffing/internal/repository/postgres"
	"mediastaffing/internal/services"
)

// @title Media Staffing API
// @version 1.0
// @description Availability and allocation API for event videographers and photographers.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	staffRepo := postgres.NewStaffRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	assignmentRepo := postgres.NewAssignmentRepository(db)
	userRepo := postgres.NewUserRepository(db)

	jwtProvider := auth.NewJWTProvider(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    "Media Staffing",
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKey,
			SecretAccessKey: cfg.AWSSecretKey,
		},
	})
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}
	renderer := email.NewTemplateRenderer()

	emailService := services.NewEmailService(mailer, renderer)
	authService := services.NewAuthService(userRepo, hasher, jwtProvider, cfg.JWTExpiry)
	rosterService := services.NewRosterService(staffRepo)
	eventService := services.NewEventService(eventRepo, assignmentRepo, staffRepo, emailService, logger)
	availabilityService := services.NewAvailabilityService(eventRepo, staffRepo, assignmentRepo)

	authController := controllers.NewAuthController(logger, authService)
	staffController := controllers.NewStaffController(logger, rosterService)
	eventController := controllers.NewEventController(logger, eventService)
	availabilityController := controllers.NewAvailabilityController(logger, availabilityService)

	mux := httpdelivery.NewRouter(
		authController,
		staffController,
		eventController,
		availabilityController,
		jwtProvider,
		logger,
	)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
