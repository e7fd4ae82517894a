package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taxpro-backend/config"
	_ "taxpro-backend/docs" // Important for Swagger
	v1 "taxpro-backend/internal/delivery/http/v1"
	"taxpro-backend/internal/domain"
	"taxpro-backend/internal/usecase"
	"taxpro-backend/pkg/email"
	"taxpro-backend/pkg/logger"
	"taxpro-backend/pkg/redis"
	"taxpro-backend/pkg/security"
	"taxpro-backend/pkg/validation"
)

// @title           TaxPro Backend API
// @version         1.0
// @description     Contact form and service catalog for the TaxPro marketing site.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting taxpro backend", "port", cfg.Port, "env", cfg.Environment)

	audit := security.InitSecurityLogger(security.Options{
		ServiceName: "taxpro-backend",
		Environment: cfg.Environment,
		File:        cfg.AuditLogFile,
	})
	defer func() { _ = audit.Sync() }()

	// 3. Setup Redis (optional, rate limiting falls back to memory)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		}
		defer func() { _ = redis.Close() }()
	}

	// 4. Setup Email Delivery
	notifier, templates := newNotifier(cfg)
	if !notifier.IsConfigured() {
		logger.Log.Warn("Email delivery not fully configured - contact form will be unavailable", "provider", cfg.EmailProvider)
	}

	// 5. Setup UseCases
	validate := validation.New()
	contactUC := usecase.NewContactUsecase(notifier, templates, validate, audit)
	healthUC := usecase.NewHealthUsecase(notifier)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Validator: validate,
		Audit:     audit,
		Config:    cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// In-flight submissions may still be waiting on the email provider
	ctx, cancel := context.WithTimeout(context.Background(), cfg.EmailTimeout*2+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

// newNotifier picks the delivery backend named by EMAIL_PROVIDER along with
// the template identifiers it understands
func newNotifier(cfg *config.Config) (domain.Notifier, usecase.ContactTemplates) {
	if cfg.EmailProvider == config.EmailProviderSMTP {
		return email.NewSMTPNotifier(cfg), usecase.ContactTemplates{
			Owner: email.TemplateOwner,
			User:  email.TemplateUser,
		}
	}
	return email.NewEmailJSClient(cfg), usecase.ContactTemplates{
		Owner: cfg.EmailJSTemplateOwner,
		User:  cfg.EmailJSTemplateUser,
	}
}
