package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/atelierweb/site-backend/internal/app"
	"github.com/atelierweb/site-backend/internal/config"
	"github.com/atelierweb/site-backend/internal/db"
	"github.com/atelierweb/site-backend/internal/mailer"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Structured logger
	var logger *zap.Logger
	if cfg.IsProduction {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("failed to connect to db", zap.Error(err))
	}
	defer pool.Close()

	// Assemble application modules
	container, err := app.NewContainer(app.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		DBPool:       pool,
		JWTSecret:    cfg.JWTSecret,
		JWTTTL:       cfg.JWTAccessTokenTTL,
		BcryptCost:   cfg.BcryptCost,
		HorizonDays:  cfg.BookingHorizonDays,
		MediaDir:     cfg.MediaDir,
		Mail: mailer.Config{
			APIKeyPublic:  cfg.MailjetAPIKey,
			APIKeyPrivate: cfg.MailjetSecretKey,
			SenderEmail:   cfg.MailSender,
			SenderName:    cfg.MailSenderName,
			OperatorEmail: cfg.OperatorEmail,
		},
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("failed to assemble application", zap.Error(err))
	}

	// Seed the bootstrap admin so a fresh deployment can log in.
	if err := container.AdminService.EnsureDefault(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logger.Fatal("failed to ensure default admin", zap.Error(err))
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		logger.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	logger.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited gracefully")
}
