package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/elric-cpu/website-v4-api/internal/authgateway"
	"github.com/elric-cpu/website-v4-api/internal/config"
	"github.com/elric-cpu/website-v4-api/internal/database"
	"github.com/elric-cpu/website-v4-api/internal/handlers"
	"github.com/elric-cpu/website-v4-api/internal/logger"
	"github.com/elric-cpu/website-v4-api/internal/metrics"
	"github.com/elric-cpu/website-v4-api/internal/middleware"
	"github.com/elric-cpu/website-v4-api/internal/repository"
	"github.com/elric-cpu/website-v4-api/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting website API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	// Create database connection pool
	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	collector := metrics.NewCollector("website_v4")

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Metrics -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Metrics(collector))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Register health check and metrics routes
	healthHandler := handlers.NewHealthHandler(db, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Initialize repository and service layers
	leadRepo := repository.NewLeadRepository(db)
	forwarder := services.NewHTTPForwarder(log, collector.LeadForwardDuration)
	leadService := services.NewLeadService(leadRepo, forwarder, cfg.Leads, log)

	// Initialize handlers
	localizationHandler := handlers.NewLocalizationHandler(collector)
	calculatorHandler := handlers.NewCalculatorHandler(collector)
	leadHandler := handlers.NewLeadHandler(leadService, cfg.Leads.ContactPhone, collector)

	// Register API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/localization", localizationHandler.Resolve)
		v1.POST("/calculators/:kind/estimate", calculatorHandler.Estimate)
		v1.POST("/leads/:category", leadHandler.Submit)
	}

	// Auth routes are only mounted when a provider is configured.
	gateway, err := authgateway.New(cfg.Auth,
		authgateway.NewHTTPProvider(cfg.Auth.ProviderURL, cfg.Auth.ProviderAPIKey, log), log)
	switch {
	case err == nil:
		authHandler := handlers.NewAuthHandler(gateway, collector)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/magic-link", authHandler.MagicLink)
			auth.POST("/signup", authHandler.SignUp)
			auth.POST("/oauth/:provider", authHandler.OAuth)
			auth.GET("/profile-status", authHandler.ProfileStatus)
		}
		log.Info("Auth routes enabled", map[string]interface{}{
			"provider_url":    cfg.Auth.ProviderURL,
			"oauth_providers": cfg.Auth.OAuthProviders,
		})
	case errors.Is(err, authgateway.ErrNotConfigured):
		log.Warn("Auth provider not configured, auth routes disabled", nil)
	default:
		log.Fatal("Failed to initialize auth gateway", err, nil)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
