package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zayneb-web/OCR-SmartQuittance-Extractor/config"
	"github.com/zayneb-web/OCR-SmartQuittance-Extractor/handler"
	"github.com/zayneb-web/OCR-SmartQuittance-Extractor/middleware"
	"github.com/zayneb-web/OCR-SmartQuittance-Extractor/pkg/logger"
	"github.com/zayneb-web/OCR-SmartQuittance-Extractor/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Initialize the quittance store
	store, err := newStore(cfg)
	if err != nil {
		slog.Error("failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Initialize services
	archiveSvc, err := service.NewArchiveService(&cfg.Minio)
	if err != nil {
		slog.Error("failed to initialize MINIO service", "error", err)
		os.Exit(1)
	}

	// Ensure bucket exists
	if err := archiveSvc.EnsureBucket(context.Background()); err != nil {
		slog.Error("failed to ensure MINIO bucket", "error", err)
		os.Exit(1)
	}

	ocrSvc := service.NewOCRService(&cfg.OCR)
	processor := service.NewQuittanceProcessor(ocrSvc, store)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg)
	quittanceHandler := handler.NewQuittanceHandler(cfg, store, processor, archiveSvc)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())                 // Request ID for tracing
	router.Use(middleware.Recovery())                  // Panic recovery
	router.Use(middleware.RequestLogger())             // Access logging
	router.Use(middleware.Metrics())                   // Prometheus metrics
	router.Use(middleware.RateLimit(100, time.Minute)) // Rate limiting: 100 requests per minute

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Prometheus endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)
		protected.POST("/quittances/upload", quittanceHandler.Upload)
		protected.GET("/quittances", quittanceHandler.List)
		protected.GET("/quittances/:id", quittanceHandler.Get)
		protected.GET("/quittances/:id/status", quittanceHandler.GetStatus)
		protected.DELETE("/quittances/:id", quittanceHandler.Delete)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// newStore picks the store implementation from configuration.
func newStore(cfg *config.Config) (service.Store, error) {
	switch cfg.Store.Type {
	case "bolt":
		return service.NewBoltStore(cfg.Store.Path)
	case "memory":
		return service.NewMemoryStore(&cfg.Store), nil
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Store.Type)
	}
}
