package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"contact-service/internal/config"
	"contact-service/internal/content"
	"contact-service/internal/handlers"
	"contact-service/internal/middleware"
	"contact-service/internal/services"
)

func main() {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.App.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	// Initialize email provider and dispatcher
	provider := services.SelectProvider(&services.ProviderConfig{
		MailerSendAPIKey:   cfg.Email.MailerSendAPIKey,
		SendGridAPIKey:     cfg.Email.SendGridAPIKey,
		AWSRegion:          cfg.Email.AWSRegion,
		AWSAccessKeyID:     cfg.Email.AWSAccessKeyID,
		AWSSecretAccessKey: cfg.Email.AWSSecretAccessKey,
		SESFrom:            cfg.Email.SESFrom,
		SMTPHost:           cfg.Email.SMTPHost,
		SMTPPort:           cfg.Email.SMTPPort,
		SMTPUsername:       cfg.Email.SMTPUsername,
		SMTPPassword:       cfg.Email.SMTPPassword,
	})
	dispatcher := services.NewDispatcher(provider, cfg.Email.ContactRecipient)

	// Initialize content client (optional - content routes need a project id)
	var contentClient *content.Client
	if cfg.Content.SanityProjectID != "" {
		contentClient = content.NewClient(&cfg.Content)
		logrus.Infof("Content store configured: project %s, dataset %s",
			cfg.Content.SanityProjectID, cfg.Content.SanityDataset)
	} else {
		logrus.Warn("SANITY_PROJECT_ID not set - content endpoints disabled")
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(provider)
	contactHandler := handlers.NewContactHandler(dispatcher, !cfg.App.IsProduction())
	var contentHandler *handlers.ContentHandler
	if contentClient != nil {
		contentHandler = handlers.NewContentHandler(contentClient)
	}

	router := setupRouter(cfg, healthHandler, contactHandler, contentHandler)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logrus.Infof("Starting Contact Service on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down Contact Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Contact Service stopped")
}

// setupRouter configures the Gin router with middleware and routes
func setupRouter(
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	contactHandler *handlers.ContactHandler,
	contentHandler *handlers.ContentHandler,
) *gin.Engine {
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	// Health check endpoints
	router.GET("/health", healthHandler.Health)
	router.GET("/livez", healthHandler.Livez)
	router.GET("/readyz", healthHandler.Readyz)

	// API routes
	api := router.Group("/api")
	{
		api.POST("/contact", contactHandler.Submit)

		if contentHandler != nil {
			api.GET("/portfolio", contentHandler.ListPortfolio)
			api.GET("/portfolio/:slug", contentHandler.GetPortfolioItem)
			api.GET("/blog", contentHandler.ListBlogPosts)
			api.GET("/blog/:slug", contentHandler.GetBlogPost)
			api.GET("/services", contentHandler.ListServices)
		}
	}

	return router
}
