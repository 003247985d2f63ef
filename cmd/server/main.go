package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fullstack/taskboard/internal/config"
	"github.com/fullstack/taskboard/internal/database"
	"github.com/fullstack/taskboard/internal/handlers"
	"github.com/fullstack/taskboard/internal/repository"
	"github.com/fullstack/taskboard/internal/security"
	"github.com/fullstack/taskboard/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
	}

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db, logger); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	store := repository.NewStore(db)

	// Initialize AI service
	var generator services.TaskGenerator
	if cfg.OpenAIAPIKey != "" {
		generator = services.NewAIService(cfg.OpenAIAPIKey)
	} else {
		logger.Info("OPENAI_API_KEY not set, task generation disabled")
	}

	userService := services.NewUserService(store, security.BcryptHasher{})
	taskService := services.NewTaskService(store, generator)

	sessionStore, err := handlers.NewSessionStore(cfg)
	if err != nil {
		logger.Fatalf("Failed to create session store: %v", err)
	}

	router := gin.New()
	handlers.RegisterRoutes(router, handlers.Dependencies{
		Users:        userService,
		Tasks:        taskService,
		SessionStore: sessionStore,
		Logger:       logger,
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: router,
	}

	go func() {
		logger.Infof("Server starting on %s", cfg.ServerAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("HTTP shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("Server stopped")
}
