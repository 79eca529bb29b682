package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"powercup-backend/internal/api/handlers"
	"powercup-backend/internal/api/routes"
	"powercup-backend/internal/auth"
	"powercup-backend/internal/config"
	"powercup-backend/internal/database"
	"powercup-backend/internal/logger"
	"powercup-backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	_ "powercup-backend/docs" // This is needed for swag
)

//	@title			PowerCup Backend API
//	@version		1.0
//	@description	Backend API for PowerCup: user accounts, teams with roles and invitations, matches and tournaments.

//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT

//	@host		localhost:8000
//	@BasePath	/

//	@securityDefinitions.apikey	CookieAuth
//	@in							cookie
//	@name						access_token
//	@description				Session cookie set by /auth/login or /admin/login.

func main() {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger.Setup(cfg.LogLevel)
	logrus.SetOutput(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Initialize(cfg.DatabaseURL, nil)
	if err != nil {
		logrus.Fatal("Failed to initialize database:", err)
	}

	posters, err := storage.NewS3Storage(ctx, cfg)
	if err != nil {
		logrus.Fatal("Failed to initialize poster storage:", err)
	}

	deps := routes.Dependencies{
		Posters:      posters,
		HealthChecks: map[string]handlers.Pinger{},
	}
	if cfg.RedisURL != "" {
		revocations, err := auth.NewRedisRevocationStore(ctx, cfg.RedisURL)
		if err != nil {
			logrus.Fatal("Failed to connect to Redis:", err)
		}
		defer revocations.Close()
		deps.Revocations = revocations
		deps.HealthChecks["redis"] = revocations
	} else {
		logrus.Warn("REDIS_URL is not set, logout will not revoke tokens")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := routes.SetupRoutes(ctx, db, cfg, deps)
	if err != nil {
		logrus.Fatal("Failed to set up routes:", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Graceful shutdown failed: %v", err)
	}
}
