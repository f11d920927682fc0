package main

import (
	"leave-service/internal/router"
	"leave-service/pkg/config"
	"leave-service/pkg/database"
	"leave-service/pkg/jwtutil"
	"leave-service/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting leave service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Seed bootstrap accounts
	if cfg.Seed.Enabled {
		if err := database.EnsureSeedUsers(cfg); err != nil {
			log.Fatal("Failed to seed users", zap.Error(err))
		}
		log.Info("Seed users ensured")
	}

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Build router with the full middleware chain
	e := router.New(log)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
