package main

import (
	"chitrashala/internal/app"
	"chitrashala/pkg/cache"
	"chitrashala/pkg/config"
	"chitrashala/pkg/database"
	"chitrashala/pkg/logger"
	"chitrashala/pkg/mediastore"
	"chitrashala/pkg/queue"
)

// @title           Chitrashala API
// @version         1.0
// @description     Media sharing service: upload images and videos, tag them, and search public posts.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Migrations are handled by goose - see cmd/migrate/main.go

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	mediaClient, err := mediastore.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create media store client: %v", err)
		panic(err)
	}

	// Post events are best effort; run without the queue if it is down.
	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ, continuing without post events: %v", err)
		queueClient = nil
	}

	app.Run(cfg, log, db, mediaClient, queueClient, redisClient)
}
