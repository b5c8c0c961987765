package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	httpapi "driveshare-backend/internal/api/http"
	"driveshare-backend/internal/config"
	"driveshare-backend/internal/logger"
	"driveshare-backend/internal/repository/postgres"
	"driveshare-backend/internal/security"
	"driveshare-backend/internal/service"
	"driveshare-backend/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting DriveShare Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
	)

	// Initialize Blob Storage
	blobs, err := storage.NewLocalStore(
		cfg.Storage.UploadDir,
		cfg.Storage.BaseURL,
		cfg.Storage.MaxFileSize<<20,
	)
	if err != nil {
		logger.Error("Failed to initialize blob storage", "error", err)
		log.Fatalf("Failed to initialize blob storage: %v", err)
	}
	logger.Info("Blob storage ready", "upload_dir", cfg.Storage.UploadDir)

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.Email.APIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
	)

	// Initialize Services
	carSvc := service.NewCarService(
		store,
		store.CarRepository,
		store.UserRepository,
		blobs,
		emailSvc,
		store.NotificationRepository,
	)
	bookingSvc := service.NewBookingService(
		store,
		store.BookingRepository,
		store.CarRepository,
		store.UserRepository,
		service.NewAvailabilityChecker(),
		emailSvc,
		store.NotificationRepository,
	)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Optional Redis for the idempotency guard
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		logger.Info("Redis idempotency guard enabled", "addr", cfg.Redis.Addr)
	}

	// Initialize HTTP handlers
	handlers := &httpapi.Handlers{
		Cars:          httpapi.NewCarHandler(carSvc),
		Bookings:      httpapi.NewBookingHandler(bookingSvc),
		Admin:         httpapi.NewAdminHandler(carSvc),
		Notifications: httpapi.NewNotificationHandler(noteSvc),
	}

	router := httpapi.NewRouter(handlers, httpapi.RouterConfig{
		Tokens:    tokenManager,
		Redis:     redisClient,
		UploadDir: cfg.Storage.UploadDir,
	})

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
