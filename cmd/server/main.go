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
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/greet-marketplace/service-bookings/internal/application"
	"github.com/greet-marketplace/service-bookings/internal/config"
	"github.com/greet-marketplace/service-bookings/internal/consumer"
	listingDomain "github.com/greet-marketplace/service-bookings/internal/domain/listing"
	"github.com/greet-marketplace/service-bookings/internal/handler"
	"github.com/greet-marketplace/service-bookings/internal/notifier"
	"github.com/greet-marketplace/service-bookings/internal/platform/auth"
	"github.com/greet-marketplace/service-bookings/internal/platform/database"
	"github.com/greet-marketplace/service-bookings/internal/platform/health"
	"github.com/greet-marketplace/service-bookings/internal/platform/kafka"
	"github.com/greet-marketplace/service-bookings/internal/platform/logger"
	"github.com/greet-marketplace/service-bookings/internal/platform/middleware"
	"github.com/greet-marketplace/service-bookings/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-bookings")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-bookings",
		zap.String("port", cfg.Port),
		zap.Bool("notifications_enabled", cfg.NotificationsEnabled),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig.DSN(), log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.BusinessModel{},
			&repository.UserModel{},
			&repository.ListingModel{},
			&repository.BookingModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.URL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, 15*time.Minute)

	// Initialize Kafka producer and the transition notifier. The feature
	// flag is read once here; when disabled, a no-op notifier is wired in.
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	var bookingNotifier notifier.Notifier
	if cfg.NotificationsEnabled {
		bookingNotifier = notifier.NewKafkaNotifier(kafkaProducer, log)
	} else {
		bookingNotifier = notifier.NewNopNotifier()
		log.Warn("notification dispatch disabled by configuration")
	}

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db)

	var listingRepo listingDomain.ListingRepository = repository.NewGormListingRepository(db)
	if cfg.RedisConfig.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConfig.Addr,
			Password: cfg.RedisConfig.Password,
			DB:       cfg.RedisConfig.DB,
		})
		defer func() { _ = redisClient.Close() }()
		listingRepo = repository.NewCachedListingRepository(listingRepo, redisClient, log)
		log.Info("listing cache enabled", zap.String("redis_addr", cfg.RedisConfig.Addr))
	}

	// Initialize application service
	bookingService := application.NewBookingService(bookingRepo, listingRepo, bookingNotifier, log)

	// Initialize and start the content event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	groupID := cfg.KafkaConfig.GroupPrefix + "bookings-service"
	contentConsumer := consumer.NewContentEventConsumer(
		cfg.KafkaConfig.Brokers,
		groupID,
		bookingService,
		log,
	)
	defer func() { _ = contentConsumer.Close() }()

	go func() {
		log.Info("starting content event consumer")
		if err := contentConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("content event consumer error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	adminHandler := handler.NewAdminBookingHandler(bookingService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-bookings")
	healthHandler.RegisterRoutes(router)

	// Register routes
	bookingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	adminHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-bookings...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-bookings stopped")
}
