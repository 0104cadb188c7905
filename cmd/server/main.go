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
	"go.uber.org/zap"

	"github.com/grandlux-hotels/service-reservation/internal/application"
	"github.com/grandlux-hotels/service-reservation/internal/config"
	reservationEvents "github.com/grandlux-hotels/service-reservation/internal/events"
	"github.com/grandlux-hotels/service-reservation/internal/handler"
	"github.com/grandlux-hotels/service-reservation/internal/repository"
	"github.com/grandlux-hotels/service-reservation/pkg/database"
	"github.com/grandlux-hotels/service-reservation/pkg/health"
	"github.com/grandlux-hotels/service-reservation/pkg/kafka"
	"github.com/grandlux-hotels/service-reservation/pkg/logger"
	"github.com/grandlux-hotels/service-reservation/pkg/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-reservation")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-reservation",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.ClientModel{},
			&repository.RoomModel{},
			&repository.ReservationModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repositories
	reservationRepo := repository.NewGormReservationRepository(db)
	roomRepo := repository.NewGormRoomRepository(db)
	clientRepo := repository.NewGormClientRepository(db)

	// Initialize application services
	reservationService := application.NewReservationService(
		reservationRepo,
		roomRepo,
		clientRepo,
		kafkaProducer,
		log,
	)
	roomService := application.NewRoomService(roomRepo, reservationRepo, log)
	clientService := application.NewClientService(clientRepo, log)

	// Start the front-desk confirmation consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	groupID := cfg.KafkaConfig.GroupPrefix + "reservation-service"
	confirmationConsumer := reservationEvents.NewConfirmationConsumer(
		cfg.KafkaConfig.Brokers,
		groupID,
		reservationService,
		log,
	)
	defer func() { _ = confirmationConsumer.Close() }()

	go func() {
		log.Info("starting frontdesk confirmation consumer")
		if err := confirmationConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("confirmation consumer error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	reservationHandler := handler.NewReservationHandler(reservationService)
	roomHandler := handler.NewRoomHandler(roomService)
	clientHandler := handler.NewClientHandler(clientService)

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
	healthHandler := health.NewHandler(db, "service-reservation")
	healthHandler.RegisterRoutes(router)

	// Register routes
	reservationHandler.RegisterRoutes(&router.RouterGroup)
	roomHandler.RegisterRoutes(&router.RouterGroup)
	clientHandler.RegisterRoutes(&router.RouterGroup)

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

	log.Info("shutting down service-reservation...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-reservation stopped")
}
