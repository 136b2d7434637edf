// File: tidyhome/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"tidyhome/config"
	workers "tidyhome/cron"
	"tidyhome/database"
	bookingRepoPkg "tidyhome/database/repository/booking"
	cleanerRepoPkg "tidyhome/database/repository/cleaner"
	catalogRepoPkg "tidyhome/database/repository/catalog"
	"tidyhome/handlers"
	"tidyhome/middleware"
	"tidyhome/routes"
	"tidyhome/services/booking"
	"tidyhome/services/catalog"
	"tidyhome/services/events"
	"tidyhome/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	cleanerRepo := cleanerRepoPkg.NewMongoCleanerRepo()
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()

	if err := bookingRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to create booking indexes: %v", err)
	}

	// services.
	catalogService := &catalog.DefaultCatalogService{
		Repo:     catalogRepo,
		Cache:    utils.GetCacheClient(),
		CacheTTL: 5 * time.Minute,
	}
	if err := catalogService.Seed(context.Background()); err != nil {
		logger.Sugar().Fatalf("main: failed to seed catalog: %v", err)
	}

	emitter := events.NewAsynqEmitter(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEventsDB,
	})
	defer emitter.Close()

	bookingService := booking.NewBookingService(bookingRepo, cleanerRepo, catalogService, emitter)

	// background workers.
	workers.InitEventWorker()
	rescan := workers.InitRescanJob(bookingService)
	defer rescan.Stop()

	// handlers.
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cleanerHandler := handlers.NewCleanerHandler(cleanerRepo)

	routes.RegisterRoutes(router, bookingHandler, catalogHandler, cleanerHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
