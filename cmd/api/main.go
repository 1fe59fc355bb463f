package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/nutrilens/backend/config"
	"github.com/nutrilens/backend/internal/api"
	"github.com/nutrilens/backend/internal/middleware"
	"github.com/nutrilens/backend/internal/router"
	"github.com/nutrilens/backend/internal/server"
	"github.com/nutrilens/backend/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Redis is optional: without it the analysis cache and rate
	// limiter become no-ops.
	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	} else {
		log.Println("Redis not configured, caching and rate limiting disabled")
	}

	// S3 photo storage is optional too.
	var photos service.PhotoStore
	s3Config, err := config.NewS3Config(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize S3: %v", err)
	}
	if s3Config != nil {
		photos = service.NewS3PhotoStore(s3Config)
	} else {
		log.Println("S3 not configured, photo items keep their data URI")
	}

	cache := service.NewAnalysisCache(redisClient, service.DefaultCacheTTL)
	analyzer := service.NewAnalysisService(cfg, cache)
	logStore := service.NewDailyLogStore()

	analysisHandler := api.NewAnalysisHandler(analyzer, logStore, photos)
	dayLogHandler := api.NewDayLogHandler(logStore, cfg.Goal)
	rateLimiter := middleware.NewAnalysisRateLimiter(redisClient, cfg.RateLimit, cfg.RateLimitWindow)

	engine := router.SetupRouter(analysisHandler, dayLogHandler, rateLimiter)
	srv := server.New(cfg, engine)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s:%s...", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	// Gracefully shutdown the server
	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
