package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/weatherdash/backend/internal/dashboard"
	"github.com/weatherdash/backend/internal/delivery/http"
	"github.com/weatherdash/backend/internal/repository/postgres"
	"github.com/weatherdash/backend/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Configuration
	cfg := loadConfig()

	// Lookup log storage
	repo, closeRepo := openRepository(cfg)
	defer closeRepo()

	// Dependency Injection: Services
	geocoder := service.NewGeocodingClient(cfg.GeocodingURL, cfg.HTTPTimeout)
	forecaster := service.NewForecastClient(cfg.ForecastURL, cfg.HTTPTimeout)
	weatherSvc := service.NewWeatherService(geocoder, forecaster, repo)

	renderer, err := dashboard.NewRenderer()
	if err != nil {
		log.Fatalf("Dashboard templates: %v", err)
	}

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "Weather Dashboard v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency}) ${locals:requestid}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	http.SetupRoutes(app, weatherSvc, renderer)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s (%s)", cfg.Port, cfg.Env)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	weatherSvc.WaitBackground()
	log.Println("Server exited gracefully")
}

type Config struct {
	DatabaseURL   string
	GeocodingURL  string
	ForecastURL   string
	HTTPTimeout   time.Duration
	LookupLogSize int
	Port          string
	Env           string
}

func loadConfig() *Config {
	return &Config{
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		GeocodingURL:  getEnv("GEOCODING_URL", service.DefaultGeocodingURL),
		ForecastURL:   getEnv("FORECAST_URL", service.DefaultForecastURL),
		HTTPTimeout:   time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
		LookupLogSize: getEnvInt("LOOKUP_LOG_SIZE", 200),
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("GO_ENV", "development"),
	}
}

// openRepository connects to PostgreSQL, falling back to an in-memory lookup log
func openRepository(cfg *Config) (service.LookupRepository, func()) {
	memory := func() (service.LookupRepository, func()) {
		log.Println("Recording lookups in memory only")
		return postgres.NewMemoryRepository(cfg.LookupLogSize), func() {}
	}

	if cfg.DatabaseURL == "" {
		return memory()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Printf("Warning: Could not connect to database: %v", err)
		return memory()
	}

	repo := postgres.NewPostgresRepository(pool)
	if err := repo.Health(ctx); err != nil {
		log.Printf("Warning: %v", err)
		pool.Close()
		return memory()
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Printf("Warning: %v", err)
		pool.Close()
		return memory()
	}

	log.Println("Connected to PostgreSQL")
	return repo, pool.Close
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
