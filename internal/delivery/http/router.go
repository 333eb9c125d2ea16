package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/weatherdash/backend/internal/dashboard"
	"github.com/weatherdash/backend/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, weatherSvc *service.WeatherService, renderer *dashboard.Renderer) {
	handler := NewHandler(weatherSvc, renderer)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// JSON API
	api := app.Group("/api")
	{
		api.Get("/weather", handler.GetWeather)
		api.Get("/lookups", handler.GetLookups)
	}

	// Dashboard
	app.Get("/", handler.Index)
	app.Get("/dashboard/weather", handler.WeatherPanel)
	app.Post("/settings/theme", handler.SetTheme)
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   nethttp.FS(dashboard.StaticFS()),
		MaxAge: 3600,
	}))
}
