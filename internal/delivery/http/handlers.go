package http

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/weatherdash/backend/internal/dashboard"
	"github.com/weatherdash/backend/internal/service"
	"github.com/weatherdash/backend/pkg/utils"
)

// Handler contains all HTTP handlers
type Handler struct {
	weatherSvc *service.WeatherService
	renderer   *dashboard.Renderer
}

// NewHandler creates a new handler
func NewHandler(weatherSvc *service.WeatherService, renderer *dashboard.Renderer) *Handler {
	return &Handler{
		weatherSvc: weatherSvc,
		renderer:   renderer,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	status, storage, code := "ok", "ok", fiber.StatusOK
	if err := h.weatherSvc.Health(c.Context()); err != nil {
		log.Printf("Health check: lookup log storage unavailable: %v", err)
		status, storage, code = "degraded", "unavailable", fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"service": "weather-dashboard",
		"version": "1.0.0",
		"storage": storage,
	})
}

// GetWeather resolves ?city= or ?lat=&lon= and returns the reshaped forecast
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	ctx := c.Context()

	forecast, err := h.weatherSvc.LookupParams(ctx, c.Query("city"), c.Query("lat"), c.Query("lon"))
	if err != nil {
		return lookupError(err)
	}

	return c.JSON(forecast)
}

// GetLookups returns the most recent lookup log records
func (h *Handler) GetLookups(c *fiber.Ctx) error {
	ctx := c.Context()

	limit := utils.Clamp(c.QueryInt("limit", 20), 1, 100)

	data, err := h.weatherSvc.RecentLookups(ctx, limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch lookup history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}
