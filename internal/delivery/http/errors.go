package http

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/weatherdash/backend/internal/domain"
)

// Error bodies returned by the weather endpoint
const (
	MsgInvalidRequest      = "City name or coordinates are required"
	MsgLocationNotFound    = "City not found"
	MsgUpstreamUnavailable = "Failed to fetch weather data from API"
)

// lookupError converts a lookup failure into a fiber error with the documented message
func lookupError(err error) *fiber.Error {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return fiber.NewError(fiber.StatusBadRequest, MsgInvalidRequest)
	case errors.Is(err, domain.ErrLocationNotFound):
		return fiber.NewError(fiber.StatusNotFound, MsgLocationNotFound)
	default:
		return fiber.NewError(fiber.StatusInternalServerError, MsgUpstreamUnavailable)
	}
}

// ErrorHandler renders every error as {"error": message}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	} else {
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
