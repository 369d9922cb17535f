package handler

import (
	"github.com/gofiber/fiber/v2"

	"spotapi/internal/service"
)

// RegisterRoutes attaches the health and spot routes to app.
// store backs the readiness check and is usually the spot repository.
func RegisterRoutes(app *fiber.App, store Pinger, svc service.SpotService) {
	app.Get("/health", HealthCheck(store))
	app.Get("/healthz", LivenessProbe())

	spots := app.Group("/spots")
	spots.Get("/", ListSpots(svc))
	spots.Post("/", CreateSpot(svc))
	spots.Get("/:name", GetSpot(svc))
	spots.Delete("/:name", DeleteSpot(svc))
	spots.Get("/:name/image", GetSpotImage(svc))
}
