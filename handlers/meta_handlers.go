package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"voicenotes/models"
)

// ServiceName identifies this API in health checks and descriptors.
const ServiceName = "voicenotes-api"

// Health reports service liveness.
func (h *ApplicationHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(models.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Service:   ServiceName,
	})
}

// Describe returns the service descriptor with the endpoint map.
func (h *ApplicationHandler) Describe(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"service":     ServiceName,
		"description": "Converts recorded audio into AI-structured study notes",
		"endpoints": fiber.Map{
			"health":         "GET /api/health",
			"uploadAudio":    "POST /api/upload-audio",
			"transcribe":     "POST /api/transcribe",
			"structureNotes": "POST /api/structure-notes",
		},
	})
}
