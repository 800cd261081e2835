package handler

import (
	"net/http"

	"voyage-tracker/internal/core/logger"
	"voyage-tracker/internal/features/voyages/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// VoyageHandler handles HTTP requests for voyage detection.
type VoyageHandler struct {
	detectionService *service.DetectionService
}

// NewVoyageHandler creates a new VoyageHandler.
func NewVoyageHandler(s *service.DetectionService) *VoyageHandler {
	return &VoyageHandler{
		detectionService: s,
	}
}

// GetDraft handles the request for the draft voyage log.
// @Summary Get the draft voyage log
// @Description Returns the auto-detected voyage log derived from the observation snapshot. Served from cache when available.
// @Tags voyages
// @Produce json
// @Param refresh query bool false "Bypass the cache and recompute from the full history"
// @Success 200 {object} domain.VoyageLog
// @Failure 500 {object} ErrorResponse
// @Router /voyages/draft [get]
func (h *VoyageHandler) GetDraft(c *fiber.Ctx) error {
	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		rayID = "unknown"
	}

	force := c.QueryBool("refresh")

	log, err := h.detectionService.Draft(c.Context(), force)
	if err != nil {
		logger.Get().Error("Failed to build draft voyage log",
			zap.Bool("refresh", force),
			zap.String("ray_id", rayID),
			zap.Error(err),
		)

		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(log)
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}
