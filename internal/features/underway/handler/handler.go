package handler

import (
	"voyage-tracker/internal/features/underway/service"

	"github.com/gofiber/fiber/v2"
)

// UnderwayHandler handles HTTP requests for snapshot operations.
type UnderwayHandler struct {
	refreshService *service.RefreshService
}

// NewUnderwayHandler creates a new UnderwayHandler.
func NewUnderwayHandler(refreshService *service.RefreshService) *UnderwayHandler {
	return &UnderwayHandler{
		refreshService: refreshService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// Refresh godoc
// @Summary Refresh the observation snapshot
// @Description Fetches new observations from the underway feed and merges them into the local snapshot
// @Tags underway
// @Produce json
// @Success 200 {object} service.RefreshResult
// @Failure 502 {object} ErrorResponse
// @Router /underway/refresh [post]
func (h *UnderwayHandler) Refresh(c *fiber.Ctx) error {
	result, err := h.refreshService.Refresh(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(result)
}

// Status godoc
// @Summary Get snapshot status
// @Description Reports the snapshot size, latest observation time and the last refresh outcome
// @Tags underway
// @Produce json
// @Success 200 {object} service.SnapshotStatus
// @Failure 500 {object} ErrorResponse
// @Router /underway/status [get]
func (h *UnderwayHandler) Status(c *fiber.Ctx) error {
	status, err := h.refreshService.Status(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(status)
}
