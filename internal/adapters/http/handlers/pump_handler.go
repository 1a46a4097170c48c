package handlers

import (
	"petrol-tracker/internal/core/services"
	"petrol-tracker/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PumpHandler handles pump endpoints
type PumpHandler struct {
	stationService *services.StationService
}

// NewPumpHandler creates a new pump handler
func NewPumpHandler(stationService *services.StationService) *PumpHandler {
	return &PumpHandler{stationService: stationService}
}

// ListPumps lists pumps
// @Summary List pumps
// @Tags Pumps
// @Produce json
// @Param station_id query int false "Station ID"
// @Success 200 {object} response.Response
// @Router /pumps [get]
func (h *PumpHandler) ListPumps(c *fiber.Ctx) error {
	stationID, err := queryUint(c, "station_id")
	if err != nil {
		return response.BadRequest(c, "Invalid station_id")
	}

	pumps, err := h.stationService.ListPumps(c.Context(), stationID)
	if err != nil {
		return serviceError(c, err, "Failed to list pumps")
	}

	return response.Success(c, "Pumps retrieved successfully", fiber.Map{
		"pumps": pumps,
	})
}

// GetPump gets a pump
// @Summary Get pump
// @Tags Pumps
// @Produce json
// @Param id path int true "Pump ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /pumps/{id} [get]
func (h *PumpHandler) GetPump(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid pump ID")
	}

	pump, err := h.stationService.GetPump(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to get pump")
	}

	return response.Success(c, "Pump retrieved successfully", fiber.Map{
		"pump": pump,
	})
}

// CreatePump creates a pump
// @Summary Create pump
// @Tags Pumps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreatePumpInput true "Pump data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /pumps [post]
func (h *PumpHandler) CreatePump(c *fiber.Ctx) error {
	var input services.CreatePumpInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	pump, err := h.stationService.CreatePump(c.Context(), &input)
	if err != nil {
		return serviceError(c, err, "Failed to create pump")
	}

	return response.Created(c, "Pump created successfully", fiber.Map{
		"pump": pump,
	})
}

// UpdatePump updates a pump
// @Summary Update pump
// @Tags Pumps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pump ID"
// @Param body body services.UpdatePumpInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /pumps/{id} [patch]
func (h *PumpHandler) UpdatePump(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid pump ID")
	}

	var input services.UpdatePumpInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	pump, err := h.stationService.UpdatePump(c.Context(), id, &input)
	if err != nil {
		return serviceError(c, err, "Failed to update pump")
	}

	return response.Success(c, "Pump updated successfully", fiber.Map{
		"pump": pump,
	})
}

// DeletePump deletes a pump
// @Summary Delete pump
// @Tags Pumps
// @Security BearerAuth
// @Param id path int true "Pump ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /pumps/{id} [delete]
func (h *PumpHandler) DeletePump(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid pump ID")
	}

	if err := h.stationService.DeletePump(c.Context(), id); err != nil {
		return serviceError(c, err, "Failed to delete pump")
	}

	return response.NoContent(c)
}
