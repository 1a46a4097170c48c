package handlers

import (
	"petrol-tracker/internal/core/services"
	"petrol-tracker/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StationHandler handles station endpoints
type StationHandler struct {
	stationService *services.StationService
}

// NewStationHandler creates a new station handler
func NewStationHandler(stationService *services.StationService) *StationHandler {
	return &StationHandler{stationService: stationService}
}

// ListStations lists stations
// @Summary List stations
// @Description Active stations, or every station with all=true
// @Tags Stations
// @Produce json
// @Param all query bool false "Include inactive"
// @Success 200 {object} response.Response
// @Router /stations [get]
func (h *StationHandler) ListStations(c *fiber.Ctx) error {
	stations, err := h.stationService.ListStations(c.Context(), c.QueryBool("all"))
	if err != nil {
		return serviceError(c, err, "Failed to list stations")
	}

	return response.Success(c, "Stations retrieved successfully", fiber.Map{
		"stations": stations,
	})
}

// GetStation gets a station with its pumps, staff and inventory
// @Summary Get station
// @Tags Stations
// @Produce json
// @Param id path int true "Station ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /stations/{id} [get]
func (h *StationHandler) GetStation(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid station ID")
	}

	station, err := h.stationService.GetStation(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to get station")
	}

	return response.Success(c, "Station retrieved successfully", fiber.Map{
		"station": station,
	})
}

// CreateStation creates a station
// @Summary Create station
// @Tags Stations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateStationInput true "Station data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /stations [post]
func (h *StationHandler) CreateStation(c *fiber.Ctx) error {
	var input services.CreateStationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	station, err := h.stationService.CreateStation(c.Context(), &input)
	if err != nil {
		return serviceError(c, err, "Failed to create station")
	}

	return response.Created(c, "Station created successfully", fiber.Map{
		"station": station,
	})
}

// UpdateStation updates a station
// @Summary Update station
// @Tags Stations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Station ID"
// @Param body body services.UpdateStationInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /stations/{id} [patch]
func (h *StationHandler) UpdateStation(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid station ID")
	}

	var input services.UpdateStationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	station, err := h.stationService.UpdateStation(c.Context(), id, &input)
	if err != nil {
		return serviceError(c, err, "Failed to update station")
	}

	return response.Success(c, "Station updated successfully", fiber.Map{
		"station": station,
	})
}

// DeleteStation deactivates a station
// @Summary Delete station
// @Description Soft delete: the station is marked inactive
// @Tags Stations
// @Security BearerAuth
// @Param id path int true "Station ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /stations/{id} [delete]
func (h *StationHandler) DeleteStation(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid station ID")
	}

	if err := h.stationService.DeleteStation(c.Context(), id); err != nil {
		return serviceError(c, err, "Failed to delete station")
	}

	return response.Success(c, "Station deactivated successfully", nil)
}
