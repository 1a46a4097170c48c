package handlers

import (
	"petrol-tracker/internal/adapters/persistence/repositories"
	"petrol-tracker/internal/core/services"
	"petrol-tracker/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StaffHandler handles staff endpoints
type StaffHandler struct {
	stationService *services.StationService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(stationService *services.StationService) *StaffHandler {
	return &StaffHandler{stationService: stationService}
}

// ListStaff lists staff
// @Summary List staff
// @Tags Staff
// @Produce json
// @Param station_id query int false "Station ID"
// @Param all query bool false "Include inactive"
// @Success 200 {object} response.Response
// @Router /staff [get]
func (h *StaffHandler) ListStaff(c *fiber.Ctx) error {
	stationID, err := queryUint(c, "station_id")
	if err != nil {
		return response.BadRequest(c, "Invalid station_id")
	}

	staff, err := h.stationService.ListStaff(c.Context(), repositories.StaffFilter{
		StationID:       stationID,
		IncludeInactive: c.QueryBool("all"),
	})
	if err != nil {
		return serviceError(c, err, "Failed to list staff")
	}

	return response.Success(c, "Staff retrieved successfully", fiber.Map{
		"staff": staff,
	})
}

// GetStaff gets a staff member
// @Summary Get staff member
// @Tags Staff
// @Produce json
// @Param id path int true "Staff ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /staff/{id} [get]
func (h *StaffHandler) GetStaff(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid staff ID")
	}

	member, err := h.stationService.GetStaff(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to get staff member")
	}

	return response.Success(c, "Staff member retrieved successfully", fiber.Map{
		"staff": member,
	})
}

// CreateStaff creates a staff member
// @Summary Create staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateStaffInput true "Staff data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /staff [post]
func (h *StaffHandler) CreateStaff(c *fiber.Ctx) error {
	var input services.CreateStaffInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.stationService.CreateStaff(c.Context(), &input)
	if err != nil {
		return serviceError(c, err, "Failed to create staff member")
	}

	return response.Created(c, "Staff member created successfully", fiber.Map{
		"staff": member,
	})
}

// UpdateStaff updates a staff member
// @Summary Update staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Staff ID"
// @Param body body services.UpdateStaffInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /staff/{id} [patch]
func (h *StaffHandler) UpdateStaff(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid staff ID")
	}

	var input services.UpdateStaffInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.stationService.UpdateStaff(c.Context(), id, &input)
	if err != nil {
		return serviceError(c, err, "Failed to update staff member")
	}

	return response.Success(c, "Staff member updated successfully", fiber.Map{
		"staff": member,
	})
}

// DeleteStaff deactivates a staff member
// @Summary Delete staff member
// @Description Soft delete: the staff member is marked inactive
// @Tags Staff
// @Security BearerAuth
// @Param id path int true "Staff ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /staff/{id} [delete]
func (h *StaffHandler) DeleteStaff(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid staff ID")
	}

	if err := h.stationService.DeleteStaff(c.Context(), id); err != nil {
		return serviceError(c, err, "Failed to delete staff member")
	}

	return response.Success(c, "Staff member deactivated successfully", nil)
}
