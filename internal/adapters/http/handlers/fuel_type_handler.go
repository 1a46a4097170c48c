package handlers

import (
	"petrol-tracker/internal/core/services"
	"petrol-tracker/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// FuelTypeHandler handles fuel type endpoints
type FuelTypeHandler struct {
	fuelService *services.FuelService
}

// NewFuelTypeHandler creates a new fuel type handler
func NewFuelTypeHandler(fuelService *services.FuelService) *FuelTypeHandler {
	return &FuelTypeHandler{fuelService: fuelService}
}

// ListFuelTypes lists fuel types
// @Summary List fuel types
// @Tags Fuel Types
// @Produce json
// @Success 200 {object} response.Response
// @Router /fuel-types [get]
func (h *FuelTypeHandler) ListFuelTypes(c *fiber.Ctx) error {
	fuelTypes, err := h.fuelService.ListFuelTypes(c.Context())
	if err != nil {
		return serviceError(c, err, "Failed to list fuel types")
	}

	return response.Success(c, "Fuel types retrieved successfully", fiber.Map{
		"fuel_types": fuelTypes,
	})
}

// GetFuelType gets a fuel type
// @Summary Get fuel type
// @Tags Fuel Types
// @Produce json
// @Param id path int true "Fuel Type ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /fuel-types/{id} [get]
func (h *FuelTypeHandler) GetFuelType(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid fuel type ID")
	}

	fuelType, err := h.fuelService.GetFuelType(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to get fuel type")
	}

	return response.Success(c, "Fuel type retrieved successfully", fiber.Map{
		"fuel_type": fuelType,
	})
}

// CreateFuelType creates a fuel type
// @Summary Create fuel type
// @Tags Fuel Types
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateFuelTypeInput true "Fuel type data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /fuel-types [post]
func (h *FuelTypeHandler) CreateFuelType(c *fiber.Ctx) error {
	var input services.CreateFuelTypeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	fuelType, err := h.fuelService.CreateFuelType(c.Context(), &input)
	if err != nil {
		return serviceError(c, err, "Failed to create fuel type")
	}

	return response.Created(c, "Fuel type created successfully", fiber.Map{
		"fuel_type": fuelType,
	})
}

// UpdateFuelType updates a fuel type
// @Summary Update fuel type
// @Tags Fuel Types
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fuel Type ID"
// @Param body body services.UpdateFuelTypeInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /fuel-types/{id} [patch]
func (h *FuelTypeHandler) UpdateFuelType(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid fuel type ID")
	}

	var input services.UpdateFuelTypeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	fuelType, err := h.fuelService.UpdateFuelType(c.Context(), id, &input)
	if err != nil {
		return serviceError(c, err, "Failed to update fuel type")
	}

	return response.Success(c, "Fuel type updated successfully", fiber.Map{
		"fuel_type": fuelType,
	})
}

// DeleteFuelType deletes an unreferenced fuel type
// @Summary Delete fuel type
// @Tags Fuel Types
// @Security BearerAuth
// @Param id path int true "Fuel Type ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /fuel-types/{id} [delete]
func (h *FuelTypeHandler) DeleteFuelType(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid fuel type ID")
	}

	if err := h.fuelService.DeleteFuelType(c.Context(), id); err != nil {
		return serviceError(c, err, "Failed to delete fuel type")
	}

	return response.NoContent(c)
}
