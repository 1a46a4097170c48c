package handlers

import (
	"time"

	"petrol-tracker/internal/adapters/persistence/repositories"
	"petrol-tracker/internal/core/services"
	"petrol-tracker/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// InventoryHandler handles fuel inventory endpoints
type InventoryHandler struct {
	fuelService *services.FuelService
	now         func() time.Time
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(fuelService *services.FuelService, now func() time.Time) *InventoryHandler {
	return &InventoryHandler{fuelService: fuelService, now: now}
}

// ListInventory lists inventory records
// @Summary List inventory
// @Tags Inventory
// @Produce json
// @Param station_id query int false "Station ID"
// @Param low query bool false "Only records at or below their minimum threshold"
// @Success 200 {object} response.Response
// @Router /inventory [get]
func (h *InventoryHandler) ListInventory(c *fiber.Ctx) error {
	stationID, err := queryUint(c, "station_id")
	if err != nil {
		return response.BadRequest(c, "Invalid station_id")
	}

	items, err := h.fuelService.ListInventory(c.Context(), repositories.InventoryFilter{
		StationID: stationID,
		LowOnly:   c.QueryBool("low"),
	})
	if err != nil {
		return serviceError(c, err, "Failed to list inventory")
	}

	return response.Success(c, "Inventory retrieved successfully", fiber.Map{
		"inventory": items,
	})
}

// GetInventory gets an inventory record
// @Summary Get inventory record
// @Tags Inventory
// @Produce json
// @Param id path int true "Inventory ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inventory/{id} [get]
func (h *InventoryHandler) GetInventory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid inventory ID")
	}

	item, err := h.fuelService.GetInventory(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to get inventory record")
	}

	return response.Success(c, "Inventory record retrieved successfully", fiber.Map{
		"inventory": item,
	})
}

// CreateInventory creates an inventory record
// @Summary Create inventory record
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateInventoryInput true "Inventory data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /inventory [post]
func (h *InventoryHandler) CreateInventory(c *fiber.Ctx) error {
	var input services.CreateInventoryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	item, err := h.fuelService.CreateInventory(c.Context(), &input)
	if err != nil {
		return serviceError(c, err, "Failed to create inventory record")
	}

	return response.Created(c, "Inventory record created successfully", fiber.Map{
		"inventory": item,
	})
}

// UpdateInventory updates stock levels
// @Summary Update inventory record
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Inventory ID"
// @Param body body services.UpdateInventoryInput true "Levels to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inventory/{id} [patch]
func (h *InventoryHandler) UpdateInventory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid inventory ID")
	}

	var input services.UpdateInventoryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	item, err := h.fuelService.UpdateInventory(c.Context(), id, &input)
	if err != nil {
		return serviceError(c, err, "Failed to update inventory record")
	}

	return response.Success(c, "Inventory record updated successfully", fiber.Map{
		"inventory": item,
	})
}

// RefillInventory records a delivery
// @Summary Refill tank
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Inventory ID"
// @Param body body services.RefillInput true "Delivered litres"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /inventory/{id}/refill [post]
func (h *InventoryHandler) RefillInventory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid inventory ID")
	}

	var input services.RefillInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	item, err := h.fuelService.Refill(c.Context(), id, &input, h.now())
	if err != nil {
		return serviceError(c, err, "Failed to refill tank")
	}

	return response.Success(c, "Tank refilled successfully", fiber.Map{
		"inventory": item,
	})
}

// DeleteInventory deletes an inventory record
// @Summary Delete inventory record
// @Tags Inventory
// @Security BearerAuth
// @Param id path int true "Inventory ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /inventory/{id} [delete]
func (h *InventoryHandler) DeleteInventory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid inventory ID")
	}

	if err := h.fuelService.DeleteInventory(c.Context(), id); err != nil {
		return serviceError(c, err, "Failed to delete inventory record")
	}

	return response.NoContent(c)
}
