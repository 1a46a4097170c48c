package handlers

import (
	"time"

	"petrol-tracker/internal/adapters/persistence/repositories"
	"petrol-tracker/internal/core/services"
	"petrol-tracker/internal/pkg/pagination"
	"petrol-tracker/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SaleHandler handles sale endpoints
type SaleHandler struct {
	saleService *services.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// queryTime reads an optional RFC3339 query parameter
func queryTime(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListSales lists sales, newest first
// @Summary List sales
// @Tags Sales
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param station_id query int false "Station ID"
// @Param since query string false "Inclusive lower bound (RFC3339)"
// @Param until query string false "Exclusive upper bound (RFC3339)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /sales [get]
func (h *SaleHandler) ListSales(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	stationID, err := queryUint(c, "station_id")
	if err != nil {
		return response.BadRequest(c, "Invalid station_id")
	}
	since, err := queryTime(c, "since")
	if err != nil {
		return response.BadRequest(c, "since must be an RFC3339 timestamp")
	}
	until, err := queryTime(c, "until")
	if err != nil {
		return response.BadRequest(c, "until must be an RFC3339 timestamp")
	}

	sales, total, err := h.saleService.ListSales(c.Context(), repositories.SaleFilter{
		StationID: stationID,
		Since:     since,
		Until:     until,
		Offset:    params.Offset,
		Limit:     params.Limit,
	})
	if err != nil {
		return serviceError(c, err, "Failed to list sales")
	}

	return response.Success(c, "Sales retrieved successfully", pagination.NewResponse(sales, params, total))
}

// GetSale gets a sale
// @Summary Get sale
// @Tags Sales
// @Produce json
// @Param id path int true "Sale ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /sales/{id} [get]
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid sale ID")
	}

	sale, err := h.saleService.GetSale(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to get sale")
	}

	return response.Success(c, "Sale retrieved successfully", fiber.Map{
		"sale": sale,
	})
}

// CreateSale records a sale. The total is always computed server side.
// @Summary Create sale
// @Tags Sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateSaleInput true "Sale data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /sales [post]
func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var input services.CreateSaleInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	sale, err := h.saleService.CreateSale(c.Context(), &input)
	if err != nil {
		return serviceError(c, err, "Failed to create sale")
	}

	return response.Created(c, "Sale recorded successfully", fiber.Map{
		"sale": sale,
	})
}

// UpdateSale corrects a sale and recomputes its total
// @Summary Update sale
// @Tags Sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sale ID"
// @Param body body services.UpdateSaleInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /sales/{id} [patch]
func (h *SaleHandler) UpdateSale(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid sale ID")
	}

	var input services.UpdateSaleInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	sale, err := h.saleService.UpdateSale(c.Context(), id, &input)
	if err != nil {
		return serviceError(c, err, "Failed to update sale")
	}

	return response.Success(c, "Sale updated successfully", fiber.Map{
		"sale": sale,
	})
}

// DeleteSale deletes a sale
// @Summary Delete sale
// @Tags Sales
// @Security BearerAuth
// @Param id path int true "Sale ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /sales/{id} [delete]
func (h *SaleHandler) DeleteSale(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid sale ID")
	}

	if err := h.saleService.DeleteSale(c.Context(), id); err != nil {
		return serviceError(c, err, "Failed to delete sale")
	}

	return response.NoContent(c)
}
