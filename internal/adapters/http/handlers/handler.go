package handlers

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"petrol-tracker/internal/core/domain"
	"petrol-tracker/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// errInvalidID is returned by parseID for a malformed :id segment
var errInvalidID = errors.New("invalid id")

// parseID reads the :id route parameter
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// queryUint reads an optional unsigned query parameter. Missing means 0.
func queryUint(c *fiber.Ctx, key string) (uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

// serviceError maps domain errors to HTTP responses. Anything unknown is
// logged and reported as fallback with status 500.
func serviceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidPayment):
		return response.BadRequest(c, validationMessage(err))

	case errors.Is(err, domain.ErrStationNotFound),
		errors.Is(err, domain.ErrPumpNotFound),
		errors.Is(err, domain.ErrStaffNotFound),
		errors.Is(err, domain.ErrFuelTypeNotFound),
		errors.Is(err, domain.ErrInventoryNotFound),
		errors.Is(err, domain.ErrSaleNotFound),
		errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())

	case errors.Is(err, domain.ErrStationExists),
		errors.Is(err, domain.ErrStationInactive),
		errors.Is(err, domain.ErrStaffEmailTaken),
		errors.Is(err, domain.ErrFuelTypeExists),
		errors.Is(err, domain.ErrFuelTypeInUse),
		errors.Is(err, domain.ErrInventoryExists),
		errors.Is(err, domain.ErrCapacityExceeded):
		return response.Conflict(c, err.Error())
	}

	log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
	return response.InternalServerError(c, fallback)
}

// validationMessage drops the "invalid input: " prefix added by the services
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")
}
