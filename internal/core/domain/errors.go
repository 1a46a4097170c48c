package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Station errors
var (
	ErrStationNotFound = errors.New("station not found")
	ErrStationExists   = errors.New("station name already exists")
	ErrStationInactive = errors.New("station is inactive")
	ErrPumpNotFound    = errors.New("pump not found")
	ErrStaffNotFound   = errors.New("staff not found")
	ErrStaffEmailTaken = errors.New("staff email already exists")
)

// Fuel errors
var (
	ErrFuelTypeNotFound  = errors.New("fuel type not found")
	ErrFuelTypeExists    = errors.New("fuel type already exists")
	ErrFuelTypeInUse     = errors.New("fuel type is referenced by sales or inventory")
	ErrInventoryNotFound = errors.New("inventory record not found")
	ErrInventoryExists   = errors.New("inventory already exists for this station and fuel type")
	ErrCapacityExceeded  = errors.New("stock would exceed tank capacity")
	ErrSaleNotFound      = errors.New("sale not found")
	ErrInvalidPayment    = errors.New("payment method must be Cash, Card or Mobile")
)

// AggregationError wraps a repository failure hit while computing the dashboard
type AggregationError struct {
	Op  string
	Err error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("dashboard %s: %v", e.Op, e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}
