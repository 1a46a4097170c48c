package services

import (
	"context"
	"log"
	"strings"
	"time"

	"petrol-tracker/internal/adapters/persistence/models"
	"petrol-tracker/internal/adapters/persistence/repositories"
	"petrol-tracker/internal/core/domain"
)

// FuelService handles fuel types and station inventory
type FuelService struct {
	fuelTypeRepo  repositories.FuelTypeRepository
	inventoryRepo repositories.InventoryRepository
	stationRepo   repositories.StationRepository
}

// NewFuelService creates a new fuel service
func NewFuelService(
	fuelTypeRepo repositories.FuelTypeRepository,
	inventoryRepo repositories.InventoryRepository,
	stationRepo repositories.StationRepository,
) *FuelService {
	return &FuelService{
		fuelTypeRepo:  fuelTypeRepo,
		inventoryRepo: inventoryRepo,
		stationRepo:   stationRepo,
	}
}

// ============================================================
// Fuel types
// ============================================================

// CreateFuelTypeInput represents create fuel type input
type CreateFuelTypeInput struct {
	Name          string  `json:"name"`
	PricePerLitre float64 `json:"price_per_litre"`
	Color         string  `json:"color"`
}

// UpdateFuelTypeInput lists the mutable fuel type fields
type UpdateFuelTypeInput struct {
	Name          *string  `json:"name"`
	PricePerLitre *float64 `json:"price_per_litre"`
	Color         *string  `json:"color"`
}

// ListFuelTypes lists fuel types by name
func (s *FuelService) ListFuelTypes(ctx context.Context) ([]*models.FuelType, error) {
	return s.fuelTypeRepo.List(ctx)
}

// GetFuelType gets a fuel type by ID
func (s *FuelService) GetFuelType(ctx context.Context, id uint) (*models.FuelType, error) {
	ft, err := s.fuelTypeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrFuelTypeNotFound)
	}
	return ft, nil
}

// CreateFuelType creates a fuel type
func (s *FuelService) CreateFuelType(ctx context.Context, input *CreateFuelTypeInput) (*models.FuelType, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if input.PricePerLitre <= 0 {
		return nil, invalid("price_per_litre must be greater than 0")
	}
	if err := s.uniqueFuelName(ctx, name, 0); err != nil {
		return nil, err
	}

	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = models.DefaultFuelColor
	}

	ft := &models.FuelType{Name: name, PricePerLitre: input.PricePerLitre, Color: color}
	if err := s.fuelTypeRepo.Create(ctx, ft); err != nil {
		return nil, err
	}
	return ft, nil
}

// UpdateFuelType applies the non-nil fields of input.
// Past sales keep the price they were made at.
func (s *FuelService) UpdateFuelType(ctx context.Context, id uint, input *UpdateFuelTypeInput) (*models.FuelType, error) {
	ft, err := s.GetFuelType(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, invalid("name cannot be empty")
		}
		if err := s.uniqueFuelName(ctx, name, id); err != nil {
			return nil, err
		}
		ft.Name = name
	}
	if input.PricePerLitre != nil {
		if *input.PricePerLitre <= 0 {
			return nil, invalid("price_per_litre must be greater than 0")
		}
		ft.PricePerLitre = *input.PricePerLitre
	}
	if input.Color != nil {
		ft.Color = strings.TrimSpace(*input.Color)
		if ft.Color == "" {
			ft.Color = models.DefaultFuelColor
		}
	}

	if err := s.fuelTypeRepo.Update(ctx, ft); err != nil {
		return nil, err
	}
	return ft, nil
}

// DeleteFuelType removes a fuel type nothing references
func (s *FuelService) DeleteFuelType(ctx context.Context, id uint) error {
	if _, err := s.GetFuelType(ctx, id); err != nil {
		return err
	}

	refs, err := s.fuelTypeRepo.CountReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrFuelTypeInUse
	}
	return s.fuelTypeRepo.Delete(ctx, id)
}

func (s *FuelService) uniqueFuelName(ctx context.Context, name string, excludeID uint) error {
	exists, err := s.fuelTypeRepo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrFuelTypeExists
	}
	return nil
}

// ============================================================
// Inventory
// ============================================================

// CreateInventoryInput represents create inventory input
type CreateInventoryInput struct {
	StationID        uint    `json:"station_id"`
	FuelTypeID       uint    `json:"fuel_type_id"`
	CurrentStock     float64 `json:"current_stock"`
	Capacity         float64 `json:"capacity"`
	MinimumThreshold float64 `json:"minimum_threshold"`
}

// UpdateInventoryInput lists the mutable stock levels
type UpdateInventoryInput struct {
	CurrentStock     *float64 `json:"current_stock"`
	Capacity         *float64 `json:"capacity"`
	MinimumThreshold *float64 `json:"minimum_threshold"`
}

// RefillInput represents a tank delivery
type RefillInput struct {
	Litres float64 `json:"litres"`
}

// ListInventory lists inventory matching filter
func (s *FuelService) ListInventory(ctx context.Context, filter repositories.InventoryFilter) ([]*models.FuelInventory, error) {
	return s.inventoryRepo.List(ctx, filter)
}

// LowStock lists every inventory record at or below its minimum threshold
func (s *FuelService) LowStock(ctx context.Context) ([]*models.FuelInventory, error) {
	return s.inventoryRepo.List(ctx, repositories.InventoryFilter{LowOnly: true})
}

// GetInventory gets an inventory record by ID
func (s *FuelService) GetInventory(ctx context.Context, id uint) (*models.FuelInventory, error) {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrInventoryNotFound)
	}
	return item, nil
}

// CreateInventory starts tracking a fuel type at a station
func (s *FuelService) CreateInventory(ctx context.Context, input *CreateInventoryInput) (*models.FuelInventory, error) {
	if input.StationID == 0 {
		return nil, invalid("station_id is required")
	}
	if input.FuelTypeID == 0 {
		return nil, invalid("fuel_type_id is required")
	}
	if err := validateLevels(input.CurrentStock, input.Capacity, input.MinimumThreshold); err != nil {
		return nil, err
	}
	if _, err := s.stationRepo.GetByID(ctx, input.StationID); err != nil {
		return nil, notFound(err, domain.ErrStationNotFound)
	}
	if _, err := s.GetFuelType(ctx, input.FuelTypeID); err != nil {
		return nil, err
	}

	exists, err := s.inventoryRepo.Exists(ctx, input.StationID, input.FuelTypeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrInventoryExists
	}

	item := &models.FuelInventory{
		StationID:        input.StationID,
		FuelTypeID:       input.FuelTypeID,
		CurrentStock:     input.CurrentStock,
		Capacity:         input.Capacity,
		MinimumThreshold: input.MinimumThreshold,
	}
	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return s.GetInventory(ctx, item.ID)
}

// UpdateInventory applies the non-nil levels of input
func (s *FuelService) UpdateInventory(ctx context.Context, id uint, input *UpdateInventoryInput) (*models.FuelInventory, error) {
	item, err := s.GetInventory(ctx, id)
	if err != nil {
		return nil, err
	}

	stock, capacity, threshold := item.CurrentStock, item.Capacity, item.MinimumThreshold
	if input.CurrentStock != nil {
		stock = *input.CurrentStock
	}
	if input.Capacity != nil {
		capacity = *input.Capacity
	}
	if input.MinimumThreshold != nil {
		threshold = *input.MinimumThreshold
	}
	if err := validateLevels(stock, capacity, threshold); err != nil {
		return nil, err
	}

	item.CurrentStock, item.Capacity, item.MinimumThreshold = stock, capacity, threshold
	if err := s.inventoryRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Refill adds a delivery to the tank and stamps the refill time
func (s *FuelService) Refill(ctx context.Context, id uint, input *RefillInput, now time.Time) (*models.FuelInventory, error) {
	if input.Litres <= 0 {
		return nil, invalid("litres must be greater than 0")
	}

	item, err := s.GetInventory(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.CurrentStock+input.Litres > item.Capacity {
		return nil, domain.ErrCapacityExceeded
	}

	item.CurrentStock += input.Litres
	item.LastRefill = &now
	if err := s.inventoryRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	log.Printf("✅ Inventory %d refilled with %.2f L", id, input.Litres)
	return item, nil
}

// DeleteInventory stops tracking an inventory record
func (s *FuelService) DeleteInventory(ctx context.Context, id uint) error {
	if _, err := s.GetInventory(ctx, id); err != nil {
		return err
	}
	return s.inventoryRepo.Delete(ctx, id)
}

func validateLevels(stock, capacity, threshold float64) error {
	switch {
	case capacity <= 0:
		return invalid("capacity must be greater than 0")
	case stock < 0:
		return invalid("current_stock cannot be negative")
	case threshold < 0:
		return invalid("minimum_threshold cannot be negative")
	case stock > capacity:
		return invalid("current_stock cannot exceed capacity")
	case threshold > capacity:
		return invalid("minimum_threshold cannot exceed capacity")
	}
	return nil
}
