package repositories

import (
	"context"

	"petrol-tracker/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// inventoryRepository implements InventoryRepository interface
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

// Create creates a new inventory record
func (r *inventoryRepository) Create(ctx context.Context, item *models.FuelInventory) error {
	return r.db.WithContext(ctx).Omit("Station", "FuelType").Create(item).Error
}

// GetByID gets an inventory record with its station and fuel type
func (r *inventoryRepository) GetByID(ctx context.Context, id uint) (*models.FuelInventory, error) {
	var item models.FuelInventory
	err := r.db.WithContext(ctx).
		Preload("Station").
		Preload("FuelType").
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// List lists inventory records
func (r *inventoryRepository) List(ctx context.Context, filter InventoryFilter) ([]*models.FuelInventory, error) {
	var items []*models.FuelInventory
	q := r.db.WithContext(ctx).Preload("Station").Preload("FuelType")
	if filter.StationID != 0 {
		q = q.Where("station_id = ?", filter.StationID)
	}
	if filter.LowOnly {
		q = q.Where("current_stock <= minimum_threshold")
	}
	err := q.Order("station_id ASC, fuel_type_id ASC").Find(&items).Error
	return items, err
}

// Update updates stock levels of an inventory record
func (r *inventoryRepository) Update(ctx context.Context, item *models.FuelInventory) error {
	return r.db.WithContext(ctx).Omit("Station", "FuelType").Save(item).Error
}

// Delete hard deletes an inventory record
func (r *inventoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.FuelInventory{}, id).Error
}

// Exists checks if the station already tracks the fuel type
func (r *inventoryRepository) Exists(ctx context.Context, stationID, fuelTypeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FuelInventory{}).
		Where("station_id = ? AND fuel_type_id = ?", stationID, fuelTypeID).
		Count(&count).Error
	return count > 0, err
}
