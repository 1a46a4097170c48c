package repositories

import (
	"context"

	"petrol-tracker/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// fuelTypeRepository handles fuel type data access
type fuelTypeRepository struct {
	db *gorm.DB
}

// NewFuelTypeRepository creates a new fuel type repository
func NewFuelTypeRepository(db *gorm.DB) FuelTypeRepository {
	return &fuelTypeRepository{db: db}
}

// Create creates a new fuel type
func (r *fuelTypeRepository) Create(ctx context.Context, fuelType *models.FuelType) error {
	return r.db.WithContext(ctx).Create(fuelType).Error
}

// GetByID gets a fuel type by ID
func (r *fuelTypeRepository) GetByID(ctx context.Context, id uint) (*models.FuelType, error) {
	var fuelType models.FuelType
	if err := r.db.WithContext(ctx).First(&fuelType, id).Error; err != nil {
		return nil, err
	}
	return &fuelType, nil
}

// List lists all fuel types ordered by name
func (r *fuelTypeRepository) List(ctx context.Context) ([]*models.FuelType, error) {
	var fuelTypes []*models.FuelType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&fuelTypes).Error
	return fuelTypes, err
}

// Update updates a fuel type
func (r *fuelTypeRepository) Update(ctx context.Context, fuelType *models.FuelType) error {
	return r.db.WithContext(ctx).Save(fuelType).Error
}

// Delete hard deletes a fuel type
func (r *fuelTypeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.FuelType{}, id).Error
}

// ExistsByName checks if another fuel type already uses name
func (r *fuelTypeRepository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.FuelType{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// CountReferences counts sales and inventory rows using the fuel type
func (r *fuelTypeRepository) CountReferences(ctx context.Context, id uint) (int64, error) {
	var sales, stock int64
	if err := r.db.WithContext(ctx).Model(&models.Sale{}).Where("fuel_type_id = ?", id).Count(&sales).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).Model(&models.FuelInventory{}).Where("fuel_type_id = ?", id).Count(&stock).Error; err != nil {
		return 0, err
	}
	return sales + stock, nil
}

// pumpRepository handles pump data access
type pumpRepository struct {
	db *gorm.DB
}

// NewPumpRepository creates a new pump repository
func NewPumpRepository(db *gorm.DB) PumpRepository {
	return &pumpRepository{db: db}
}

// Create creates a new pump
func (r *pumpRepository) Create(ctx context.Context, pump *models.Pump) error {
	return r.db.WithContext(ctx).Create(pump).Error
}

// GetByID gets a pump by ID
func (r *pumpRepository) GetByID(ctx context.Context, id uint) (*models.Pump, error) {
	var pump models.Pump
	if err := r.db.WithContext(ctx).Preload("FuelType").First(&pump, id).Error; err != nil {
		return nil, err
	}
	return &pump, nil
}

// List lists pumps, optionally for one station
func (r *pumpRepository) List(ctx context.Context, stationID uint) ([]*models.Pump, error) {
	var pumps []*models.Pump
	q := r.db.WithContext(ctx).Preload("FuelType")
	if stationID != 0 {
		q = q.Where("station_id = ?", stationID)
	}
	err := q.Order("station_id ASC, pump_number ASC").Find(&pumps).Error
	return pumps, err
}

// Update updates a pump
func (r *pumpRepository) Update(ctx context.Context, pump *models.Pump) error {
	return r.db.WithContext(ctx).Omit("FuelType").Save(pump).Error
}

// Delete hard deletes a pump
func (r *pumpRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Pump{}, id).Error
}
