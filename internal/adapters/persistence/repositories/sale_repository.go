package repositories

import (
	"context"

	"petrol-tracker/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// saleRepository implements SaleRepository interface
type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

// Create creates a new sale
func (r *saleRepository) Create(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Omit("Station", "FuelType", "Staff").Create(sale).Error
}

// GetByID gets a sale with its station and fuel type
func (r *saleRepository) GetByID(ctx context.Context, id uint) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).
		Preload("Station").
		Preload("FuelType").
		First(&sale, id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// List lists sales newest first with pagination
func (r *saleRepository) List(ctx context.Context, filter SaleFilter) ([]*models.Sale, int64, error) {
	var sales []*models.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Sale{})
	if filter.StationID != 0 {
		q = q.Where("station_id = ?", filter.StationID)
	}
	if filter.Since != nil {
		q = q.Where("sale_date >= ?", *filter.Since)
	}
	if filter.Until != nil {
		q = q.Where("sale_date < ?", *filter.Until)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Station").
		Preload("FuelType").
		Order("sale_date DESC, id DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&sales).Error
	if err != nil {
		return nil, 0, err
	}

	return sales, total, nil
}

// Update updates a sale
func (r *saleRepository) Update(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Omit("Station", "FuelType", "Staff").Save(sale).Error
}

// Delete hard deletes a sale
func (r *saleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Sale{}, id).Error
}
