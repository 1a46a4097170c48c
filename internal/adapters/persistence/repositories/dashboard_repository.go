package repositories

import (
	"context"
	"database/sql"
	"time"

	"petrol-tracker/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// dashboardRepository implements DashboardRepository interface
type dashboardRepository struct {
	db   *gorm.DB
	inTx bool
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// CountActiveStations counts stations that are not deactivated
func (r *dashboardRepository) CountActiveStations(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Station{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// CountActiveStaff counts staff members that are not deactivated
func (r *dashboardRepository) CountActiveStaff(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Staff{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// windowSaleColumns are the sale fields the window aggregates read
var windowSaleColumns = []string{"id", "station_id", "fuel_type_id", "litres", "price_per_litre", "total_amount", "sale_date"}

// ListSalesSince lists sales with sale_date >= since, oldest first.
// Only the aggregated columns and the station name are loaded.
func (r *dashboardRepository) ListSalesSince(ctx context.Context, since time.Time) ([]*models.Sale, error) {
	var sales []*models.Sale
	err := salesSinceQuery(r.db.WithContext(ctx), since).Find(&sales).Error
	return sales, err
}

func salesSinceQuery(db *gorm.DB, since time.Time) *gorm.DB {
	return db.Model(&models.Sale{}).
		Select(windowSaleColumns).
		Preload("Station", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name")
		}).
		Where("sale_date >= ?", since).
		Order("sale_date ASC, id ASC")
}

// ListRecentSales lists the latest sales regardless of date
func (r *dashboardRepository) ListRecentSales(ctx context.Context, limit int) ([]*models.Sale, error) {
	var sales []*models.Sale
	err := r.db.WithContext(ctx).
		Preload("Station").
		Preload("FuelType").
		Order("sale_date DESC, id DESC").
		Limit(limit).
		Find(&sales).Error
	return sales, err
}

// ListFuelTypes lists every fuel type in ID order
func (r *dashboardRepository) ListFuelTypes(ctx context.Context) ([]*models.FuelType, error) {
	var fuelTypes []*models.FuelType
	err := r.db.WithContext(ctx).Order("id ASC").Find(&fuelTypes).Error
	return fuelTypes, err
}

// ListInventory lists every inventory record with station and fuel type
func (r *dashboardRepository) ListInventory(ctx context.Context) ([]*models.FuelInventory, error) {
	var items []*models.FuelInventory
	err := r.db.WithContext(ctx).
		Preload("Station").
		Preload("FuelType").
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// ReadOnly runs fn inside one read-only transaction
func (r *dashboardRepository) ReadOnly(ctx context.Context, fn func(repo DashboardRepository) error) error {
	if r.inTx {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&dashboardRepository{db: tx, inTx: true})
	}, &sql.TxOptions{ReadOnly: true})
}
