package repositories

import (
	"context"

	"petrol-tracker/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// stationAssociations are never written through Station updates
var stationAssociations = []string{"Pumps", "Staff", "Inventory"}

// stationRepository implements StationRepository interface
type stationRepository struct {
	db *gorm.DB
}

// NewStationRepository creates a new station repository
func NewStationRepository(db *gorm.DB) StationRepository {
	return &stationRepository{db: db}
}

// Create creates a new station
func (r *stationRepository) Create(ctx context.Context, station *models.Station) error {
	return r.db.WithContext(ctx).Create(station).Error
}

// GetByID gets a station by ID
func (r *stationRepository) GetByID(ctx context.Context, id uint) (*models.Station, error) {
	var station models.Station
	if err := r.db.WithContext(ctx).First(&station, id).Error; err != nil {
		return nil, err
	}
	return &station, nil
}

// GetDetail gets a station with pumps, active staff and inventory
func (r *stationRepository) GetDetail(ctx context.Context, id uint) (*models.Station, error) {
	var station models.Station
	err := r.db.WithContext(ctx).
		Preload("Pumps", func(db *gorm.DB) *gorm.DB { return db.Order("pump_number ASC") }).
		Preload("Pumps.FuelType").
		Preload("Staff", "is_active = ?", true).
		Preload("Inventory").
		Preload("Inventory.FuelType").
		First(&station, id).Error
	if err != nil {
		return nil, err
	}
	return &station, nil
}

// List lists stations ordered by name
func (r *stationRepository) List(ctx context.Context, includeInactive bool) ([]*models.Station, error) {
	var stations []*models.Station
	q := r.db.WithContext(ctx)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("name ASC").Find(&stations).Error
	return stations, err
}

// Update updates a station's own columns
func (r *stationRepository) Update(ctx context.Context, station *models.Station) error {
	return r.db.WithContext(ctx).Omit(stationAssociations...).Save(station).Error
}

// Deactivate soft deletes a station
func (r *stationRepository) Deactivate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Station{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// ExistsByName checks if another station already uses name
func (r *stationRepository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Station{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// staffRepository implements StaffRepository interface
type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

// Create creates a new staff member
func (r *staffRepository) Create(ctx context.Context, staff *models.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

// GetByID gets a staff member by ID
func (r *staffRepository) GetByID(ctx context.Context, id uint) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.WithContext(ctx).First(&staff, id).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

// List lists staff members
func (r *staffRepository) List(ctx context.Context, filter StaffFilter) ([]*models.Staff, error) {
	var staff []*models.Staff
	q := r.db.WithContext(ctx)
	if filter.StationID != 0 {
		q = q.Where("station_id = ?", filter.StationID)
	}
	if !filter.IncludeInactive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("name ASC").Find(&staff).Error
	return staff, err
}

// Update updates a staff member
func (r *staffRepository) Update(ctx context.Context, staff *models.Staff) error {
	return r.db.WithContext(ctx).Save(staff).Error
}

// Deactivate soft deletes a staff member
func (r *staffRepository) Deactivate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Staff{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// ExistsByEmail checks if another staff member already uses email
func (r *staffRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Staff{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}
