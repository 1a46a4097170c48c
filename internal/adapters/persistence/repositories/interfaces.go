package repositories

import (
	"context"
	"time"

	"petrol-tracker/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// StationRepository defines station repository interface
type StationRepository interface {
	Create(ctx context.Context, station *models.Station) error
	GetByID(ctx context.Context, id uint) (*models.Station, error)
	// GetDetail loads the station together with its pumps, staff and inventory
	GetDetail(ctx context.Context, id uint) (*models.Station, error)
	List(ctx context.Context, includeInactive bool) ([]*models.Station, error)
	Update(ctx context.Context, station *models.Station) error
	Deactivate(ctx context.Context, id uint) error
	// ExistsByName ignores the station with excludeID (0 checks every station)
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
}

// FuelTypeRepository defines fuel type repository interface
type FuelTypeRepository interface {
	Create(ctx context.Context, fuelType *models.FuelType) error
	GetByID(ctx context.Context, id uint) (*models.FuelType, error)
	List(ctx context.Context) ([]*models.FuelType, error)
	Update(ctx context.Context, fuelType *models.FuelType) error
	Delete(ctx context.Context, id uint) error
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
	// CountReferences counts sales and inventory rows pointing at the fuel type
	CountReferences(ctx context.Context, id uint) (int64, error)
}

// PumpRepository defines pump repository interface
type PumpRepository interface {
	Create(ctx context.Context, pump *models.Pump) error
	GetByID(ctx context.Context, id uint) (*models.Pump, error)
	// List returns every pump when stationID is 0
	List(ctx context.Context, stationID uint) ([]*models.Pump, error)
	Update(ctx context.Context, pump *models.Pump) error
	Delete(ctx context.Context, id uint) error
}

// StaffFilter narrows staff listings
type StaffFilter struct {
	StationID       uint
	IncludeInactive bool
}

// StaffRepository defines staff repository interface
type StaffRepository interface {
	Create(ctx context.Context, staff *models.Staff) error
	GetByID(ctx context.Context, id uint) (*models.Staff, error)
	List(ctx context.Context, filter StaffFilter) ([]*models.Staff, error)
	Update(ctx context.Context, staff *models.Staff) error
	Deactivate(ctx context.Context, id uint) error
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
}

// InventoryFilter narrows inventory listings
type InventoryFilter struct {
	StationID uint
	LowOnly   bool
}

// InventoryRepository defines fuel inventory repository interface
type InventoryRepository interface {
	Create(ctx context.Context, item *models.FuelInventory) error
	GetByID(ctx context.Context, id uint) (*models.FuelInventory, error)
	List(ctx context.Context, filter InventoryFilter) ([]*models.FuelInventory, error)
	Update(ctx context.Context, item *models.FuelInventory) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, stationID, fuelTypeID uint) (bool, error)
}

// SaleFilter narrows sale listings. Since is inclusive, Until is exclusive.
type SaleFilter struct {
	StationID uint
	Since     *time.Time
	Until     *time.Time
	Offset    int
	Limit     int
}

// SaleRepository defines sale repository interface
type SaleRepository interface {
	Create(ctx context.Context, sale *models.Sale) error
	GetByID(ctx context.Context, id uint) (*models.Sale, error)
	List(ctx context.Context, filter SaleFilter) ([]*models.Sale, int64, error)
	Update(ctx context.Context, sale *models.Sale) error
	Delete(ctx context.Context, id uint) error
}

// DashboardRepository is the read-only view the dashboard aggregates over.
// Recent sales and inventory rows come back with Station and FuelType loaded.
// Window sales carry only the aggregated columns and the station name.
type DashboardRepository interface {
	CountActiveStations(ctx context.Context) (int64, error)
	CountActiveStaff(ctx context.Context) (int64, error)
	ListSalesSince(ctx context.Context, since time.Time) ([]*models.Sale, error)
	ListRecentSales(ctx context.Context, limit int) ([]*models.Sale, error)
	ListFuelTypes(ctx context.Context) ([]*models.FuelType, error)
	ListInventory(ctx context.Context) ([]*models.FuelInventory, error)
	// ReadOnly runs fn against a repository bound to a single read-only
	// transaction so every read sees the same snapshot
	ReadOnly(ctx context.Context, fn func(repo DashboardRepository) error) error
}
