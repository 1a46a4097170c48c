package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User roles
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// User represents users table
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:20;default:'user'" json:"role"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// ValidRole reports whether role is one of the known user roles
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Station Tables
// ============================================================

// Station is a petrol station. Deleting sets IsActive to false.
type Station struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Location    string    `gorm:"size:200;not null" json:"location"`
	Address     string    `gorm:"size:255" json:"address"`
	Phone       string    `gorm:"size:30" json:"phone"`
	ManagerName string    `gorm:"size:100" json:"manager_name"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Pumps     []Pump          `gorm:"foreignKey:StationID;constraint:OnDelete:CASCADE" json:"pumps,omitempty"`
	Staff     []Staff         `gorm:"foreignKey:StationID;constraint:OnDelete:CASCADE" json:"staff,omitempty"`
	Inventory []FuelInventory `gorm:"foreignKey:StationID;constraint:OnDelete:CASCADE" json:"inventory,omitempty"`
}

func (Station) TableName() string {
	return "stations"
}

// FuelType is a grade of fuel with its current price
type FuelType struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	PricePerLitre float64   `gorm:"type:decimal(10,2);not null" json:"price_per_litre"`
	Color         string    `gorm:"size:20" json:"color"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FuelType) TableName() string {
	return "fuel_types"
}

// DefaultFuelColor is used when a fuel type is created without a color
const DefaultFuelColor = "#8884d8"

// Pump represents pumps table
type Pump struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PumpNumber int       `gorm:"not null" json:"pump_number"`
	FuelTypeID uint      `gorm:"not null;index" json:"fuel_type_id"`
	StationID  uint      `gorm:"not null;index" json:"station_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	FuelType *FuelType `gorm:"foreignKey:FuelTypeID" json:"fuel_type,omitempty"`
}

func (Pump) TableName() string {
	return "pumps"
}

// Staff represents staff table. Deleting sets IsActive to false.
type Staff struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Role      string    `gorm:"size:50;not null" json:"role"`
	StationID uint      `gorm:"not null;index" json:"station_id"`
	Email     *string   `gorm:"size:100;uniqueIndex" json:"email"`
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`
	HireDate  time.Time `json:"hire_date"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Staff) TableName() string {
	return "staff"
}

// FuelInventory is the stock of one fuel type at one station
type FuelInventory struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	StationID        uint       `gorm:"not null;uniqueIndex:idx_inventory_station_fuel" json:"station_id"`
	FuelTypeID       uint       `gorm:"not null;uniqueIndex:idx_inventory_station_fuel" json:"fuel_type_id"`
	CurrentStock     float64    `gorm:"type:decimal(12,2);not null" json:"current_stock"`
	Capacity         float64    `gorm:"type:decimal(12,2);not null" json:"capacity"`
	MinimumThreshold float64    `gorm:"type:decimal(12,2);not null" json:"minimum_threshold"`
	LastRefill       *time.Time `json:"last_refill"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Station  *Station  `gorm:"foreignKey:StationID" json:"station,omitempty"`
	FuelType *FuelType `gorm:"foreignKey:FuelTypeID" json:"fuel_type,omitempty"`
}

func (FuelInventory) TableName() string {
	return "fuel_inventory"
}

// StockPercentage returns current stock as a percentage of capacity
func (fi *FuelInventory) StockPercentage() float64 {
	if fi.Capacity <= 0 {
		return 0
	}
	return fi.CurrentStock / fi.Capacity * 100
}

// ThresholdPercentage returns the minimum threshold as a percentage of capacity
func (fi *FuelInventory) ThresholdPercentage() float64 {
	if fi.Capacity <= 0 {
		return 0
	}
	return fi.MinimumThreshold / fi.Capacity * 100
}

// IsLowStock reports whether stock has fallen to or below the minimum threshold
func (fi *FuelInventory) IsLowStock() bool {
	return fi.CurrentStock <= fi.MinimumThreshold
}

// ============================================================
// Sales
// ============================================================

// Payment methods
const (
	PaymentCash   = "Cash"
	PaymentCard   = "Card"
	PaymentMobile = "Mobile"
)

// ValidPaymentMethod reports whether m is a supported payment method
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobile:
		return true
	}
	return false
}

// Sale is a single fuel sale. TotalAmount is always computed server side.
type Sale struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	StationID     uint      `gorm:"not null;index" json:"station_id"`
	FuelTypeID    uint      `gorm:"not null;index" json:"fuel_type_id"`
	StaffID       *uint     `gorm:"index" json:"staff_id"`
	PumpNumber    int       `gorm:"not null" json:"pump_number"`
	Litres        float64   `gorm:"type:decimal(12,2);not null" json:"litres"`
	PricePerLitre float64   `gorm:"type:decimal(10,2);not null" json:"price_per_litre"`
	TotalAmount   float64   `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	PaymentMethod string    `gorm:"size:20;default:'Cash'" json:"payment_method"`
	SaleDate      time.Time `gorm:"not null;index" json:"sale_date"`

	// Relations
	Station  *Station  `gorm:"foreignKey:StationID;constraint:OnDelete:CASCADE" json:"station,omitempty"`
	FuelType *FuelType `gorm:"foreignKey:FuelTypeID;constraint:OnDelete:RESTRICT" json:"fuel_type,omitempty"`
	Staff    *Staff    `gorm:"foreignKey:StaffID;constraint:OnDelete:SET NULL" json:"staff,omitempty"`
}

func (Sale) TableName() string {
	return "sales"
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Station{},
		&FuelType{},
		&Pump{},
		&Staff{},
		&FuelInventory{},
		&Sale{},
	)
}
