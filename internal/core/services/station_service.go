package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"petrol-tracker/internal/adapters/persistence/models"
	"petrol-tracker/internal/adapters/persistence/repositories"
	"petrol-tracker/internal/core/domain"

	"gorm.io/gorm"
)

// StationService handles stations together with their pumps and staff
type StationService struct {
	stationRepo  repositories.StationRepository
	pumpRepo     repositories.PumpRepository
	staffRepo    repositories.StaffRepository
	fuelTypeRepo repositories.FuelTypeRepository
}

// NewStationService creates a new station service
func NewStationService(
	stationRepo repositories.StationRepository,
	pumpRepo repositories.PumpRepository,
	staffRepo repositories.StaffRepository,
	fuelTypeRepo repositories.FuelTypeRepository,
) *StationService {
	return &StationService{
		stationRepo:  stationRepo,
		pumpRepo:     pumpRepo,
		staffRepo:    staffRepo,
		fuelTypeRepo: fuelTypeRepo,
	}
}

// invalid wraps ErrInvalidInput with a field message
func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

// notFound maps gorm's missing record error to sentinel
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// ============================================================
// Stations
// ============================================================

// CreateStationInput represents create station input
type CreateStationInput struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	ManagerName string `json:"manager_name"`
}

// UpdateStationInput lists the mutable station fields
type UpdateStationInput struct {
	Name        *string `json:"name"`
	Location    *string `json:"location"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	ManagerName *string `json:"manager_name"`
	IsActive    *bool   `json:"is_active"`
}

// ListStations lists active stations, or every station with includeInactive
func (s *StationService) ListStations(ctx context.Context, includeInactive bool) ([]*models.Station, error) {
	return s.stationRepo.List(ctx, includeInactive)
}

// GetStation gets a station with its pumps, active staff and inventory
func (s *StationService) GetStation(ctx context.Context, id uint) (*models.Station, error) {
	station, err := s.stationRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrStationNotFound)
	}
	return station, nil
}

// CreateStation creates a station. Names are trimmed and unique.
func (s *StationService) CreateStation(ctx context.Context, input *CreateStationInput) (*models.Station, error) {
	name := strings.TrimSpace(input.Name)
	location := strings.TrimSpace(input.Location)
	if name == "" {
		return nil, invalid("name is required")
	}
	if location == "" {
		return nil, invalid("location is required")
	}

	exists, err := s.stationRepo.ExistsByName(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrStationExists
	}

	station := &models.Station{
		Name:        name,
		Location:    location,
		Address:     strings.TrimSpace(input.Address),
		Phone:       strings.TrimSpace(input.Phone),
		ManagerName: strings.TrimSpace(input.ManagerName),
		IsActive:    true,
	}
	if err := s.stationRepo.Create(ctx, station); err != nil {
		return nil, err
	}

	log.Printf("✅ Station created: %s (ID: %d)", station.Name, station.ID)
	return station, nil
}

// UpdateStation applies the non-nil fields of input
func (s *StationService) UpdateStation(ctx context.Context, id uint, input *UpdateStationInput) (*models.Station, error) {
	station, err := s.stationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrStationNotFound)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, invalid("name cannot be empty")
		}
		if name != station.Name {
			exists, err := s.stationRepo.ExistsByName(ctx, name, id)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrStationExists
			}
		}
		station.Name = name
	}
	if input.Location != nil {
		location := strings.TrimSpace(*input.Location)
		if location == "" {
			return nil, invalid("location cannot be empty")
		}
		station.Location = location
	}
	if input.Address != nil {
		station.Address = strings.TrimSpace(*input.Address)
	}
	if input.Phone != nil {
		station.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.ManagerName != nil {
		station.ManagerName = strings.TrimSpace(*input.ManagerName)
	}
	if input.IsActive != nil {
		station.IsActive = *input.IsActive
	}

	if err := s.stationRepo.Update(ctx, station); err != nil {
		return nil, err
	}
	return station, nil
}

// DeleteStation deactivates a station
func (s *StationService) DeleteStation(ctx context.Context, id uint) error {
	if _, err := s.stationRepo.GetByID(ctx, id); err != nil {
		return notFound(err, domain.ErrStationNotFound)
	}
	if err := s.stationRepo.Deactivate(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Station deactivated: ID %d", id)
	return nil
}

// ============================================================
// Pumps
// ============================================================

// CreatePumpInput represents create pump input
type CreatePumpInput struct {
	PumpNumber int  `json:"pump_number"`
	FuelTypeID uint `json:"fuel_type_id"`
	StationID  uint `json:"station_id"`
}

// UpdatePumpInput lists the mutable pump fields
type UpdatePumpInput struct {
	PumpNumber *int  `json:"pump_number"`
	FuelTypeID *uint `json:"fuel_type_id"`
	StationID  *uint `json:"station_id"`
}

// ListPumps lists pumps, optionally for one station
func (s *StationService) ListPumps(ctx context.Context, stationID uint) ([]*models.Pump, error) {
	return s.pumpRepo.List(ctx, stationID)
}

// GetPump gets a pump by ID
func (s *StationService) GetPump(ctx context.Context, id uint) (*models.Pump, error) {
	pump, err := s.pumpRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrPumpNotFound)
	}
	return pump, nil
}

// CreatePump creates a pump on an existing station
func (s *StationService) CreatePump(ctx context.Context, input *CreatePumpInput) (*models.Pump, error) {
	if input.PumpNumber < 1 {
		return nil, invalid("pump_number must be positive")
	}
	if err := s.requireStation(ctx, input.StationID); err != nil {
		return nil, err
	}
	if err := s.requireFuelType(ctx, input.FuelTypeID); err != nil {
		return nil, err
	}

	pump := &models.Pump{
		PumpNumber: input.PumpNumber,
		FuelTypeID: input.FuelTypeID,
		StationID:  input.StationID,
	}
	if err := s.pumpRepo.Create(ctx, pump); err != nil {
		return nil, err
	}
	return s.GetPump(ctx, pump.ID)
}

// UpdatePump applies the non-nil fields of input
func (s *StationService) UpdatePump(ctx context.Context, id uint, input *UpdatePumpInput) (*models.Pump, error) {
	pump, err := s.GetPump(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.PumpNumber != nil {
		if *input.PumpNumber < 1 {
			return nil, invalid("pump_number must be positive")
		}
		pump.PumpNumber = *input.PumpNumber
	}
	if input.StationID != nil {
		if err := s.requireStation(ctx, *input.StationID); err != nil {
			return nil, err
		}
		pump.StationID = *input.StationID
	}
	if input.FuelTypeID != nil {
		if err := s.requireFuelType(ctx, *input.FuelTypeID); err != nil {
			return nil, err
		}
		pump.FuelTypeID = *input.FuelTypeID
	}

	if err := s.pumpRepo.Update(ctx, pump); err != nil {
		return nil, err
	}
	return s.GetPump(ctx, id)
}

// DeletePump removes a pump
func (s *StationService) DeletePump(ctx context.Context, id uint) error {
	if _, err := s.GetPump(ctx, id); err != nil {
		return err
	}
	return s.pumpRepo.Delete(ctx, id)
}

// ============================================================
// Staff
// ============================================================

// CreateStaffInput represents create staff input
type CreateStaffInput struct {
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	StationID uint       `json:"station_id"`
	Email     string     `json:"email"`
	HireDate  *time.Time `json:"hire_date"`
}

// UpdateStaffInput lists the mutable staff fields
type UpdateStaffInput struct {
	Name      *string `json:"name"`
	Role      *string `json:"role"`
	StationID *uint   `json:"station_id"`
	Email     *string `json:"email"`
	IsActive  *bool   `json:"is_active"`
}

// ListStaff lists staff members matching filter
func (s *StationService) ListStaff(ctx context.Context, filter repositories.StaffFilter) ([]*models.Staff, error) {
	return s.staffRepo.List(ctx, filter)
}

// GetStaff gets a staff member by ID
func (s *StationService) GetStaff(ctx context.Context, id uint) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrStaffNotFound)
	}
	return staff, nil
}

// CreateStaff adds a staff member to a station
func (s *StationService) CreateStaff(ctx context.Context, input *CreateStaffInput) (*models.Staff, error) {
	name := strings.TrimSpace(input.Name)
	role := strings.TrimSpace(input.Role)
	if name == "" {
		return nil, invalid("name is required")
	}
	if role == "" {
		return nil, invalid("role is required")
	}
	if err := s.requireStation(ctx, input.StationID); err != nil {
		return nil, err
	}

	email, err := s.staffEmail(ctx, input.Email, 0)
	if err != nil {
		return nil, err
	}

	hireDate := time.Now()
	if input.HireDate != nil {
		hireDate = *input.HireDate
	}

	staff := &models.Staff{
		Name:      name,
		Role:      role,
		StationID: input.StationID,
		Email:     email,
		IsActive:  true,
		HireDate:  hireDate,
	}
	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// UpdateStaff applies the non-nil fields of input
func (s *StationService) UpdateStaff(ctx context.Context, id uint, input *UpdateStaffInput) (*models.Staff, error) {
	staff, err := s.GetStaff(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, invalid("name cannot be empty")
		}
		staff.Name = name
	}
	if input.Role != nil {
		role := strings.TrimSpace(*input.Role)
		if role == "" {
			return nil, invalid("role cannot be empty")
		}
		staff.Role = role
	}
	if input.StationID != nil {
		if err := s.requireStation(ctx, *input.StationID); err != nil {
			return nil, err
		}
		staff.StationID = *input.StationID
	}
	if input.Email != nil {
		email, err := s.staffEmail(ctx, *input.Email, id)
		if err != nil {
			return nil, err
		}
		staff.Email = email
	}
	if input.IsActive != nil {
		staff.IsActive = *input.IsActive
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// DeleteStaff deactivates a staff member
func (s *StationService) DeleteStaff(ctx context.Context, id uint) error {
	if _, err := s.GetStaff(ctx, id); err != nil {
		return err
	}
	return s.staffRepo.Deactivate(ctx, id)
}

// staffEmail normalizes an optional email and checks it is unused
func (s *StationService) staffEmail(ctx context.Context, raw string, excludeID uint) (*string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return nil, nil
	}
	if !strings.Contains(email, "@") {
		return nil, invalid("email is invalid")
	}

	exists, err := s.staffRepo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrStaffEmailTaken
	}
	return &email, nil
}

func (s *StationService) requireStation(ctx context.Context, id uint) error {
	if id == 0 {
		return invalid("station_id is required")
	}
	if _, err := s.stationRepo.GetByID(ctx, id); err != nil {
		return notFound(err, domain.ErrStationNotFound)
	}
	return nil
}

func (s *StationService) requireFuelType(ctx context.Context, id uint) error {
	if id == 0 {
		return invalid("fuel_type_id is required")
	}
	if _, err := s.fuelTypeRepo.GetByID(ctx, id); err != nil {
		return notFound(err, domain.ErrFuelTypeNotFound)
	}
	return nil
}
