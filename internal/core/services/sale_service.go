package services

import (
	"context"
	"time"

	"petrol-tracker/internal/adapters/persistence/models"
	"petrol-tracker/internal/adapters/persistence/repositories"
	"petrol-tracker/internal/core/domain"

	"github.com/shopspring/decimal"
)

// SaleService records fuel sales
type SaleService struct {
	saleRepo     repositories.SaleRepository
	stationRepo  repositories.StationRepository
	fuelTypeRepo repositories.FuelTypeRepository
	staffRepo    repositories.StaffRepository
	now          func() time.Time
}

// NewSaleService creates a new sale service. now stamps sales without a date.
func NewSaleService(
	saleRepo repositories.SaleRepository,
	stationRepo repositories.StationRepository,
	fuelTypeRepo repositories.FuelTypeRepository,
	staffRepo repositories.StaffRepository,
	now func() time.Time,
) *SaleService {
	if now == nil {
		now = time.Now
	}
	return &SaleService{
		saleRepo:     saleRepo,
		stationRepo:  stationRepo,
		fuelTypeRepo: fuelTypeRepo,
		staffRepo:    staffRepo,
		now:          now,
	}
}

// CreateSaleInput represents create sale input. Any client total is ignored.
type CreateSaleInput struct {
	StationID     uint       `json:"station_id"`
	FuelTypeID    uint       `json:"fuel_type_id"`
	StaffID       *uint      `json:"staff_id"`
	PumpNumber    int        `json:"pump_number"`
	Litres        float64    `json:"litres"`
	PricePerLitre *float64   `json:"price_per_litre"`
	PaymentMethod string     `json:"payment_method"`
	SaleDate      *time.Time `json:"sale_date"`
}

// UpdateSaleInput lists the mutable sale fields
type UpdateSaleInput struct {
	Litres        *float64 `json:"litres"`
	PricePerLitre *float64 `json:"price_per_litre"`
	PaymentMethod *string  `json:"payment_method"`
	PumpNumber    *int     `json:"pump_number"`
	StaffID       *uint    `json:"staff_id"`
}

// Litres and prices are stored with two decimals
const saleScale = 2

// SaleTotal returns litres x price with both first rounded to the stored
// scale, so the total always matches the persisted row
func SaleTotal(litres, pricePerLitre float64) float64 {
	return decimal.NewFromFloat(litres).Round(saleScale).
		Mul(decimal.NewFromFloat(pricePerLitre).Round(saleScale)).
		Round(saleScale).
		InexactFloat64()
}

func toScale(v float64) float64 {
	return decimal.NewFromFloat(v).Round(saleScale).InexactFloat64()
}

// ListSales lists sales newest first
func (s *SaleService) ListSales(ctx context.Context, filter repositories.SaleFilter) ([]*models.Sale, int64, error) {
	return s.saleRepo.List(ctx, filter)
}

// GetSale gets a sale by ID
func (s *SaleService) GetSale(ctx context.Context, id uint) (*models.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrSaleNotFound)
	}
	return sale, nil
}

// CreateSale records a sale. Price defaults to the fuel type's current price.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*models.Sale, error) {
	if input.StationID == 0 {
		return nil, invalid("station_id is required")
	}
	if input.FuelTypeID == 0 {
		return nil, invalid("fuel_type_id is required")
	}
	if input.PumpNumber < 1 {
		return nil, invalid("pump_number must be positive")
	}
	litres := toScale(input.Litres)
	if litres <= 0 {
		return nil, invalid("litres must be greater than 0")
	}

	method := input.PaymentMethod
	if method == "" {
		method = models.PaymentCash
	}
	if !models.ValidPaymentMethod(method) {
		return nil, domain.ErrInvalidPayment
	}

	station, err := s.stationRepo.GetByID(ctx, input.StationID)
	if err != nil {
		return nil, notFound(err, domain.ErrStationNotFound)
	}
	if !station.IsActive {
		return nil, domain.ErrStationInactive
	}
	ft, err := s.fuelTypeRepo.GetByID(ctx, input.FuelTypeID)
	if err != nil {
		return nil, notFound(err, domain.ErrFuelTypeNotFound)
	}
	if err := s.requireStaff(ctx, input.StaffID); err != nil {
		return nil, err
	}

	price := ft.PricePerLitre
	if input.PricePerLitre != nil {
		price = *input.PricePerLitre
	}
	price = toScale(price)
	if price <= 0 {
		return nil, invalid("price_per_litre must be greater than 0")
	}

	saleDate := s.now()
	if input.SaleDate != nil && !input.SaleDate.IsZero() {
		saleDate = *input.SaleDate
	}

	sale := &models.Sale{
		StationID:     input.StationID,
		FuelTypeID:    input.FuelTypeID,
		StaffID:       input.StaffID,
		PumpNumber:    input.PumpNumber,
		Litres:        litres,
		PricePerLitre: price,
		TotalAmount:   SaleTotal(litres, price),
		PaymentMethod: method,
		SaleDate:      saleDate,
	}
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}
	return s.GetSale(ctx, sale.ID)
}

// UpdateSale applies the non-nil fields of input and recomputes the total
func (s *SaleService) UpdateSale(ctx context.Context, id uint, input *UpdateSaleInput) (*models.Sale, error) {
	sale, err := s.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Litres != nil {
		litres := toScale(*input.Litres)
		if litres <= 0 {
			return nil, invalid("litres must be greater than 0")
		}
		sale.Litres = litres
	}
	if input.PricePerLitre != nil {
		price := toScale(*input.PricePerLitre)
		if price <= 0 {
			return nil, invalid("price_per_litre must be greater than 0")
		}
		sale.PricePerLitre = price
	}
	if input.PaymentMethod != nil {
		if !models.ValidPaymentMethod(*input.PaymentMethod) {
			return nil, domain.ErrInvalidPayment
		}
		sale.PaymentMethod = *input.PaymentMethod
	}
	if input.PumpNumber != nil {
		if *input.PumpNumber < 1 {
			return nil, invalid("pump_number must be positive")
		}
		sale.PumpNumber = *input.PumpNumber
	}
	if input.StaffID != nil {
		if err := s.requireStaff(ctx, input.StaffID); err != nil {
			return nil, err
		}
		sale.StaffID = input.StaffID
	}

	sale.TotalAmount = SaleTotal(sale.Litres, sale.PricePerLitre)
	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// DeleteSale removes a sale
func (s *SaleService) DeleteSale(ctx context.Context, id uint) error {
	if _, err := s.GetSale(ctx, id); err != nil {
		return err
	}
	return s.saleRepo.Delete(ctx, id)
}

func (s *SaleService) requireStaff(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := s.staffRepo.GetByID(ctx, *id); err != nil {
		return notFound(err, domain.ErrStaffNotFound)
	}
	return nil
}
