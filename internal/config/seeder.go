package config

import (
	"fmt"
	"log"
	"time"

	"petrol-tracker/internal/adapters/persistence/models"
	"petrol-tracker/internal/pkg/password"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	if err := s.db.Transaction(s.seedDemoData); err != nil {
		return fmt.Errorf("demo data seed failed: %w", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser creates the admin account once
func (s *Seeder) seedAdminUser() error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash(s.cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     "Administrator",
		Email:    s.cfg.Seed.AdminEmail,
		Password: hashedPassword,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}

type seedStation struct {
	name, location, address, manager string
	pumps                            []string
	staff                            [][2]string
}

var seedFuelTypes = []models.FuelType{
	{Name: "Petrol", PricePerLitre: 182.50, Color: "#ff7300"},
	{Name: "Diesel", PricePerLitre: 167.90, Color: "#387908"},
	{Name: "Kerosene", PricePerLitre: 151.20, Color: "#8884d8"},
}

var seedStations = []seedStation{
	{
		name: "Westlands Service Station", location: "Nairobi", address: "Waiyaki Way", manager: "Grace Wanjiru",
		pumps: []string{"Petrol", "Petrol", "Diesel", "Kerosene"},
		staff: [][2]string{{"Brian Otieno", "attendant"}, {"Grace Wanjiru", "manager"}, {"Faith Achieng", "cashier"}},
	},
	{
		name: "Mombasa Road Fuel Centre", location: "Nairobi", address: "Mombasa Road", manager: "Peter Mwangi",
		pumps: []string{"Petrol", "Diesel", "Diesel"},
		staff: [][2]string{{"Peter Mwangi", "manager"}, {"Kevin Kiprop", "attendant"}},
	},
	{
		name: "Nakuru Highway Station", location: "Nakuru", address: "Kenyatta Avenue", manager: "Mary Njeri",
		pumps: []string{"Petrol", "Diesel"},
		staff: [][2]string{{"Mary Njeri", "manager"}, {"James Mutua", "attendant"}, {"Ann Chebet", "cashier"}},
	},
}

// seedDemoData creates fuel types, stations and ten days of sales.
// It does nothing once any station exists.
func (s *Seeder) seedDemoData(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&models.Station{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("⚠️ Demo data skipped: stations already exist")
		return nil
	}

	fuelByName := make(map[string]*models.FuelType)
	for i := range seedFuelTypes {
		ft := seedFuelTypes[i]
		if err := tx.Where(models.FuelType{Name: ft.Name}).FirstOrCreate(&ft).Error; err != nil {
			return err
		}
		fuelByName[ft.Name] = &ft
	}

	now := s.cfg.Now()
	for si, seed := range seedStations {
		station := &models.Station{
			Name:        seed.name,
			Location:    seed.location,
			Address:     seed.address,
			ManagerName: seed.manager,
			IsActive:    true,
		}
		if err := tx.Create(station).Error; err != nil {
			return err
		}

		for i, fuel := range seed.pumps {
			pump := &models.Pump{PumpNumber: i + 1, FuelTypeID: fuelByName[fuel].ID, StationID: station.ID}
			if err := tx.Omit("FuelType").Create(pump).Error; err != nil {
				return err
			}
		}

		var staffIDs []uint
		for _, m := range seed.staff {
			staff := &models.Staff{Name: m[0], Role: m[1], StationID: station.ID, IsActive: true, HireDate: now.AddDate(-1, 0, 0)}
			if err := tx.Create(staff).Error; err != nil {
				return err
			}
			staffIDs = append(staffIDs, staff.ID)
		}

		for fi, ft := range seedFuelTypes {
			stock := 12000.0 - float64(si*3000+fi*1500)
			// the last station runs low on diesel
			if si == len(seedStations)-1 && ft.Name == "Diesel" {
				stock = 800
			}
			refill := now.AddDate(0, 0, -(si + fi + 1))
			item := &models.FuelInventory{
				StationID:        station.ID,
				FuelTypeID:       fuelByName[ft.Name].ID,
				CurrentStock:     stock,
				Capacity:         15000,
				MinimumThreshold: 2000,
				LastRefill:       &refill,
			}
			if err := tx.Omit("Station", "FuelType").Create(item).Error; err != nil {
				return err
			}
		}

		if err := seedSales(tx, station, seed.pumps, fuelByName, staffIDs, now, si); err != nil {
			return err
		}
	}

	log.Printf("✅ Demo data created: %d stations", len(seedStations))
	return nil
}

// seedSales spreads a deterministic set of sales over the last ten days
func seedSales(tx *gorm.DB, station *models.Station, pumps []string, fuels map[string]*models.FuelType, staffIDs []uint, now time.Time, offset int) error {
	methods := []string{models.PaymentCash, models.PaymentCard, models.PaymentMobile}
	var sales []models.Sale
	for day := 0; day < 10; day++ {
		for i, fuel := range pumps {
			n := day + i + offset
			litres := decimal.NewFromInt(int64(15 + (n*7)%40))
			price := decimal.NewFromFloat(fuels[fuel].PricePerLitre)
			staffID := staffIDs[n%len(staffIDs)]
			sales = append(sales, models.Sale{
				StationID:     station.ID,
				FuelTypeID:    fuels[fuel].ID,
				StaffID:       &staffID,
				PumpNumber:    i + 1,
				Litres:        litres.InexactFloat64(),
				PricePerLitre: price.InexactFloat64(),
				TotalAmount:   litres.Mul(price).Round(2).InexactFloat64(),
				PaymentMethod: methods[n%len(methods)],
				SaleDate:      now.Add(-time.Duration(day*24+i*2+offset) * time.Hour),
			})
		}
	}
	return tx.Omit("Station", "FuelType", "Staff").CreateInBatches(sales, 50).Error
}
