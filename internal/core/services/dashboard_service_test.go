package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"petrol-tracker/internal/adapters/persistence/models"
	"petrol-tracker/internal/adapters/persistence/repositories"
	"petrol-tracker/internal/core/domain"
)

type fakeDashboardRepo struct {
	stations  int64
	staff     int64
	sales     []*models.Sale
	fuelTypes []*models.FuelType
	inventory []*models.FuelInventory

	salesErr    error
	readOnlyHit int
	since       time.Time
}

func (f *fakeDashboardRepo) CountActiveStations(ctx context.Context) (int64, error) {
	return f.stations, nil
}

func (f *fakeDashboardRepo) CountActiveStaff(ctx context.Context) (int64, error) {
	return f.staff, nil
}

func (f *fakeDashboardRepo) ListSalesSince(ctx context.Context, since time.Time) ([]*models.Sale, error) {
	if f.salesErr != nil {
		return nil, f.salesErr
	}
	f.since = since
	var out []*models.Sale
	for _, s := range f.sales {
		if !s.SaleDate.Before(since) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeDashboardRepo) ListRecentSales(ctx context.Context, limit int) ([]*models.Sale, error) {
	sorted := append([]*models.Sale(nil), f.sales...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].SaleDate.After(sorted[j-1].SaleDate); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (f *fakeDashboardRepo) ListFuelTypes(ctx context.Context) ([]*models.FuelType, error) {
	return f.fuelTypes, nil
}

func (f *fakeDashboardRepo) ListInventory(ctx context.Context) ([]*models.FuelInventory, error) {
	return f.inventory, nil
}

func (f *fakeDashboardRepo) ReadOnly(ctx context.Context, fn func(repo repositories.DashboardRepository) error) error {
	f.readOnlyHit++
	return fn(f)
}

var (
	testNow     = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	petrol      = &models.FuelType{ID: 1, Name: "Petrol", PricePerLitre: 150, Color: "#ff0000"}
	diesel      = &models.FuelType{ID: 2, Name: "Diesel", PricePerLitre: 140, Color: "#00ff00"}
	kerosene    = &models.FuelType{ID: 3, Name: "Kerosene", PricePerLitre: 120, Color: "#0000ff"}
	testStation = &models.Station{ID: 1, Name: "Central", IsActive: true}
)

func newSale(id uint, station *models.Station, ft *models.FuelType, litres, price float64, at time.Time) *models.Sale {
	return &models.Sale{
		ID:            id,
		StationID:     station.ID,
		Station:       station,
		FuelTypeID:    ft.ID,
		FuelType:      ft,
		PumpNumber:    1,
		Litres:        litres,
		PricePerLitre: price,
		TotalAmount:   litres * price,
		PaymentMethod: models.PaymentCash,
		SaleDate:      at,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeSingleRecentSale(t *testing.T) {
	repo := &fakeDashboardRepo{
		stations:  3,
		staff:     7,
		fuelTypes: []*models.FuelType{petrol, diesel},
		sales:     []*models.Sale{newSale(1, testStation, petrol, 50, 150, testNow.Add(-10*time.Minute))},
	}
	svc := NewDashboardService(repo, false)

	snap, err := svc.Compute(context.Background(), ParseWindow("7d"), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.TotalStations != 3 || snap.TotalStaff != 7 {
		t.Errorf("expected counts 3/7, got %d/%d", snap.TotalStations, snap.TotalStaff)
	}
	if snap.TotalRevenue != 7500 {
		t.Errorf("expected totalRevenue 7500, got %v", snap.TotalRevenue)
	}
	if snap.TotalLitres != 50 {
		t.Errorf("expected totalLitres 50, got %v", snap.TotalLitres)
	}
	if snap.AvgPricePerLitre != 150 {
		t.Errorf("expected avgPricePerLitre 150, got %v", snap.AvgPricePerLitre)
	}
	if snap.TodaySales != 1 {
		t.Errorf("expected todaySales 1, got %d", snap.TodaySales)
	}
	if len(snap.RecentSales) != 1 {
		t.Fatalf("expected 1 recent sale, got %d", len(snap.RecentSales))
	}
	recent := snap.RecentSales[0]
	if recent.Time != "10 minutes ago" {
		t.Errorf("expected '10 minutes ago', got %q", recent.Time)
	}
	if recent.Pump != "Pump 1 - Central" {
		t.Errorf("expected pump label 'Pump 1 - Central', got %q", recent.Pump)
	}
	if recent.FuelType != "Petrol" || recent.Amount != 7500 {
		t.Errorf("unexpected recent sale %+v", recent)
	}
	if len(snap.FuelTypeData) != 1 || snap.FuelTypeData[0].Name != "Petrol" || snap.FuelTypeData[0].Value != 100 {
		t.Errorf("expected Petrol at 100%%, got %+v", snap.FuelTypeData)
	}
}

func TestComputeEmpty(t *testing.T) {
	repo := &fakeDashboardRepo{fuelTypes: []*models.FuelType{petrol}}
	svc := NewDashboardService(repo, false)

	snap, err := svc.Compute(context.Background(), Window30d, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.AvgPricePerLitre != 0 || snap.TotalRevenue != 0 || snap.TotalLitres != 0 {
		t.Errorf("expected zero aggregates, got %+v", snap)
	}
	if len(snap.FuelTypeData) != 0 {
		t.Errorf("expected no fuel type data, got %+v", snap.FuelTypeData)
	}
	if snap.RecentSales == nil || snap.TopStations == nil || snap.LowStockAlerts == nil {
		t.Error("expected empty slices, not nil")
	}
	if len(snap.SalesTrends) != 7 {
		t.Fatalf("expected 7 trend entries, got %d", len(snap.SalesTrends))
	}
	for _, tr := range snap.SalesTrends {
		if tr.Sales != 0 || tr.Revenue != 0 {
			t.Errorf("expected zero-filled trend, got %+v", tr)
		}
	}
}

func TestComputeLowStockAlerts(t *testing.T) {
	repo := &fakeDashboardRepo{
		inventory: []*models.FuelInventory{
			{ID: 1, StationID: 1, Station: testStation, FuelTypeID: 1, FuelType: petrol, CurrentStock: 800, Capacity: 5000, MinimumThreshold: 1000},
			{ID: 2, StationID: 1, Station: testStation, FuelTypeID: 2, FuelType: diesel, CurrentStock: 4000, Capacity: 5000, MinimumThreshold: 1000},
			{ID: 3, StationID: 1, Station: testStation, FuelTypeID: 3, FuelType: kerosene, CurrentStock: 1000, Capacity: 3000, MinimumThreshold: 1000},
			{ID: 4, StationID: 2, FuelTypeID: 1, CurrentStock: 0, Capacity: 0, MinimumThreshold: 0},
		},
	}
	svc := NewDashboardService(repo, false)

	snap, err := svc.Compute(context.Background(), Window7d, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.LowStockAlert{
		{Station: "Central", FuelType: "Petrol", Level: 16.0, Threshold: 20.0},
		{Station: "Central", FuelType: "Kerosene", Level: 33.3, Threshold: 33.3},
		{Station: "Station #2", FuelType: "Fuel #1", Level: 0, Threshold: 0},
	}
	if len(snap.LowStockAlerts) != len(want) {
		t.Fatalf("expected %d alerts, got %+v", len(want), snap.LowStockAlerts)
	}
	for i, w := range want {
		if snap.LowStockAlerts[i] != w {
			t.Errorf("alert %d: expected %+v, got %+v", i, w, snap.LowStockAlerts[i])
		}
	}
}

func TestComputeUnknownRangeMatchesDefault(t *testing.T) {
	repo := &fakeDashboardRepo{
		fuelTypes: []*models.FuelType{petrol, diesel},
		sales: []*models.Sale{
			newSale(1, testStation, petrol, 10, 150, testNow.Add(-2*24*time.Hour)),
			newSale(2, testStation, diesel, 20, 140, testNow.Add(-20*24*time.Hour)),
		},
	}
	svc := NewDashboardService(repo, false)

	if ParseWindow("abc") != Window7d || ParseWindow("") != Window7d {
		t.Fatal("expected unknown range to parse as 7d")
	}

	def, err := svc.Compute(context.Background(), ParseWindow("7d"), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	unknown, err := svc.Compute(context.Background(), ParseWindow("abc"), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if def.TotalRevenue != unknown.TotalRevenue || def.TotalLitres != unknown.TotalLitres {
		t.Errorf("expected identical snapshots, got %+v and %+v", def, unknown)
	}
	if def.TotalRevenue != 1500 {
		t.Errorf("expected only the 2 day old sale in 7d, got revenue %v", def.TotalRevenue)
	}

	wide, err := svc.Compute(context.Background(), Window30d, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wide.TotalRevenue != 4300 {
		t.Errorf("expected 30d revenue 4300, got %v", wide.TotalRevenue)
	}
	if !repo.since.Equal(testNow.Add(-30 * 24 * time.Hour)) {
		t.Errorf("expected window start 30 days back, got %v", repo.since)
	}
}

func TestComputeSalesTrends(t *testing.T) {
	repo := &fakeDashboardRepo{
		fuelTypes: []*models.FuelType{petrol},
		sales: []*models.Sale{
			newSale(1, testStation, petrol, 10, 100, testNow.Add(-1*time.Hour)),
			newSale(2, testStation, petrol, 10, 100, testNow.Add(-2*time.Hour)),
			newSale(3, testStation, petrol, 5, 100, testNow.Add(-6*24*time.Hour)),
			newSale(4, testStation, petrol, 5, 100, testNow.Add(-7*24*time.Hour+time.Minute)),
		},
	}
	svc := NewDashboardService(repo, false)

	snap, err := svc.Compute(context.Background(), Window7d, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.SalesTrends) != 7 {
		t.Fatalf("expected 7 trend entries, got %d", len(snap.SalesTrends))
	}
	// 2024-03-15 is a Friday
	days := []string{"Sat", "Sun", "Mon", "Tue", "Wed", "Thu", "Fri"}
	for i, d := range days {
		if snap.SalesTrends[i].Date != d {
			t.Errorf("entry %d: expected %s, got %s", i, d, snap.SalesTrends[i].Date)
		}
	}
	if last := snap.SalesTrends[6]; last.Sales != 2 || last.Revenue != 2000 {
		t.Errorf("expected today 2 sales / 2000, got %+v", last)
	}
	if first := snap.SalesTrends[0]; first.Sales != 1 || first.Revenue != 500 {
		t.Errorf("expected oldest day 1 sale / 500, got %+v", first)
	}
	if snap.TodaySales != 2 {
		t.Errorf("expected todaySales 2, got %d", snap.TodaySales)
	}
	// the 7 days minus a minute sale is in the window but before the trend range
	if snap.TotalRevenue != 3000 {
		t.Errorf("expected revenue 3000, got %v", snap.TotalRevenue)
	}
}

func TestComputeTopStationsAndBreakdown(t *testing.T) {
	var stations []*models.Station
	for i := uint(1); i <= 7; i++ {
		stations = append(stations, &models.Station{ID: i, Name: "S" + string(rune('0'+i)), IsActive: true})
	}
	repo := &fakeDashboardRepo{fuelTypes: []*models.FuelType{petrol, diesel, kerosene}}
	at := testNow.Add(-3 * time.Hour)
	// revenue: S1=100, S2=700, S3=300, S4=300, S5=500, S6=200, S7=50
	revenues := []float64{100, 700, 300, 300, 500, 200, 50}
	for i, rev := range revenues {
		ft := petrol
		if i%2 == 1 {
			ft = diesel
		}
		repo.sales = append(repo.sales, newSale(uint(i+1), stations[i], ft, rev/10, 10, at))
	}
	svc := NewDashboardService(repo, false)

	snap, err := svc.Compute(context.Background(), Window7d, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantNames := []string{"S2", "S5", "S3", "S4", "S6"}
	if len(snap.TopStations) != len(wantNames) {
		t.Fatalf("expected %d top stations, got %d", len(wantNames), len(snap.TopStations))
	}
	for i, name := range wantNames {
		if snap.TopStations[i].Name != name {
			t.Errorf("rank %d: expected %s, got %s", i, name, snap.TopStations[i].Name)
		}
		if i > 0 && snap.TopStations[i].Revenue > snap.TopStations[i-1].Revenue {
			t.Errorf("top stations not sorted by revenue: %+v", snap.TopStations)
		}
	}

	sum := 0.0
	for _, ft := range snap.FuelTypeData {
		if ft.Value < 0 || ft.Value > 100 {
			t.Errorf("percentage out of range: %+v", ft)
		}
		if ft.Name == "Kerosene" {
			t.Errorf("expected fuel type without sales to be skipped")
		}
		sum += ft.Value
	}
	if sum > 100 {
		t.Errorf("percentages sum to %v", sum)
	}
	// petrol litres 10+30+50+5=95 of 215, truncated to 2 places
	if len(snap.FuelTypeData) != 2 || snap.FuelTypeData[0].Value != 44.18 || snap.FuelTypeData[1].Value != 55.81 {
		t.Errorf("unexpected breakdown %+v", snap.FuelTypeData)
	}
	if snap.FuelTypeData[1].Revenue != 1200 {
		t.Errorf("expected diesel revenue 1200, got %v", snap.FuelTypeData[1].Revenue)
	}
	if !almostEqual(snap.TotalRevenue, 2150) {
		t.Errorf("expected total revenue 2150, got %v", snap.TotalRevenue)
	}
}

func TestFuelSharesNeverExceedHundred(t *testing.T) {
	tests := []struct {
		name   string
		litres [3]float64
		want   [3]float64
	}{
		{"one litre", [3]float64{0.1, 0.1, 1.0}, [3]float64{8.33, 8.33, 83.33}},
		{"one point two", [3]float64{0.1, 0.1, 1.2}, [3]float64{7.14, 7.14, 85.71}},
		{"one point six", [3]float64{0.1, 0.1, 1.6}, [3]float64{5.55, 5.55, 88.88}},
		{"even split", [3]float64{1, 1, 2}, [3]float64{25, 25, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeDashboardRepo{fuelTypes: []*models.FuelType{petrol, diesel, kerosene}}
			for i, ft := range []*models.FuelType{petrol, diesel, kerosene} {
				repo.sales = append(repo.sales, newSale(uint(i+1), testStation, ft, tt.litres[i], 150, testNow.Add(-time.Hour)))
			}
			svc := NewDashboardService(repo, false)

			snap, err := svc.Compute(context.Background(), Window7d, testNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(snap.FuelTypeData) != 3 {
				t.Fatalf("expected 3 fuel types, got %+v", snap.FuelTypeData)
			}
			sum := 0.0
			for i, ft := range snap.FuelTypeData {
				if ft.Value != tt.want[i] {
					t.Errorf("%s: expected %v, got %v", ft.Name, tt.want[i], ft.Value)
				}
				sum += ft.Value
			}
			if sum > 100 {
				t.Errorf("percentages sum to %v", sum)
			}
		})
	}
}

func TestComputeRecentSalesLimit(t *testing.T) {
	repo := &fakeDashboardRepo{fuelTypes: []*models.FuelType{petrol}}
	for i := 0; i < 15; i++ {
		repo.sales = append(repo.sales, newSale(uint(i+1), testStation, petrol, 1, 100, testNow.Add(-time.Duration(i)*time.Hour)))
	}
	svc := NewDashboardService(repo, false)

	snap, err := svc.Compute(context.Background(), Window7d, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.RecentSales) != 10 {
		t.Fatalf("expected 10 recent sales, got %d", len(snap.RecentSales))
	}
	if snap.RecentSales[0].ID != 1 || snap.RecentSales[9].ID != 10 {
		t.Errorf("expected newest first, got first=%d last=%d", snap.RecentSales[0].ID, snap.RecentSales[9].ID)
	}
}

func TestComputeRepositoryError(t *testing.T) {
	cause := errors.New("connection refused")
	repo := &fakeDashboardRepo{salesErr: cause}

	for _, snapshotTx := range []bool{false, true} {
		svc := NewDashboardService(repo, snapshotTx)
		_, err := svc.Compute(context.Background(), Window7d, testNow)

		var aggErr *domain.AggregationError
		if !errors.As(err, &aggErr) {
			t.Fatalf("expected AggregationError, got %v", err)
		}
		if !errors.Is(err, cause) {
			t.Errorf("expected cause to be wrapped, got %v", err)
		}
		if aggErr.Op != "list sales" {
			t.Errorf("expected op 'list sales', got %q", aggErr.Op)
		}
	}
}

func TestComputeUsesReadOnlySnapshot(t *testing.T) {
	repo := &fakeDashboardRepo{}

	if _, err := NewDashboardService(repo, true).Compute(context.Background(), Window7d, testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.readOnlyHit != 1 {
		t.Errorf("expected one read-only transaction, got %d", repo.readOnlyHit)
	}

	if _, err := NewDashboardService(repo, false).Compute(context.Background(), Window7d, testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.readOnlyHit != 1 {
		t.Errorf("expected no transaction when disabled, got %d", repo.readOnlyHit)
	}
}

func TestRelativeAge(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"just now", 0, "0 minutes ago"},
		{"future", -5 * time.Minute, "0 minutes ago"},
		{"under an hour", 59*time.Minute + 59*time.Second, "59 minutes ago"},
		{"one hour", time.Hour, "1 hours ago"},
		{"under a day", 23*time.Hour + 59*time.Minute, "23 hours ago"},
		{"one day", 24 * time.Hour, "1 days ago"},
		{"several days", 75 * time.Hour, "3 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelativeAge(testNow.Add(-tt.elapsed), testNow); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
