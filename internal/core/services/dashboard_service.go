package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"petrol-tracker/internal/adapters/persistence/models"
	"petrol-tracker/internal/adapters/persistence/repositories"
	"petrol-tracker/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Window is the trailing period the dashboard aggregates over
type Window string

const (
	Window7d  Window = "7d"
	Window30d Window = "30d"
	Window90d Window = "90d"
)

const (
	recentSalesLimit = 10
	topStationsLimit = 5
	trendDays        = 7

	// shares are truncated, not rounded, so they never add up past 100
	sharePlaces = 2
)

// ParseWindow parses a range query value. Anything unknown falls back to 7d.
func ParseWindow(raw string) Window {
	switch Window(raw) {
	case Window30d:
		return Window30d
	case Window90d:
		return Window90d
	default:
		return Window7d
	}
}

// Days returns the window length in days
func (w Window) Days() int {
	switch w {
	case Window30d:
		return 30
	case Window90d:
		return 90
	default:
		return 7
	}
}

// Start returns the inclusive lower bound of the window
func (w Window) Start(now time.Time) time.Time {
	return now.Add(-time.Duration(w.Days()) * 24 * time.Hour)
}

// DashboardService computes dashboard snapshots
type DashboardService struct {
	repo       repositories.DashboardRepository
	snapshotTx bool
}

// NewDashboardService creates a new dashboard service.
// With snapshotTx every read of one Compute call shares a read-only transaction.
func NewDashboardService(repo repositories.DashboardRepository, snapshotTx bool) *DashboardService {
	return &DashboardService{repo: repo, snapshotTx: snapshotTx}
}

// Compute builds the dashboard for window as seen at now.
// Calendar days are evaluated in now's location.
func (s *DashboardService) Compute(ctx context.Context, window Window, now time.Time) (*domain.DashboardSnapshot, error) {
	if !s.snapshotTx {
		return compute(ctx, s.repo, window, now)
	}

	var snapshot *domain.DashboardSnapshot
	err := s.repo.ReadOnly(ctx, func(repo repositories.DashboardRepository) error {
		var err error
		snapshot, err = compute(ctx, repo, window, now)
		return err
	})
	if err != nil {
		var aggErr *domain.AggregationError
		if errors.As(err, &aggErr) {
			return nil, err
		}
		return nil, &domain.AggregationError{Op: "snapshot", Err: err}
	}
	return snapshot, nil
}

func compute(ctx context.Context, repo repositories.DashboardRepository, window Window, now time.Time) (*domain.DashboardSnapshot, error) {
	snapshot := &domain.DashboardSnapshot{}

	// Counts
	var err error
	if snapshot.TotalStations, err = repo.CountActiveStations(ctx); err != nil {
		return nil, &domain.AggregationError{Op: "count stations", Err: err}
	}
	if snapshot.TotalStaff, err = repo.CountActiveStaff(ctx); err != nil {
		return nil, &domain.AggregationError{Op: "count staff", Err: err}
	}

	sales, err := repo.ListSalesSince(ctx, window.Start(now))
	if err != nil {
		return nil, &domain.AggregationError{Op: "list sales", Err: err}
	}
	recent, err := repo.ListRecentSales(ctx, recentSalesLimit)
	if err != nil {
		return nil, &domain.AggregationError{Op: "list recent sales", Err: err}
	}
	fuelTypes, err := repo.ListFuelTypes(ctx)
	if err != nil {
		return nil, &domain.AggregationError{Op: "list fuel types", Err: err}
	}
	inventory, err := repo.ListInventory(ctx)
	if err != nil {
		return nil, &domain.AggregationError{Op: "list inventory", Err: err}
	}

	// Window aggregates
	revenue, litres, price := decimal.Zero, decimal.Zero, 0.0
	today := dayStart(now)
	for _, sale := range sales {
		revenue = revenue.Add(decimal.NewFromFloat(sale.TotalAmount))
		litres = litres.Add(decimal.NewFromFloat(sale.Litres))
		price += sale.PricePerLitre
		if dayStart(sale.SaleDate.In(now.Location())).Equal(today) {
			snapshot.TodaySales++
		}
	}
	snapshot.TotalRevenue = revenue.InexactFloat64()
	snapshot.TotalLitres = litres.InexactFloat64()
	if len(sales) > 0 {
		snapshot.AvgPricePerLitre = price / float64(len(sales))
	}

	snapshot.RecentSales = recentActivity(recent, now)
	snapshot.FuelTypeData = fuelBreakdown(sales, fuelTypes, litres)
	snapshot.SalesTrends = salesTrends(sales, now)
	snapshot.TopStations = topStations(sales)
	snapshot.LowStockAlerts = lowStockAlerts(inventory)

	return snapshot, nil
}

func recentActivity(sales []*models.Sale, now time.Time) []domain.RecentSale {
	out := make([]domain.RecentSale, 0, len(sales))
	for _, sale := range sales {
		out = append(out, domain.RecentSale{
			ID:       sale.ID,
			Pump:     fmt.Sprintf("Pump %d - %s", sale.PumpNumber, stationName(sale.Station, sale.StationID)),
			FuelType: fuelTypeName(sale.FuelType, sale.FuelTypeID),
			Litres:   sale.Litres,
			Amount:   sale.TotalAmount,
			Time:     RelativeAge(sale.SaleDate, now),
		})
	}
	return out
}

// RelativeAge formats the time elapsed from t to now as minutes under an
// hour, hours under a day, days otherwise. Future times read as 0 minutes.
func RelativeAge(t, now time.Time) string {
	elapsed := now.Sub(t)
	if elapsed < 0 {
		elapsed = 0
	}
	switch {
	case elapsed < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(elapsed/time.Minute))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(elapsed/time.Hour))
	default:
		return fmt.Sprintf("%d days ago", int(elapsed/(24*time.Hour)))
	}
}

func fuelBreakdown(sales []*models.Sale, fuelTypes []*models.FuelType, totalLitres decimal.Decimal) []domain.FuelTypeShare {
	type totals struct {
		count           int
		litres, revenue decimal.Decimal
	}
	byFuel := make(map[uint]*totals)
	for _, sale := range sales {
		t, ok := byFuel[sale.FuelTypeID]
		if !ok {
			t = &totals{}
			byFuel[sale.FuelTypeID] = t
		}
		t.count++
		t.litres = t.litres.Add(decimal.NewFromFloat(sale.Litres))
		t.revenue = t.revenue.Add(decimal.NewFromFloat(sale.TotalAmount))
	}

	out := make([]domain.FuelTypeShare, 0, len(byFuel))
	for _, ft := range fuelTypes {
		t, ok := byFuel[ft.ID]
		if !ok || t.count == 0 {
			continue
		}
		share := decimal.Zero
		if totalLitres.IsPositive() {
			share, _ = t.litres.Mul(decimal.NewFromInt(100)).QuoRem(totalLitres, sharePlaces)
		}
		out = append(out, domain.FuelTypeShare{
			Name:    ft.Name,
			Value:   share.InexactFloat64(),
			Revenue: t.revenue.InexactFloat64(),
			Color:   ft.Color,
		})
	}
	return out
}

func salesTrends(sales []*models.Sale, now time.Time) []domain.SalesTrend {
	today := dayStart(now)
	out := make([]domain.SalesTrend, trendDays)
	index := make(map[string]int, trendDays)
	revenue := make([]decimal.Decimal, trendDays)
	for i := 0; i < trendDays; i++ {
		day := today.AddDate(0, 0, i-(trendDays-1))
		out[i].Date = day.Format("Mon")
		index[day.Format(time.DateOnly)] = i
	}

	for _, sale := range sales {
		i, ok := index[sale.SaleDate.In(now.Location()).Format(time.DateOnly)]
		if !ok {
			continue
		}
		out[i].Sales++
		revenue[i] = revenue[i].Add(decimal.NewFromFloat(sale.TotalAmount))
	}
	for i := range out {
		out[i].Revenue = revenue[i].InexactFloat64()
	}
	return out
}

func topStations(sales []*models.Sale) []domain.StationRank {
	type rank struct {
		id      uint
		name    string
		sales   int
		revenue decimal.Decimal
	}
	byStation := make(map[uint]*rank)
	for _, sale := range sales {
		r, ok := byStation[sale.StationID]
		if !ok {
			r = &rank{id: sale.StationID, name: stationName(sale.Station, sale.StationID)}
			byStation[sale.StationID] = r
		}
		r.sales++
		r.revenue = r.revenue.Add(decimal.NewFromFloat(sale.TotalAmount))
	}

	ranks := make([]*rank, 0, len(byStation))
	for _, r := range byStation {
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool {
		if c := ranks[i].revenue.Cmp(ranks[j].revenue); c != 0 {
			return c > 0
		}
		return ranks[i].id < ranks[j].id
	})
	if len(ranks) > topStationsLimit {
		ranks = ranks[:topStationsLimit]
	}

	out := make([]domain.StationRank, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, domain.StationRank{
			Name:    r.name,
			Sales:   r.sales,
			Revenue: r.revenue.InexactFloat64(),
		})
	}
	return out
}

func lowStockAlerts(inventory []*models.FuelInventory) []domain.LowStockAlert {
	out := make([]domain.LowStockAlert, 0)
	for _, item := range inventory {
		if !item.IsLowStock() {
			continue
		}
		out = append(out, domain.LowStockAlert{
			Station:   stationName(item.Station, item.StationID),
			FuelType:  fuelTypeName(item.FuelType, item.FuelTypeID),
			Level:     round1(item.StockPercentage()),
			Threshold: round1(item.ThresholdPercentage()),
		})
	}
	return out
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// round1 rounds half away from zero to one decimal place
func round1(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}

func stationName(st *models.Station, id uint) string {
	if st == nil {
		return fmt.Sprintf("Station #%d", id)
	}
	return st.Name
}

func fuelTypeName(ft *models.FuelType, id uint) string {
	if ft == nil {
		return fmt.Sprintf("Fuel #%d", id)
	}
	return ft.Name
}
