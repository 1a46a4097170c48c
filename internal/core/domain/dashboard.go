package domain

// DashboardSnapshot is the summary returned by the dashboard endpoint.
// JSON names are consumed by the frontend and must not change.
type DashboardSnapshot struct {
	TotalRevenue     float64         `json:"totalRevenue"`
	TotalLitres      float64         `json:"totalLitres"`
	TotalStations    int64           `json:"totalStations"`
	TotalStaff       int64           `json:"totalStaff"`
	TodaySales       int             `json:"todaySales"`
	AvgPricePerLitre float64         `json:"avgPricePerLitre"`
	RecentSales      []RecentSale    `json:"recentSales"`
	FuelTypeData     []FuelTypeShare `json:"fuelTypeData"`
	SalesTrends      []SalesTrend    `json:"salesTrends"`
	TopStations      []StationRank   `json:"topStations"`
	LowStockAlerts   []LowStockAlert `json:"lowStockAlerts"`
}

// RecentSale is one of the latest sales with a human readable age
type RecentSale struct {
	ID       uint    `json:"id"`
	Pump     string  `json:"pump"`
	FuelType string  `json:"fuelType"`
	Litres   float64 `json:"litres"`
	Amount   float64 `json:"amount"`
	Time     string  `json:"time"`
}

// FuelTypeShare is a fuel type's share of litres sold in the window.
// Value is a percentage of total litres.
type FuelTypeShare struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Revenue float64 `json:"revenue"`
	Color   string  `json:"color"`
}

// SalesTrend is the sales count and revenue of one calendar day
type SalesTrend struct {
	Date    string  `json:"date"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

// StationRank is a station's sales in the window
type StationRank struct {
	Name    string  `json:"name"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

// LowStockAlert reports stock and minimum threshold as percentages of capacity
type LowStockAlert struct {
	Station   string  `json:"station"`
	FuelType  string  `json:"fuelType"`
	Level     float64 `json:"level"`
	Threshold float64 `json:"threshold"`
}
