package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"petrol-tracker/internal/adapters/persistence/models"

	"github.com/robfig/cron/v3"
)

const jobTimeout = 2 * time.Minute

// LowStockSource lists inventory at or below its minimum threshold
type LowStockSource interface {
	LowStock(ctx context.Context) ([]*models.FuelInventory, error)
}

// LowStockNotifier delivers a low stock summary
type LowStockNotifier interface {
	NotifyLowStock(items []*models.FuelInventory) bool
}

// TokenCleaner removes expired refresh tokens
type TokenCleaner interface {
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// CronService runs scheduled maintenance jobs
type CronService struct {
	cron      *cron.Cron
	inventory LowStockSource
	notifier  LowStockNotifier
	tokens    TokenCleaner
}

// NewCronService schedules the low stock alert on lowStockSpec and the token
// cleanup hourly, both evaluated in loc
func NewCronService(
	inventory LowStockSource,
	notifier LowStockNotifier,
	tokens TokenCleaner,
	lowStockSpec string,
	loc *time.Location,
) (*CronService, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := &CronService{
		cron:      cron.New(cron.WithLocation(loc)),
		inventory: inventory,
		notifier:  notifier,
		tokens:    tokens,
	}

	if _, err := s.cron.AddFunc(lowStockSpec, func() { s.RunLowStockCheck(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid LOW_STOCK_CRON %q: %w", lowStockSpec, err)
	}
	if _, err := s.cron.AddFunc("@hourly", func() { s.RunTokenCleanup(context.Background()) }); err != nil {
		return nil, err
	}
	return s, nil
}

// Start starts the scheduler in its own goroutine
func (s *CronService) Start() {
	s.cron.Start()
	log.Printf("🚀 CronService started (%d jobs)", len(s.cron.Entries()))
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 CronService stopped")
}

// RunLowStockCheck sends one alert listing every low inventory record.
// It returns the number of records reported.
func (s *CronService) RunLowStockCheck(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	items, err := s.inventory.LowStock(ctx)
	if err != nil {
		log.Printf("❌ Low stock check failed: %v", err)
		return 0
	}
	if len(items) == 0 {
		log.Println("✅ Low stock check: all tanks above threshold")
		return 0
	}

	s.notifier.NotifyLowStock(items)
	log.Printf("⚠️ Low stock check: %d tanks at or below threshold", len(items))
	return len(items)
}

// RunTokenCleanup deletes expired refresh tokens
func (s *CronService) RunTokenCleanup(ctx context.Context) int64 {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	n, err := s.tokens.CleanupExpiredTokens(ctx)
	if err != nil {
		log.Printf("❌ Refresh token cleanup failed: %v", err)
		return 0
	}
	if n > 0 {
		log.Printf("🗑️ Deleted %d expired refresh tokens", n)
	}
	return n
}
