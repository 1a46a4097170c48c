package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"petrol-tracker/internal/adapters/persistence/models"
)

type fakeSender struct {
	to, body string
	calls    int
	err      error
}

func (f *fakeSender) Send(to, body string) error {
	f.calls++
	f.to, f.body = to, body
	return f.err
}

type fakeLowStock struct {
	items []*models.FuelInventory
	err   error
}

func (f *fakeLowStock) LowStock(ctx context.Context) ([]*models.FuelInventory, error) {
	return f.items, f.err
}

type fakeCleaner struct{ n int64 }

func (f *fakeCleaner) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	return f.n, nil
}

func lowItem() *models.FuelInventory {
	return &models.FuelInventory{
		StationID: 1, Station: &models.Station{Name: "Central"},
		FuelTypeID: 2, FuelType: &models.FuelType{Name: "Diesel"},
		CurrentStock: 800, Capacity: 5000, MinimumThreshold: 1000,
	}
}

func TestLowStockMessage(t *testing.T) {
	msg := LowStockMessage([]*models.FuelInventory{lowItem()})
	if !strings.Contains(msg, "Low stock alert (1)") {
		t.Errorf("missing header in %q", msg)
	}
	if !strings.Contains(msg, "Central / Diesel: 800 L (16.0%, min 20.0%)") {
		t.Errorf("unexpected line in %q", msg)
	}
}

func TestNotifyLowStock(t *testing.T) {
	sender := &fakeSender{}
	svc := NewNotificationServiceWithSender(sender, "+254700000000")

	if svc.NotifyLowStock(nil) {
		t.Error("expected nothing sent for empty list")
	}
	if !svc.NotifyLowStock([]*models.FuelInventory{lowItem()}) {
		t.Error("expected SMS sent")
	}
	if sender.to != "+254700000000" || sender.calls != 1 {
		t.Errorf("unexpected send %+v", sender)
	}

	sender.err = errors.New("twilio down")
	if svc.NotifyLowStock([]*models.FuelInventory{lowItem()}) {
		t.Error("expected failure to be reported as not sent")
	}

	disabled := NewNotificationServiceWithSender(nil, "")
	if disabled.IsEnabled() || disabled.NotifyLowStock([]*models.FuelInventory{lowItem()}) {
		t.Error("expected disabled service to only log")
	}
}

func TestCronJobs(t *testing.T) {
	sender := &fakeSender{}
	source := &fakeLowStock{items: []*models.FuelInventory{lowItem(), lowItem()}}
	cleaner := &fakeCleaner{n: 3}

	svc, err := NewCronService(source, NewNotificationServiceWithSender(sender, "+1"), cleaner, "0 7 * * *", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := svc.RunLowStockCheck(context.Background()); n != 2 {
		t.Errorf("expected 2 low records, got %d", n)
	}
	if sender.calls != 1 {
		t.Errorf("expected one summary SMS, got %d", sender.calls)
	}

	source.items = nil
	if n := svc.RunLowStockCheck(context.Background()); n != 0 || sender.calls != 1 {
		t.Errorf("expected no alert when stock is fine, got %d records and %d calls", n, sender.calls)
	}

	source.err = errors.New("db down")
	if n := svc.RunLowStockCheck(context.Background()); n != 0 {
		t.Errorf("expected 0 on error, got %d", n)
	}

	if n := svc.RunTokenCleanup(context.Background()); n != 3 {
		t.Errorf("expected 3 tokens cleaned, got %d", n)
	}

	svc.Start()
	svc.Stop()
}

func TestCronInvalidSpec(t *testing.T) {
	if _, err := NewCronService(&fakeLowStock{}, NewNotificationServiceWithSender(nil, ""), &fakeCleaner{}, "not a cron", time.UTC); err == nil {
		t.Error("expected invalid spec error")
	}
}
