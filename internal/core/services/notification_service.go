package services

import (
	"fmt"
	"log"
	"strings"

	"petrol-tracker/internal/adapters/persistence/models"
	"petrol-tracker/internal/config"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSender delivers a text message
type SMSSender interface {
	Send(to, body string) error
}

// twilioSender sends SMS through the Twilio REST API
type twilioSender struct {
	client *twilio.RestClient
	from   string
}

func (t *twilioSender) Send(to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.Sid != nil {
		log.Printf("📨 SMS sent to %s, SID: %s", to, *resp.Sid)
	}
	return nil
}

// NotificationService sends operational alerts by SMS
type NotificationService struct {
	sender  SMSSender
	alertTo string
}

// NewNotificationService creates a notification service. Without complete
// Twilio settings alerts are only logged.
func NewNotificationService(cfg config.TwilioConfig) *NotificationService {
	if !cfg.Enabled() {
		log.Println("⚠️ Twilio not configured, alerts will be logged only")
		return &NotificationService{}
	}

	return NewNotificationServiceWithSender(&twilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
		from: cfg.FromNumber,
	}, cfg.AlertTo)
}

// NewNotificationServiceWithSender creates a notification service on any sender
func NewNotificationServiceWithSender(sender SMSSender, alertTo string) *NotificationService {
	return &NotificationService{sender: sender, alertTo: alertTo}
}

// IsEnabled checks if SMS delivery is configured
func (s *NotificationService) IsEnabled() bool {
	return s.sender != nil && s.alertTo != ""
}

// NotifyLowStock sends one summary of low inventory. It returns whether an
// SMS went out; delivery errors are logged only.
func (s *NotificationService) NotifyLowStock(items []*models.FuelInventory) bool {
	if len(items) == 0 {
		return false
	}

	message := LowStockMessage(items)
	if !s.IsEnabled() {
		log.Printf("⚠️ Low stock alert (SMS disabled):\n%s", message)
		return false
	}

	if err := s.sender.Send(s.alertTo, message); err != nil {
		log.Printf("❌ Failed to send low stock SMS to %s: %v", s.alertTo, err)
		return false
	}
	return true
}

// LowStockMessage formats the low stock summary
func LowStockMessage(items []*models.FuelInventory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⛽ Low stock alert (%d)", len(items))
	for _, item := range items {
		fmt.Fprintf(&b, "\n- %s / %s: %.0f L (%.1f%%, min %.1f%%)",
			stationName(item.Station, item.StationID),
			fuelTypeName(item.FuelType, item.FuelTypeID),
			item.CurrentStock,
			round1(item.StockPercentage()),
			round1(item.ThresholdPercentage()),
		)
	}
	return b.String()
}
