package services

import (
	"context"
	"errors"
	"testing"

	"petrol-tracker/internal/adapters/persistence/models"
	"petrol-tracker/internal/adapters/persistence/repositories"
	"petrol-tracker/internal/core/domain"
)

func newTestStationService() (*StationService, *memStore) {
	store := newMemStore()
	svc := NewStationService(memStations{store}, memPumps{store}, memStaff{store}, memFuelTypes{store})
	return svc, store
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func uintPtr(u uint) *uint    { return &u }
func intPtr(i int) *int       { return &i }

func TestCreateStation(t *testing.T) {
	svc, _ := newTestStationService()
	ctx := context.Background()

	st, err := svc.CreateStation(ctx, &CreateStationInput{Name: "  Central  ", Location: "Nairobi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Name != "Central" || !st.IsActive {
		t.Errorf("expected trimmed active station, got %+v", st)
	}

	tests := []struct {
		name  string
		input CreateStationInput
		want  error
	}{
		{"duplicate", CreateStationInput{Name: "Central", Location: "Mombasa"}, domain.ErrStationExists},
		{"blank name", CreateStationInput{Name: "   ", Location: "Mombasa"}, domain.ErrInvalidInput},
		{"missing location", CreateStationInput{Name: "East"}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateStation(ctx, &tt.input); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestUpdateAndDeleteStation(t *testing.T) {
	svc, _ := newTestStationService()
	ctx := context.Background()

	a, _ := svc.CreateStation(ctx, &CreateStationInput{Name: "A", Location: "X"})
	b, _ := svc.CreateStation(ctx, &CreateStationInput{Name: "B", Location: "Y"})

	if _, err := svc.UpdateStation(ctx, b.ID, &UpdateStationInput{Name: strPtr("A")}); !errors.Is(err, domain.ErrStationExists) {
		t.Errorf("expected ErrStationExists, got %v", err)
	}

	updated, err := svc.UpdateStation(ctx, a.ID, &UpdateStationInput{Name: strPtr("A"), Phone: strPtr(" 0700 "), ManagerName: strPtr("Mary")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Phone != "0700" || updated.ManagerName != "Mary" || updated.Location != "X" {
		t.Errorf("unexpected update result %+v", updated)
	}

	if _, err := svc.UpdateStation(ctx, 999, &UpdateStationInput{}); !errors.Is(err, domain.ErrStationNotFound) {
		t.Errorf("expected ErrStationNotFound, got %v", err)
	}

	if err := svc.DeleteStation(ctx, a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	active, _ := svc.ListStations(ctx, false)
	if len(active) != 1 || active[0].ID != b.ID {
		t.Errorf("expected only B active, got %+v", active)
	}
	all, _ := svc.ListStations(ctx, true)
	if len(all) != 2 {
		t.Errorf("expected 2 stations including inactive, got %d", len(all))
	}
}

func TestPumps(t *testing.T) {
	svc, store := newTestStationService()
	ctx := context.Background()

	st, _ := svc.CreateStation(ctx, &CreateStationInput{Name: "A", Location: "X"})
	petrol := &models.FuelType{Name: "Petrol", PricePerLitre: 150}
	memFuelTypes{store}.Create(ctx, petrol)

	if _, err := svc.CreatePump(ctx, &CreatePumpInput{PumpNumber: 1, FuelTypeID: petrol.ID, StationID: 999}); !errors.Is(err, domain.ErrStationNotFound) {
		t.Errorf("expected ErrStationNotFound, got %v", err)
	}
	if _, err := svc.CreatePump(ctx, &CreatePumpInput{PumpNumber: 0, FuelTypeID: petrol.ID, StationID: st.ID}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.CreatePump(ctx, &CreatePumpInput{PumpNumber: 1, FuelTypeID: 999, StationID: st.ID}); !errors.Is(err, domain.ErrFuelTypeNotFound) {
		t.Errorf("expected ErrFuelTypeNotFound, got %v", err)
	}

	pump, err := svc.CreatePump(ctx, &CreatePumpInput{PumpNumber: 1, FuelTypeID: petrol.ID, StationID: st.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pump.FuelType == nil || pump.FuelType.Name != "Petrol" {
		t.Errorf("expected fuel type loaded, got %+v", pump.FuelType)
	}

	pump, err = svc.UpdatePump(ctx, pump.ID, &UpdatePumpInput{PumpNumber: intPtr(4)})
	if err != nil || pump.PumpNumber != 4 {
		t.Fatalf("expected pump number 4, got %+v (%v)", pump, err)
	}

	detail, _ := svc.GetStation(ctx, st.ID)
	if len(detail.Pumps) != 1 {
		t.Errorf("expected station detail with 1 pump, got %d", len(detail.Pumps))
	}

	if err := svc.DeletePump(ctx, pump.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetPump(ctx, pump.ID); !errors.Is(err, domain.ErrPumpNotFound) {
		t.Errorf("expected ErrPumpNotFound after delete, got %v", err)
	}
}

func TestStaff(t *testing.T) {
	svc, _ := newTestStationService()
	ctx := context.Background()

	st, _ := svc.CreateStation(ctx, &CreateStationInput{Name: "A", Location: "X"})

	alice, err := svc.CreateStaff(ctx, &CreateStaffInput{Name: "Alice", Role: "attendant", StationID: st.ID, Email: " Alice@Example.com "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alice.Email == nil || *alice.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %v", alice.Email)
	}
	if alice.HireDate.IsZero() {
		t.Error("expected hire date to default to now")
	}

	if _, err := svc.CreateStaff(ctx, &CreateStaffInput{Name: "Bob", Role: "cashier", StationID: st.ID, Email: "alice@example.com"}); !errors.Is(err, domain.ErrStaffEmailTaken) {
		t.Errorf("expected ErrStaffEmailTaken, got %v", err)
	}
	bob, err := svc.CreateStaff(ctx, &CreateStaffInput{Name: "Bob", Role: "cashier", StationID: st.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bob.Email != nil {
		t.Errorf("expected no email, got %v", *bob.Email)
	}

	// keeping one's own email is not a conflict
	if _, err := svc.UpdateStaff(ctx, alice.ID, &UpdateStaffInput{Email: strPtr("alice@example.com"), Role: strPtr("manager")}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := svc.UpdateStaff(ctx, bob.ID, &UpdateStaffInput{StationID: uintPtr(999)}); !errors.Is(err, domain.ErrStationNotFound) {
		t.Errorf("expected ErrStationNotFound, got %v", err)
	}

	if err := svc.DeleteStaff(ctx, bob.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	active, _ := svc.ListStaff(ctx, repositories.StaffFilter{StationID: st.ID})
	if len(active) != 1 || active[0].Name != "Alice" {
		t.Errorf("expected only Alice active, got %+v", active)
	}
	all, _ := svc.ListStaff(ctx, repositories.StaffFilter{IncludeInactive: true})
	if len(all) != 2 {
		t.Errorf("expected 2 staff including inactive, got %d", len(all))
	}

	reactivated, err := svc.UpdateStaff(ctx, bob.ID, &UpdateStaffInput{IsActive: boolPtr(true)})
	if err != nil || !reactivated.IsActive {
		t.Errorf("expected bob reactivated, got %+v (%v)", reactivated, err)
	}
}
