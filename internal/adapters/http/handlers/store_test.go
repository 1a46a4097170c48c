package handlers

import (
	"context"
	"sort"

	"petrol-tracker/internal/adapters/persistence/models"
	"petrol-tracker/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// testStore backs the in-memory repositories used by the resource handler tests
type testStore struct {
	stations  map[uint]*models.Station
	pumps     map[uint]*models.Pump
	staff     map[uint]*models.Staff
	inventory map[uint]*models.FuelInventory
	sales     map[uint]*models.Sale
	fuelTypes *memFuelTypes
	nextID    uint
}

func newTestStore() *testStore {
	return &testStore{
		stations:  map[uint]*models.Station{},
		pumps:     map[uint]*models.Pump{},
		staff:     map[uint]*models.Staff{},
		inventory: map[uint]*models.FuelInventory{},
		sales:     map[uint]*models.Sale{},
		fuelTypes: &memFuelTypes{rows: map[uint]*models.FuelType{}, refs: map[uint]int64{}},
	}
}

func (s *testStore) id() uint {
	s.nextID++
	return s.nextID
}

func ids[T any](rows map[uint]T) []uint {
	out := make([]uint, 0, len(rows))
	for id := range rows {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type stationRepo struct{ *testStore }

func (r stationRepo) Create(ctx context.Context, st *models.Station) error {
	st.ID = r.id()
	cp := *st
	r.stations[st.ID] = &cp
	return nil
}

func (r stationRepo) GetByID(ctx context.Context, id uint) (*models.Station, error) {
	st, ok := r.stations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *st
	return &cp, nil
}

func (r stationRepo) GetDetail(ctx context.Context, id uint) (*models.Station, error) {
	return r.GetByID(ctx, id)
}

func (r stationRepo) List(ctx context.Context, includeInactive bool) ([]*models.Station, error) {
	var out []*models.Station
	for _, id := range ids(r.stations) {
		if st := r.stations[id]; includeInactive || st.IsActive {
			out = append(out, st)
		}
	}
	return out, nil
}

func (r stationRepo) Update(ctx context.Context, st *models.Station) error {
	cp := *st
	r.stations[st.ID] = &cp
	return nil
}

func (r stationRepo) Deactivate(ctx context.Context, id uint) error {
	r.stations[id].IsActive = false
	return nil
}

func (r stationRepo) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	for _, st := range r.stations {
		if st.Name == name && st.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type pumpRepo struct{ *testStore }

func (r pumpRepo) Create(ctx context.Context, p *models.Pump) error {
	p.ID = r.id()
	cp := *p
	r.pumps[p.ID] = &cp
	return nil
}

func (r pumpRepo) GetByID(ctx context.Context, id uint) (*models.Pump, error) {
	p, ok := r.pumps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r pumpRepo) List(ctx context.Context, stationID uint) ([]*models.Pump, error) {
	var out []*models.Pump
	for _, id := range ids(r.pumps) {
		if p := r.pumps[id]; stationID == 0 || p.StationID == stationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r pumpRepo) Update(ctx context.Context, p *models.Pump) error {
	cp := *p
	r.pumps[p.ID] = &cp
	return nil
}

func (r pumpRepo) Delete(ctx context.Context, id uint) error {
	delete(r.pumps, id)
	return nil
}

type staffRepo struct{ *testStore }

func (r staffRepo) Create(ctx context.Context, s *models.Staff) error {
	s.ID = r.id()
	cp := *s
	r.staff[s.ID] = &cp
	return nil
}

func (r staffRepo) GetByID(ctx context.Context, id uint) (*models.Staff, error) {
	s, ok := r.staff[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r staffRepo) List(ctx context.Context, f repositories.StaffFilter) ([]*models.Staff, error) {
	var out []*models.Staff
	for _, id := range ids(r.staff) {
		s := r.staff[id]
		if (f.StationID == 0 || s.StationID == f.StationID) && (f.IncludeInactive || s.IsActive) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r staffRepo) Update(ctx context.Context, s *models.Staff) error {
	cp := *s
	r.staff[s.ID] = &cp
	return nil
}

func (r staffRepo) Deactivate(ctx context.Context, id uint) error {
	r.staff[id].IsActive = false
	return nil
}

func (r staffRepo) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	for _, s := range r.staff {
		if s.Email != nil && *s.Email == email && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type inventoryRepo struct{ *testStore }

func (r inventoryRepo) Create(ctx context.Context, item *models.FuelInventory) error {
	item.ID = r.id()
	cp := *item
	r.inventory[item.ID] = &cp
	return nil
}

func (r inventoryRepo) GetByID(ctx context.Context, id uint) (*models.FuelInventory, error) {
	item, ok := r.inventory[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *item
	return &cp, nil
}

func (r inventoryRepo) List(ctx context.Context, f repositories.InventoryFilter) ([]*models.FuelInventory, error) {
	var out []*models.FuelInventory
	for _, id := range ids(r.inventory) {
		item := r.inventory[id]
		if f.StationID != 0 && item.StationID != f.StationID {
			continue
		}
		if f.LowOnly && !item.IsLowStock() {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r inventoryRepo) Update(ctx context.Context, item *models.FuelInventory) error {
	cp := *item
	r.inventory[item.ID] = &cp
	return nil
}

func (r inventoryRepo) Delete(ctx context.Context, id uint) error {
	delete(r.inventory, id)
	return nil
}

func (r inventoryRepo) Exists(ctx context.Context, stationID, fuelTypeID uint) (bool, error) {
	for _, item := range r.inventory {
		if item.StationID == stationID && item.FuelTypeID == fuelTypeID {
			return true, nil
		}
	}
	return false, nil
}

type saleRepo struct{ *testStore }

func (r saleRepo) Create(ctx context.Context, s *models.Sale) error {
	s.ID = r.id()
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r saleRepo) GetByID(ctx context.Context, id uint) (*models.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r saleRepo) List(ctx context.Context, f repositories.SaleFilter) ([]*models.Sale, int64, error) {
	var out []*models.Sale
	for _, id := range ids(r.sales) {
		s := r.sales[id]
		if f.StationID != 0 && s.StationID != f.StationID {
			continue
		}
		if f.Since != nil && s.SaleDate.Before(*f.Since) {
			continue
		}
		if f.Until != nil && !s.SaleDate.Before(*f.Until) {
			continue
		}
		out = append(out, s)
	}
	total := int64(len(out))
	if f.Offset > len(out) {
		f.Offset = len(out)
	}
	out = out[f.Offset:]
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func (r saleRepo) Update(ctx context.Context, s *models.Sale) error {
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r saleRepo) Delete(ctx context.Context, id uint) error {
	delete(r.sales, id)
	return nil
}

var (
	_ repositories.StationRepository   = stationRepo{}
	_ repositories.PumpRepository      = pumpRepo{}
	_ repositories.StaffRepository     = staffRepo{}
	_ repositories.InventoryRepository = inventoryRepo{}
	_ repositories.SaleRepository      = saleRepo{}
	_ repositories.FuelTypeRepository  = (*memFuelTypes)(nil)
)
