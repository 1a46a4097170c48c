package services

import (
	"context"
	"sort"
	"time"

	"petrol-tracker/internal/adapters/persistence/models"
	"petrol-tracker/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// in-memory repositories shared by the service tests

type memUsers struct {
	rows   map[uint]*models.User
	nextID uint
}

func newMemUsers() *memUsers { return &memUsers{rows: map[uint]*models.User{}} }

func (m *memUsers) Create(ctx context.Context, u *models.User) error {
	m.nextID++
	u.ID = m.nextID
	cp := *u
	m.rows[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(ctx context.Context, id uint) (*models.User, error) {
	u, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUsers) Update(ctx context.Context, u *models.User) error {
	cp := *u
	m.rows[u.ID] = &cp
	return nil
}

func (m *memUsers) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	var out []*models.User
	for id := uint(1); id <= m.nextID; id++ {
		if u, ok := m.rows[id]; ok {
			out = append(out, u)
		}
	}
	total := int64(len(out))
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (m *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

type memTokens struct {
	rows   map[uint]*models.RefreshToken
	nextID uint
}

func newMemTokens() *memTokens { return &memTokens{rows: map[uint]*models.RefreshToken{}} }

func (m *memTokens) Create(ctx context.Context, t *models.RefreshToken) error {
	m.nextID++
	t.ID = m.nextID
	m.rows[t.ID] = t
	return nil
}

func (m *memTokens) GetByTokenHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	for _, t := range m.rows {
		if t.TokenHash == hash {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memTokens) Revoke(ctx context.Context, id uint) error {
	now := time.Now()
	m.rows[id].RevokedAt = &now
	return nil
}

func (m *memTokens) RevokeByTokenHash(ctx context.Context, hash string) error {
	t, err := m.GetByTokenHash(ctx, hash)
	if err != nil {
		return nil
	}
	return m.Revoke(ctx, t.ID)
}

func (m *memTokens) RevokeAllByUserID(ctx context.Context, userID uint) error {
	for _, t := range m.rows {
		if t.UserID == userID && t.RevokedAt == nil {
			m.Revoke(ctx, t.ID)
		}
	}
	return nil
}

func (m *memTokens) DeleteExpired(ctx context.Context) (int64, error) {
	var n int64
	for id, t := range m.rows {
		if t.IsExpired() {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

// memStore backs the station, pump, staff, fuel type, inventory and sale fakes
type memStore struct {
	stations  map[uint]*models.Station
	pumps     map[uint]*models.Pump
	staff     map[uint]*models.Staff
	fuelTypes map[uint]*models.FuelType
	inventory map[uint]*models.FuelInventory
	sales     map[uint]*models.Sale
	nextID    uint
}

func newMemStore() *memStore {
	return &memStore{
		stations:  map[uint]*models.Station{},
		pumps:     map[uint]*models.Pump{},
		staff:     map[uint]*models.Staff{},
		fuelTypes: map[uint]*models.FuelType{},
		inventory: map[uint]*models.FuelInventory{},
		sales:     map[uint]*models.Sale{},
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func sortedIDs[T any](rows map[uint]T) []uint {
	ids := make([]uint, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type memStations struct{ *memStore }

func (m memStations) Create(ctx context.Context, st *models.Station) error {
	st.ID = m.id()
	m.stations[st.ID] = st
	return nil
}

func (m memStations) GetByID(ctx context.Context, id uint) (*models.Station, error) {
	st, ok := m.stations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *st
	return &cp, nil
}

func (m memStations) GetDetail(ctx context.Context, id uint) (*models.Station, error) {
	st, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, pid := range sortedIDs(m.pumps) {
		if p := m.pumps[pid]; p.StationID == id {
			st.Pumps = append(st.Pumps, *p)
		}
	}
	for _, sid := range sortedIDs(m.staff) {
		if s := m.staff[sid]; s.StationID == id && s.IsActive {
			st.Staff = append(st.Staff, *s)
		}
	}
	return st, nil
}

func (m memStations) List(ctx context.Context, includeInactive bool) ([]*models.Station, error) {
	var out []*models.Station
	for _, id := range sortedIDs(m.stations) {
		if st := m.stations[id]; includeInactive || st.IsActive {
			out = append(out, st)
		}
	}
	return out, nil
}

func (m memStations) Update(ctx context.Context, st *models.Station) error {
	cp := *st
	m.stations[st.ID] = &cp
	return nil
}

func (m memStations) Deactivate(ctx context.Context, id uint) error {
	m.stations[id].IsActive = false
	return nil
}

func (m memStations) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	for _, st := range m.stations {
		if st.Name == name && st.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type memPumps struct{ *memStore }

func (m memPumps) Create(ctx context.Context, p *models.Pump) error {
	p.ID = m.id()
	cp := *p
	m.pumps[p.ID] = &cp
	return nil
}

func (m memPumps) GetByID(ctx context.Context, id uint) (*models.Pump, error) {
	p, ok := m.pumps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	cp.FuelType = m.fuelTypes[p.FuelTypeID]
	return &cp, nil
}

func (m memPumps) List(ctx context.Context, stationID uint) ([]*models.Pump, error) {
	var out []*models.Pump
	for _, id := range sortedIDs(m.pumps) {
		if p := m.pumps[id]; stationID == 0 || p.StationID == stationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m memPumps) Update(ctx context.Context, p *models.Pump) error {
	cp := *p
	cp.FuelType = nil
	m.pumps[p.ID] = &cp
	return nil
}

func (m memPumps) Delete(ctx context.Context, id uint) error {
	delete(m.pumps, id)
	return nil
}

type memStaff struct{ *memStore }

func (m memStaff) Create(ctx context.Context, s *models.Staff) error {
	s.ID = m.id()
	cp := *s
	m.staff[s.ID] = &cp
	return nil
}

func (m memStaff) GetByID(ctx context.Context, id uint) (*models.Staff, error) {
	s, ok := m.staff[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (m memStaff) List(ctx context.Context, f repositories.StaffFilter) ([]*models.Staff, error) {
	var out []*models.Staff
	for _, id := range sortedIDs(m.staff) {
		s := m.staff[id]
		if (f.StationID == 0 || s.StationID == f.StationID) && (f.IncludeInactive || s.IsActive) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m memStaff) Update(ctx context.Context, s *models.Staff) error {
	cp := *s
	m.staff[s.ID] = &cp
	return nil
}

func (m memStaff) Deactivate(ctx context.Context, id uint) error {
	m.staff[id].IsActive = false
	return nil
}

func (m memStaff) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	for _, s := range m.staff {
		if s.Email != nil && *s.Email == email && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type memFuelTypes struct{ *memStore }

func (m memFuelTypes) Create(ctx context.Context, ft *models.FuelType) error {
	ft.ID = m.id()
	cp := *ft
	m.fuelTypes[ft.ID] = &cp
	return nil
}

func (m memFuelTypes) GetByID(ctx context.Context, id uint) (*models.FuelType, error) {
	ft, ok := m.fuelTypes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ft
	return &cp, nil
}

func (m memFuelTypes) List(ctx context.Context) ([]*models.FuelType, error) {
	var out []*models.FuelType
	for _, id := range sortedIDs(m.fuelTypes) {
		out = append(out, m.fuelTypes[id])
	}
	return out, nil
}

func (m memFuelTypes) Update(ctx context.Context, ft *models.FuelType) error {
	cp := *ft
	m.fuelTypes[ft.ID] = &cp
	return nil
}

func (m memFuelTypes) Delete(ctx context.Context, id uint) error {
	delete(m.fuelTypes, id)
	return nil
}

func (m memFuelTypes) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	for _, ft := range m.fuelTypes {
		if ft.Name == name && ft.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m memFuelTypes) CountReferences(ctx context.Context, id uint) (int64, error) {
	var n int64
	for _, s := range m.sales {
		if s.FuelTypeID == id {
			n++
		}
	}
	for _, i := range m.inventory {
		if i.FuelTypeID == id {
			n++
		}
	}
	return n, nil
}

type memInventory struct{ *memStore }

func (m memInventory) Create(ctx context.Context, item *models.FuelInventory) error {
	item.ID = m.id()
	cp := *item
	m.inventory[item.ID] = &cp
	return nil
}

func (m memInventory) GetByID(ctx context.Context, id uint) (*models.FuelInventory, error) {
	item, ok := m.inventory[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *item
	cp.Station = m.stations[item.StationID]
	cp.FuelType = m.fuelTypes[item.FuelTypeID]
	return &cp, nil
}

func (m memInventory) List(ctx context.Context, f repositories.InventoryFilter) ([]*models.FuelInventory, error) {
	var out []*models.FuelInventory
	for _, id := range sortedIDs(m.inventory) {
		item, _ := m.GetByID(ctx, id)
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

func (m memInventory) Update(ctx context.Context, item *models.FuelInventory) error {
	cp := *item
	m.inventory[item.ID] = &cp
	return nil
}

func (m memInventory) Delete(ctx context.Context, id uint) error {
	delete(m.inventory, id)
	return nil
}

func (m memInventory) Exists(ctx context.Context, stationID, fuelTypeID uint) (bool, error) {
	for _, item := range m.inventory {
		if item.StationID == stationID && item.FuelTypeID == fuelTypeID {
			return true, nil
		}
	}
	return false, nil
}

type memSales struct{ *memStore }

func (m memSales) Create(ctx context.Context, s *models.Sale) error {
	s.ID = m.id()
	cp := *s
	m.sales[s.ID] = &cp
	return nil
}

func (m memSales) GetByID(ctx context.Context, id uint) (*models.Sale, error) {
	s, ok := m.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	cp.Station = m.stations[s.StationID]
	cp.FuelType = m.fuelTypes[s.FuelTypeID]
	return &cp, nil
}

func (m memSales) List(ctx context.Context, f repositories.SaleFilter) ([]*models.Sale, int64, error) {
	var out []*models.Sale
	for _, id := range sortedIDs(m.sales) {
		s := m.sales[id]
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
	sort.SliceStable(out, func(i, j int) bool { return out[i].SaleDate.After(out[j].SaleDate) })
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

func (m memSales) Update(ctx context.Context, s *models.Sale) error {
	cp := *s
	m.sales[s.ID] = &cp
	return nil
}

func (m memSales) Delete(ctx context.Context, id uint) error {
	delete(m.sales, id)
	return nil
}

var (
	_ repositories.UserRepository         = (*memUsers)(nil)
	_ repositories.RefreshTokenRepository = (*memTokens)(nil)
	_ repositories.StationRepository      = memStations{}
	_ repositories.PumpRepository         = memPumps{}
	_ repositories.StaffRepository        = memStaff{}
	_ repositories.FuelTypeRepository     = memFuelTypes{}
	_ repositories.InventoryRepository    = memInventory{}
	_ repositories.SaleRepository         = memSales{}
)
