package platform

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Memory implements Store with in-process concurrency safety. It backs
// development mode and tests; production uses the PostgreSQL store.
type Memory struct {
	mu         sync.RWMutex
	users      map[int64]*User
	rooms      map[int64]*Room
	bookings   map[int64]*Booking
	assets     map[int64]*Asset
	supplies   map[int64]*Supply
	projects   map[int64]*Project
	attendance map[int64]*AttendanceRecord
	nextID     int64
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:      make(map[int64]*User),
		rooms:      make(map[int64]*Room),
		bookings:   make(map[int64]*Booking),
		assets:     make(map[int64]*Asset),
		supplies:   make(map[int64]*Supply),
		projects:   make(map[int64]*Project),
		attendance: make(map[int64]*AttendanceRecord),
	}
}

func (m *Memory) Users() UserStore            { return memUsers{m} }
func (m *Memory) Rooms() RoomStore            { return memRooms{m} }
func (m *Memory) Bookings() BookingStore      { return memBookings{m} }
func (m *Memory) Assets() AssetStore          { return memAssets{m} }
func (m *Memory) Supplies() SupplyStore       { return memSupplies{m} }
func (m *Memory) Projects() ProjectStore      { return memProjects{m} }
func (m *Memory) Attendance() AttendanceStore { return memAttendance{m} }

// AddRoom seeds a room directly; rooms have no API write path.
func (m *Memory) AddRoom(room Room) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	if room.ID == 0 {
		room.ID = m.allocate()
	}
	m.rooms[room.ID] = &room
	return &room
}

// AddAsset seeds an asset directly.
func (m *Memory) AddAsset(asset Asset) *Asset {
	m.mu.Lock()
	defer m.mu.Unlock()
	if asset.ID == 0 {
		asset.ID = m.allocate()
	}
	m.assets[asset.ID] = &asset
	return &asset
}

// AddSupply seeds a supply item directly.
func (m *Memory) AddSupply(supply Supply) *Supply {
	m.mu.Lock()
	defer m.mu.Unlock()
	if supply.ID == 0 {
		supply.ID = m.allocate()
	}
	m.supplies[supply.ID] = &supply
	return &supply
}

// allocate hands out the next identifier; callers hold the write lock.
func (m *Memory) allocate() int64 {
	m.nextID++
	return m.nextID
}

// Users ---------------------------------------------------------------------

type memUsers struct{ m *Memory }

func (s memUsers) Create(_ context.Context, u *User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, existing := range s.m.users {
		if existing.Email == u.Email {
			return ErrAlreadyExists
		}
	}
	if u.ID == 0 {
		u.ID = s.m.allocate()
	}
	clone := *u
	s.m.users[u.ID] = &clone
	return nil
}

func (s memUsers) Find(_ context.Context, id int64) (*User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	u, ok := s.m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (s memUsers) FindByEmail(_ context.Context, email string) (*User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, u := range s.m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (s memUsers) List(_ context.Context) ([]*User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := make([]*User, 0, len(s.m.users))
	for _, u := range s.m.users {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Rooms ---------------------------------------------------------------------

type memRooms struct{ m *Memory }

func (s memRooms) Find(_ context.Context, id int64) (*Room, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	r, ok := s.m.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *r
	return &clone, nil
}

func (s memRooms) List(_ context.Context) ([]*Room, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := make([]*Room, 0, len(s.m.rooms))
	for _, r := range s.m.rooms {
		clone := *r
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Bookings ------------------------------------------------------------------

type memBookings struct{ m *Memory }

func (s memBookings) Create(_ context.Context, b *Booking) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if b.ID == 0 {
		b.ID = s.m.allocate()
	}
	clone := *b
	s.m.bookings[b.ID] = &clone
	return nil
}

func (s memBookings) Find(_ context.Context, id int64) (*Booking, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	b, ok := s.m.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (s memBookings) ListBetween(_ context.Context, from, to time.Time) ([]*Booking, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var out []*Booking
	for _, b := range s.m.bookings {
		if !from.IsZero() && b.EndsAt.Before(from) {
			continue
		}
		if !to.IsZero() && b.StartsAt.After(to) {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (s memBookings) ListOverlapping(_ context.Context, roomID int64, from, to time.Time) ([]*Booking, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var out []*Booking
	for _, b := range s.m.bookings {
		if b.RoomID != roomID {
			continue
		}
		if b.StartsAt.Before(to) && from.Before(b.EndsAt) {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s memBookings) Delete(_ context.Context, id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(s.m.bookings, id)
	return nil
}

// Assets --------------------------------------------------------------------

type memAssets struct{ m *Memory }

func (s memAssets) Find(_ context.Context, id int64) (*Asset, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	a, ok := s.m.assets[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *a
	if a.AssignedToID != nil {
		v := *a.AssignedToID
		clone.AssignedToID = &v
	}
	return &clone, nil
}

func (s memAssets) List(_ context.Context) ([]*Asset, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := make([]*Asset, 0, len(s.m.assets))
	for _, a := range s.m.assets {
		clone := *a
		if a.AssignedToID != nil {
			v := *a.AssignedToID
			clone.AssignedToID = &v
		}
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s memAssets) SetAssignee(_ context.Context, assetID int64, userID *int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	a, ok := s.m.assets[assetID]
	if !ok {
		return ErrNotFound
	}
	if userID == nil {
		a.AssignedToID = nil
		return nil
	}
	v := *userID
	a.AssignedToID = &v
	return nil
}

// Supplies ------------------------------------------------------------------

type memSupplies struct{ m *Memory }

func (s memSupplies) Find(_ context.Context, id int64) (*Supply, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	item, ok := s.m.supplies[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (s memSupplies) List(_ context.Context) ([]*Supply, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := make([]*Supply, 0, len(s.m.supplies))
	for _, item := range s.m.supplies {
		clone := *item
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s memSupplies) SetQuantity(_ context.Context, id int64, quantity int) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	item, ok := s.m.supplies[id]
	if !ok {
		return ErrNotFound
	}
	item.Quantity = quantity
	return nil
}

// Projects ------------------------------------------------------------------

type memProjects struct{ m *Memory }

func (s memProjects) Create(_ context.Context, p *Project) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.m.allocate()
	}
	clone := *p
	s.m.projects[p.ID] = &clone
	return nil
}

func (s memProjects) Find(_ context.Context, id int64) (*Project, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	p, ok := s.m.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (s memProjects) List(_ context.Context) ([]*Project, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := make([]*Project, 0, len(s.m.projects))
	for _, p := range s.m.projects {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s memProjects) SetStatus(_ context.Context, id int64, status string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.projects[id]
	if !ok {
		return ErrNotFound
	}
	p.Status = status
	return nil
}

// Attendance ----------------------------------------------------------------

type memAttendance struct{ m *Memory }

func (s memAttendance) Create(_ context.Context, rec *AttendanceRecord) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if rec.ID == 0 {
		rec.ID = s.m.allocate()
	}
	clone := *rec
	s.m.attendance[rec.ID] = &clone
	return nil
}

func (s memAttendance) FindByUserAndDay(_ context.Context, userID int64, day time.Time) (*AttendanceRecord, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, rec := range s.m.attendance {
		if rec.UserID == userID && rec.Day.Equal(day) {
			clone := *rec
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (s memAttendance) ListByUser(_ context.Context, userID int64, from, to time.Time) ([]*AttendanceRecord, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var out []*AttendanceRecord
	for _, rec := range s.m.attendance {
		if rec.UserID != userID {
			continue
		}
		if inDayRange(rec.Day, from, to) {
			clone := *rec
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

func (s memAttendance) List(_ context.Context, from, to time.Time) ([]*AttendanceRecord, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var out []*AttendanceRecord
	for _, rec := range s.m.attendance {
		if inDayRange(rec.Day, from, to) {
			clone := *rec
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

func inDayRange(day, from, to time.Time) bool {
	if !from.IsZero() && day.Before(from) {
		return false
	}
	if !to.IsZero() && day.After(to) {
		return false
	}
	return true
}
