package platform

import (
	"context"
	"time"
)

// Store describes persistence operations required by the platform.
type Store interface {
	Users() UserStore
	Rooms() RoomStore
	Bookings() BookingStore
	Assets() AssetStore
	Supplies() SupplyStore
	Projects() ProjectStore
	Attendance() AttendanceStore
}

// UserStore manages account rows.
type UserStore interface {
	Create(ctx context.Context, u *User) error
	Find(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

// RoomStore manages bookable rooms.
type RoomStore interface {
	Find(ctx context.Context, id int64) (*Room, error)
	List(ctx context.Context) ([]*Room, error)
}

// BookingStore manages room reservations.
type BookingStore interface {
	Create(ctx context.Context, b *Booking) error
	Find(ctx context.Context, id int64) (*Booking, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*Booking, error)
	ListOverlapping(ctx context.Context, roomID int64, from, to time.Time) ([]*Booking, error)
	Delete(ctx context.Context, id int64) error
}

// AssetStore manages tracked equipment.
type AssetStore interface {
	Find(ctx context.Context, id int64) (*Asset, error)
	List(ctx context.Context) ([]*Asset, error)
	SetAssignee(ctx context.Context, assetID int64, userID *int64) error
}

// SupplyStore manages consumable stock.
type SupplyStore interface {
	Find(ctx context.Context, id int64) (*Supply, error)
	List(ctx context.Context) ([]*Supply, error)
	SetQuantity(ctx context.Context, id int64, quantity int) error
}

// ProjectStore manages project rows.
type ProjectStore interface {
	Create(ctx context.Context, p *Project) error
	Find(ctx context.Context, id int64) (*Project, error)
	List(ctx context.Context) ([]*Project, error)
	SetStatus(ctx context.Context, id int64, status string) error
}

// AttendanceStore manages daily attendance rows.
type AttendanceStore interface {
	Create(ctx context.Context, rec *AttendanceRecord) error
	FindByUserAndDay(ctx context.Context, userID int64, day time.Time) (*AttendanceRecord, error)
	ListByUser(ctx context.Context, userID int64, from, to time.Time) ([]*AttendanceRecord, error)
	List(ctx context.Context, from, to time.Time) ([]*AttendanceRecord, error)
}
