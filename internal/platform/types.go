package platform

import "time"

// User is the stored account row. Only ID, Email, Name and Roles may reach
// the API; the remaining columns stay server-side.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Roles        any       `json:"roles"` // persisted shape: single label or list of labels
	PasswordHash string    `json:"-"`
	Status       string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// Room is a bookable meeting space.
type Room struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Location string `json:"location"`
}

// Booking reserves a room for a user over a time range.
type Booking struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"roomId"`
	UserID    int64     `json:"userId"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// Asset is a piece of tracked equipment, optionally assigned to a user.
type Asset struct {
	ID           int64  `json:"id"`
	Tag          string `json:"tag"`
	Name         string `json:"name"`
	AssignedToID *int64 `json:"-"`
}

// Supply is a consumable stock item.
type Supply struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	ReorderLevel int    `json:"reorderLevel"`
}

// Project tracks a piece of internal work.
type Project struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	OwnerID   int64     `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Project statuses.
const (
	ProjectActive   = "ACTIVE"
	ProjectPaused   = "PAUSED"
	ProjectDone     = "DONE"
	ProjectArchived = "ARCHIVED"
)

// AttendanceRecord marks a user's presence for one day.
type AttendanceRecord struct {
	ID     int64     `json:"id"`
	UserID int64     `json:"userId"`
	Day    time.Time `json:"day"` // UTC midnight
	Status string    `json:"status"`
}

// Attendance statuses.
const (
	AttendancePresent  = "PRESENT"
	AttendanceRemote   = "REMOTE"
	AttendanceSick     = "SICK"
	AttendanceVacation = "VACATION"
)
