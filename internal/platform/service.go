package platform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"atrium.org/internal/auth"
	"atrium.org/internal/stream"
)

var projectStatuses = map[string]struct{}{
	ProjectActive:   {},
	ProjectPaused:   {},
	ProjectDone:     {},
	ProjectArchived: {},
}

var attendanceStatuses = map[string]struct{}{
	AttendancePresent:  {},
	AttendanceRemote:   {},
	AttendanceSick:     {},
	AttendanceVacation: {},
}

// Service implements the business operations behind the API. Authorization
// happens before these methods run; they only enforce domain invariants.
type Service struct {
	store  Store
	events *stream.Stream
	now    func() time.Time
}

// NewService wires the service. events may be nil (no live feed).
func NewService(store Store, events *stream.Stream) *Service {
	return &Service{store: store, events: events, now: time.Now}
}

// CreateBooking reserves a room, rejecting overlaps with existing bookings.
func (s *Service) CreateBooking(ctx context.Context, userID, roomID int64, startsAt, endsAt time.Time, notes string) (*Booking, error) {
	if startsAt.IsZero() || endsAt.IsZero() || !endsAt.After(startsAt) {
		return nil, fmt.Errorf("%w: booking must end after it starts", ErrInvalidInput)
	}
	if _, err := s.store.Rooms().Find(ctx, roomID); err != nil {
		return nil, fmt.Errorf("find room: %w", err)
	}
	overlapping, err := s.store.Bookings().ListOverlapping(ctx, roomID, startsAt, endsAt)
	if err != nil {
		return nil, fmt.Errorf("check overlap: %w", err)
	}
	if len(overlapping) > 0 {
		return nil, ErrBookingOverlap
	}

	booking := &Booking{
		RoomID:    roomID,
		UserID:    userID,
		StartsAt:  startsAt.UTC(),
		EndsAt:    endsAt.UTC(),
		Notes:     strings.TrimSpace(notes),
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Bookings().Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	s.publish(stream.EventBookingCreated, booking)
	return booking, nil
}

// CancelBooking removes a booking. Only the booking owner or an admin may
// cancel; the caller's identity is passed in explicitly.
func (s *Service) CancelBooking(ctx context.Context, bookingID, actorID int64, actorIsAdmin bool) (*Booking, error) {
	booking, err := s.store.Bookings().Find(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking.UserID != actorID && !actorIsAdmin {
		return nil, ErrForbidden
	}
	if err := s.store.Bookings().Delete(ctx, bookingID); err != nil {
		return nil, fmt.Errorf("delete booking: %w", err)
	}
	s.publish(stream.EventBookingCancelled, booking)
	return booking, nil
}

// CheckIn records attendance for the current day, once per user per day.
func (s *Service) CheckIn(ctx context.Context, userID int64, status string) (*AttendanceRecord, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		status = AttendancePresent
	}
	if _, ok := attendanceStatuses[status]; !ok {
		return nil, fmt.Errorf("%w: unknown attendance status %q", ErrInvalidInput, status)
	}
	day := s.now().UTC().Truncate(24 * time.Hour)
	existing, err := s.store.Attendance().FindByUserAndDay(ctx, userID, day)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyCheckedIn
	}

	rec := &AttendanceRecord{UserID: userID, Day: day, Status: status}
	if err := s.store.Attendance().Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create attendance: %w", err)
	}
	return rec, nil
}

// AssignAsset hands a piece of equipment to a user.
func (s *Service) AssignAsset(ctx context.Context, assetID, userID int64) (*Asset, error) {
	asset, err := s.store.Assets().Find(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("find asset: %w", err)
	}
	if asset.AssignedToID != nil {
		return nil, ErrAssetAssigned
	}
	if _, err := s.store.Users().Find(ctx, userID); err != nil {
		return nil, fmt.Errorf("find assignee: %w", err)
	}
	if err := s.store.Assets().SetAssignee(ctx, assetID, &userID); err != nil {
		return nil, fmt.Errorf("assign asset: %w", err)
	}
	asset.AssignedToID = &userID
	return asset, nil
}

// ReleaseAsset clears an asset's assignment.
func (s *Service) ReleaseAsset(ctx context.Context, assetID int64) (*Asset, error) {
	asset, err := s.store.Assets().Find(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("find asset: %w", err)
	}
	if err := s.store.Assets().SetAssignee(ctx, assetID, nil); err != nil {
		return nil, fmt.Errorf("release asset: %w", err)
	}
	asset.AssignedToID = nil
	return asset, nil
}

// AdjustSupply changes a supply's stock level by delta.
func (s *Service) AdjustSupply(ctx context.Context, supplyID int64, delta int) (*Supply, error) {
	supply, err := s.store.Supplies().Find(ctx, supplyID)
	if err != nil {
		return nil, fmt.Errorf("find supply: %w", err)
	}
	quantity := supply.Quantity + delta
	if quantity < 0 {
		return nil, fmt.Errorf("%w: stock cannot go below zero", ErrInvalidInput)
	}
	if err := s.store.Supplies().SetQuantity(ctx, supplyID, quantity); err != nil {
		return nil, fmt.Errorf("adjust supply: %w", err)
	}
	supply.Quantity = quantity
	return supply, nil
}

// CreateProject opens a new active project owned by the acting user.
func (s *Service) CreateProject(ctx context.Context, ownerID int64, name string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	project := &Project{
		Name:      name,
		Status:    ProjectActive,
		OwnerID:   ownerID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Projects().Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

// UpdateProjectStatus moves a project into one of the known statuses.
func (s *Service) UpdateProjectStatus(ctx context.Context, projectID int64, status string) (*Project, error) {
	status = strings.TrimSpace(status)
	if _, ok := projectStatuses[status]; !ok {
		return nil, fmt.Errorf("%w: unknown project status %q", ErrInvalidInput, status)
	}
	project, err := s.store.Projects().Find(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	if err := s.store.Projects().SetStatus(ctx, projectID, status); err != nil {
		return nil, fmt.Errorf("update project status: %w", err)
	}
	project.Status = status
	return project, nil
}

// CreateUser provisions an account. The password is hashed before storage
// and the hash never leaves the server.
func (s *Service) CreateUser(ctx context.Context, email, name string, roles []string, password string) (*User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if existing, err := s.store.Users().FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrAlreadyExists
	} else if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	now := s.now().UTC()
	user := &User{
		Email:        email,
		Name:         name,
		Roles:        auth.NormalizeRoles(roles),
		PasswordHash: hash,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *Service) publish(eventType string, b *Booking) {
	if s.events == nil {
		return
	}
	s.events.Publish(stream.BookingEvent{
		Type:      eventType,
		BookingID: b.ID,
		RoomID:    b.RoomID,
		UserID:    b.UserID,
		StartsAt:  b.StartsAt,
		EndsAt:    b.EndsAt,
		Timestamp: s.now().UTC(),
	})
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
