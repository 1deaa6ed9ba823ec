package platform

import (
	"context"
	"errors"
	"testing"
	"time"

	"atrium.org/internal/stream"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T) (*Service, *Memory) {
	t.Helper()
	mem := NewMemory()
	svc := NewService(mem, nil)
	svc.now = fixedNow
	return svc, mem
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	svc, mem := newTestService(t)
	room := mem.AddRoom(Room{Name: "Aurora", Capacity: 8})
	ctx := context.Background()

	start := fixedNow().Add(time.Hour)
	end := start.Add(time.Hour)
	if _, err := svc.CreateBooking(ctx, 1, room.ID, start, end, "standup"); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	// Second booking overlaps the middle of the first.
	_, err := svc.CreateBooking(ctx, 2, room.ID, start.Add(30*time.Minute), end.Add(30*time.Minute), "")
	if !errors.Is(err, ErrBookingOverlap) {
		t.Fatalf("expected ErrBookingOverlap, got %v", err)
	}

	// Back-to-back is fine.
	if _, err := svc.CreateBooking(ctx, 2, room.ID, end, end.Add(time.Hour), ""); err != nil {
		t.Fatalf("back-to-back booking should pass: %v", err)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	svc, mem := newTestService(t)
	room := mem.AddRoom(Room{Name: "Aurora"})
	ctx := context.Background()
	start := fixedNow()

	if _, err := svc.CreateBooking(ctx, 1, room.ID, start.Add(time.Hour), start, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for inverted range, got %v", err)
	}
	if _, err := svc.CreateBooking(ctx, 1, 999, start, start.Add(time.Hour), ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown room, got %v", err)
	}
}

func TestCancelBookingOwnerOrAdmin(t *testing.T) {
	svc, mem := newTestService(t)
	room := mem.AddRoom(Room{Name: "Aurora"})
	ctx := context.Background()
	start := fixedNow().Add(time.Hour)

	booking, err := svc.CreateBooking(ctx, 1, room.ID, start, start.Add(time.Hour), "")
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if _, err := svc.CancelBooking(ctx, booking.ID, 2, false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-owner cancel must fail, got %v", err)
	}
	if _, err := svc.CancelBooking(ctx, booking.ID, 2, true); err != nil {
		t.Fatalf("admin cancel should pass: %v", err)
	}
	if _, err := svc.CancelBooking(ctx, booking.ID, 1, false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cancelled booking should be gone, got %v", err)
	}
}

func TestCancelBookingPublishesEvent(t *testing.T) {
	events := stream.New()
	mem := NewMemory()
	svc := NewService(mem, events)
	svc.now = fixedNow
	room := mem.AddRoom(Room{Name: "Aurora"})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := events.Subscribe(ctx)
	start := fixedNow().Add(time.Hour)
	booking, err := svc.CreateBooking(ctx, 1, room.ID, start, start.Add(time.Hour), "")
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	select {
	case evt := <-ch:
		if evt.Type != stream.EventBookingCreated || evt.BookingID != booking.ID {
			t.Fatalf("unexpected event: %+v", evt)
		}
	case <-time.After(time.Second):
		t.Fatal("no booking.created event")
	}
}

func TestCheckInOncePerDay(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	rec, err := svc.CheckIn(ctx, 7, AttendanceRemote)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if !rec.Day.Equal(fixedNow().Truncate(24 * time.Hour)) {
		t.Fatalf("unexpected day: %v", rec.Day)
	}

	if _, err := svc.CheckIn(ctx, 7, AttendancePresent); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("expected ErrAlreadyCheckedIn, got %v", err)
	}
	if _, err := svc.CheckIn(ctx, 7, "NAPPING"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
}

func TestAssignAsset(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()
	asset := mem.AddAsset(Asset{Tag: "LAP-001", Name: "Laptop"})
	if err := mem.Users().Create(ctx, &User{Email: "kim@example.com", Name: "Kim"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	user, err := mem.Users().FindByEmail(ctx, "kim@example.com")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}

	got, err := svc.AssignAsset(ctx, asset.ID, user.ID)
	if err != nil {
		t.Fatalf("AssignAsset: %v", err)
	}
	if got.AssignedToID == nil || *got.AssignedToID != user.ID {
		t.Fatalf("assignment not recorded: %+v", got)
	}

	if _, err := svc.AssignAsset(ctx, asset.ID, user.ID); !errors.Is(err, ErrAssetAssigned) {
		t.Fatalf("expected ErrAssetAssigned, got %v", err)
	}
	if _, err := svc.AssignAsset(ctx, asset.ID, 999); !errors.Is(err, ErrAssetAssigned) {
		// Already-assigned wins before the assignee lookup.
		t.Fatalf("expected ErrAssetAssigned, got %v", err)
	}

	released, err := svc.ReleaseAsset(ctx, asset.ID)
	if err != nil {
		t.Fatalf("ReleaseAsset: %v", err)
	}
	if released.AssignedToID != nil {
		t.Fatalf("expected released asset, got %+v", released)
	}
}

func TestAdjustSupply(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()
	supply := mem.AddSupply(Supply{Name: "Coffee beans", Quantity: 5, ReorderLevel: 2})

	got, err := svc.AdjustSupply(ctx, supply.ID, -3)
	if err != nil {
		t.Fatalf("AdjustSupply: %v", err)
	}
	if got.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", got.Quantity)
	}
	if _, err := svc.AdjustSupply(ctx, supply.ID, -5); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative stock, got %v", err)
	}
}

func TestProjectLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, 3, "  Office move  ")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if project.Name != "Office move" || project.Status != ProjectActive {
		t.Fatalf("unexpected project: %+v", project)
	}

	updated, err := svc.UpdateProjectStatus(ctx, project.ID, ProjectDone)
	if err != nil {
		t.Fatalf("UpdateProjectStatus: %v", err)
	}
	if updated.Status != ProjectDone {
		t.Fatalf("status not updated: %+v", updated)
	}
	if _, err := svc.UpdateProjectStatus(ctx, project.ID, "SHELVED"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.CreateProject(ctx, 3, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestCreateUser(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "kim@example.com", "Kim Lee", []string{"ADMIN", "ADMIN"}, "hunter22")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.PasswordHash == "" || user.PasswordHash == "hunter22" {
		t.Fatal("password must be stored hashed")
	}
	roles, ok := user.Roles.([]string)
	if !ok || len(roles) != 1 || roles[0] != "ADMIN" {
		t.Fatalf("roles not normalized: %v", user.Roles)
	}

	if _, err := svc.CreateUser(ctx, "kim@example.com", "Dup", nil, "hunter22"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if _, err := svc.CreateUser(ctx, "not-an-email", "X", nil, "hunter22"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.CreateUser(ctx, "short@example.com", "S", nil, "pw"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}

	found, err := mem.Users().FindByEmail(ctx, "kim@example.com")
	if err != nil || found.Name != "Kim Lee" {
		t.Fatalf("stored user mismatch: %+v, %v", found, err)
	}
}
