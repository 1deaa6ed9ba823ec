package pg

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"atrium.org/internal/platform"
)

type bookingStore struct{ db *sql.DB }

const bookingColumns = `id, room_id, user_id, starts_at, ends_at, notes, created_at`

func (s bookingStore) Create(ctx context.Context, b *platform.Booking) error {
	row := s.db.QueryRowContext(ctx,
		`insert into bookings(room_id, user_id, starts_at, ends_at, notes) values($1,$2,$3,$4,$5) returning id, created_at`,
		b.RoomID, b.UserID, b.StartsAt, b.EndsAt, b.Notes,
	)
	return row.Scan(&b.ID, &b.CreatedAt)
}

func (s bookingStore) Find(ctx context.Context, id int64) (*platform.Booking, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+bookingColumns+` from bookings where id=$1`, id)
	var b platform.Booking
	if err := row.Scan(&b.ID, &b.RoomID, &b.UserID, &b.StartsAt, &b.EndsAt, &b.Notes, &b.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, platform.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (s bookingStore) ListBetween(ctx context.Context, from, to time.Time) ([]*platform.Booking, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+bookingColumns+` from bookings
		 where ($1::timestamptz is null or ends_at >= $1)
		   and ($2::timestamptz is null or starts_at <= $2)
		 order by starts_at asc`,
		nullableTime(from), nullableTime(to),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (s bookingStore) ListOverlapping(ctx context.Context, roomID int64, from, to time.Time) ([]*platform.Booking, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+bookingColumns+` from bookings
		 where room_id=$1 and starts_at < $3 and ends_at > $2`,
		roomID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (s bookingStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `delete from bookings where id=$1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func collectBookings(rows *sql.Rows) ([]*platform.Booking, error) {
	var out []*platform.Booking
	for rows.Next() {
		var b platform.Booking
		if err := rows.Scan(&b.ID, &b.RoomID, &b.UserID, &b.StartsAt, &b.EndsAt, &b.Notes, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
