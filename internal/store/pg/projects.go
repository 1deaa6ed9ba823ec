package pg

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"atrium.org/internal/platform"
)

type projectStore struct{ db *sql.DB }

func (s projectStore) Create(ctx context.Context, p *platform.Project) error {
	row := s.db.QueryRowContext(ctx,
		`insert into projects(name, status, owner_id) values($1,$2,$3) returning id, created_at`,
		p.Name, p.Status, p.OwnerID,
	)
	return row.Scan(&p.ID, &p.CreatedAt)
}

func (s projectStore) Find(ctx context.Context, id int64) (*platform.Project, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, name, status, owner_id, created_at from projects where id=$1`, id)
	var p platform.Project
	if err := row.Scan(&p.ID, &p.Name, &p.Status, &p.OwnerID, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, platform.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s projectStore) List(ctx context.Context) ([]*platform.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, name, status, owner_id, created_at from projects order by created_at desc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*platform.Project
	for rows.Next() {
		var p platform.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Status, &p.OwnerID, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (s projectStore) SetStatus(ctx context.Context, id int64, status string) error {
	res, err := s.db.ExecContext(ctx,
		`update projects set status=$2 where id=$1`, id, status)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type attendanceStore struct{ db *sql.DB }

func (s attendanceStore) Create(ctx context.Context, rec *platform.AttendanceRecord) error {
	row := s.db.QueryRowContext(ctx,
		`insert into attendance(user_id, day, status) values($1,$2,$3) returning id`,
		rec.UserID, rec.Day, rec.Status,
	)
	return row.Scan(&rec.ID)
}

func (s attendanceStore) FindByUserAndDay(ctx context.Context, userID int64, day time.Time) (*platform.AttendanceRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, user_id, day, status from attendance where user_id=$1 and day=$2`,
		userID, day,
	)
	return scanAttendance(row)
}

func (s attendanceStore) ListByUser(ctx context.Context, userID int64, from, to time.Time) ([]*platform.AttendanceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, user_id, day, status from attendance
		 where user_id=$1
		   and ($2::timestamptz is null or day >= $2)
		   and ($3::timestamptz is null or day <= $3)
		 order by day desc`,
		userID, nullableTime(from), nullableTime(to),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows)
}

func (s attendanceStore) List(ctx context.Context, from, to time.Time) ([]*platform.AttendanceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, user_id, day, status from attendance
		 where ($1::timestamptz is null or day >= $1)
		   and ($2::timestamptz is null or day <= $2)
		 order by day desc, user_id asc`,
		nullableTime(from), nullableTime(to),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows)
}

func scanAttendance(row rowScanner) (*platform.AttendanceRecord, error) {
	var rec platform.AttendanceRecord
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Day, &rec.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, platform.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func collectAttendance(rows *sql.Rows) ([]*platform.AttendanceRecord, error) {
	var out []*platform.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
