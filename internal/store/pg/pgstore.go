package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"atrium.org/internal/platform"
)

// Store implements platform.Store using PostgreSQL.
type Store struct {
	db *sql.DB
}

var _ platform.Store = (*Store)(nil)

// Open connects to PostgreSQL through the pgx stdlib driver.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	// Tuned pool defaults; adjust under load tests
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return &Store{db: db}, nil
}

// NewStore wraps an existing database handle (tests use sqlmock here).
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Users() platform.UserStore            { return userStore{db: s.db} }
func (s *Store) Rooms() platform.RoomStore            { return roomStore{db: s.db} }
func (s *Store) Bookings() platform.BookingStore      { return bookingStore{db: s.db} }
func (s *Store) Assets() platform.AssetStore          { return assetStore{db: s.db} }
func (s *Store) Supplies() platform.SupplyStore       { return supplyStore{db: s.db} }
func (s *Store) Projects() platform.ProjectStore      { return projectStore{db: s.db} }
func (s *Store) Attendance() platform.AttendanceStore { return attendanceStore{db: s.db} }

// Users ---------------------------------------------------------------------

type userStore struct{ db *sql.DB }

const userColumns = `id, email, name, roles, password_hash, status, created_at, updated_at`

func (s userStore) Create(ctx context.Context, u *platform.User) error {
	roles, err := marshalRoles(u.Roles)
	if err != nil {
		return err
	}
	row := s.db.QueryRowContext(ctx,
		`insert into users(email, name, roles, password_hash, status) values($1,$2,$3,$4,$5) returning id, created_at, updated_at`,
		u.Email, u.Name, roles, u.PasswordHash, u.Status,
	)
	return row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (s userStore) Find(ctx context.Context, id int64) (*platform.User, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+userColumns+` from users where id=$1`, id)
	return scanUser(row)
}

func (s userStore) FindByEmail(ctx context.Context, email string) (*platform.User, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+userColumns+` from users where email=$1`, email)
	return scanUser(row)
}

func (s userStore) List(ctx context.Context) ([]*platform.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+userColumns+` from users order by id asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*platform.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*platform.User, error) {
	var (
		u     platform.User
		roles []byte
	)
	err := row.Scan(&u.ID, &u.Email, &u.Name, &roles, &u.PasswordHash, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, platform.ErrNotFound
		}
		return nil, err
	}
	// The roles column historically holds either a JSON string or a JSON
	// array; keep the decoded shape and let the auth layer normalize it.
	if len(roles) > 0 {
		var v any
		if err := json.Unmarshal(roles, &v); err == nil {
			u.Roles = v
		}
	}
	return &u, nil
}

func marshalRoles(v any) ([]byte, error) {
	if v == nil {
		return []byte(`[]`), nil
	}
	return json.Marshal(v)
}

// Rooms ---------------------------------------------------------------------

type roomStore struct{ db *sql.DB }

func (s roomStore) Find(ctx context.Context, id int64) (*platform.Room, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, name, capacity, location from rooms where id=$1`, id)
	var r platform.Room
	if err := row.Scan(&r.ID, &r.Name, &r.Capacity, &r.Location); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, platform.ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s roomStore) List(ctx context.Context) ([]*platform.Room, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, name, capacity, location from rooms order by id asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*platform.Room
	for rows.Next() {
		var r platform.Room
		if err := rows.Scan(&r.ID, &r.Name, &r.Capacity, &r.Location); err != nil {
			return nil, err
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}
