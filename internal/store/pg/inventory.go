package pg

import (
	"context"
	"database/sql"
	"errors"

	"atrium.org/internal/platform"
)

type assetStore struct{ db *sql.DB }

func (s assetStore) Find(ctx context.Context, id int64) (*platform.Asset, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, tag, name, assigned_to from assets where id=$1`, id)
	return scanAsset(row)
}

func (s assetStore) List(ctx context.Context) ([]*platform.Asset, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, tag, name, assigned_to from assets order by tag asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*platform.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s assetStore) SetAssignee(ctx context.Context, assetID int64, userID *int64) error {
	var assignee sql.NullInt64
	if userID != nil {
		assignee = sql.NullInt64{Int64: *userID, Valid: true}
	}
	res, err := s.db.ExecContext(ctx,
		`update assets set assigned_to=$2 where id=$1`, assetID, assignee)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func scanAsset(row rowScanner) (*platform.Asset, error) {
	var a platform.Asset
	var assignee sql.NullInt64
	if err := row.Scan(&a.ID, &a.Tag, &a.Name, &assignee); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, platform.ErrNotFound
		}
		return nil, err
	}
	if assignee.Valid {
		id := assignee.Int64
		a.AssignedToID = &id
	}
	return &a, nil
}

type supplyStore struct{ db *sql.DB }

func (s supplyStore) Find(ctx context.Context, id int64) (*platform.Supply, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, name, quantity, reorder_level from supplies where id=$1`, id)
	var sup platform.Supply
	if err := row.Scan(&sup.ID, &sup.Name, &sup.Quantity, &sup.ReorderLevel); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, platform.ErrNotFound
		}
		return nil, err
	}
	return &sup, nil
}

func (s supplyStore) List(ctx context.Context) ([]*platform.Supply, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, name, quantity, reorder_level from supplies order by name asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*platform.Supply
	for rows.Next() {
		var sup platform.Supply
		if err := rows.Scan(&sup.ID, &sup.Name, &sup.Quantity, &sup.ReorderLevel); err != nil {
			return nil, err
		}
		out = append(out, &sup)
	}
	return out, rows.Err()
}

func (s supplyStore) SetQuantity(ctx context.Context, id int64, quantity int) error {
	res, err := s.db.ExecContext(ctx,
		`update supplies set quantity=$2 where id=$1`, id, quantity)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return platform.ErrNotFound
	}
	return nil
}
