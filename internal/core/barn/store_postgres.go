// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package barn (Postgres) implements the storage layer for barns and grids.

# Schema Table Mapping
  - farm.barn: Facilities.
  - farm.pen: Subdivisions with capacity; names are unique across the farm.
  - farm.penlayout: At most one grid placement per pen.
  - farm.livestock: Read only here, for occupancy.
*/
package barn

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/herdbook/internal/platform/database/schema"
	"github.com/taibuivan/herdbook/internal/platform/dberr"
	"github.com/taibuivan/herdbook/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
	db   postgres.DBTX
}

// NewPostgresRepository constructs a PostgreSQL backed barn store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool, db: pool}
}

// WithinTx implements [Repository].
func (repository *PostgresRepository) WithinTx(context context.Context, fn func(Repository) error) error {
	if postgres.InTx(repository.db) {
		return fn(repository)
	}

	return postgres.RunInTx(context, repository.pool, func(tx pgx.Tx) error {
		return fn(&PostgresRepository{pool: repository.pool, db: tx})
	})
}

// # Barns

// ListBarns implements [Repository].
func (repository *PostgresRepository) ListBarns(context context.Context) ([]*Barn, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`,
		schema.Join(schema.FarmBarn.Columns()), schema.FarmBarn.Table, schema.FarmBarn.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_barns")
	}
	defer rows.Close()

	barns := []*Barn{}
	for rows.Next() {
		barn := &Barn{}
		if err := rows.Scan(&barn.ID, &barn.Name, &barn.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_barn")
		}
		barns = append(barns, barn)
	}

	return barns, dberr.Wrap(rows.Err(), "list_barns")
}

// FindBarn implements [Repository].
func (repository *PostgresRepository) FindBarn(context context.Context, id int64) (*Barn, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.Join(schema.FarmBarn.Columns()), schema.FarmBarn.Table, schema.FarmBarn.ID,
	)

	barn := &Barn{}
	err := repository.db.QueryRow(context, query, id).Scan(&barn.ID, &barn.Name, &barn.CreatedAt)
	if err != nil {
		wrapped := dberr.Wrap(err, "find_barn")
		if dberr.IsNotFound(wrapped) {
			return nil, ErrBarnNotFound
		}
		return nil, wrapped
	}

	return barn, nil
}

// CreateBarn implements [Repository].
func (repository *PostgresRepository) CreateBarn(context context.Context, barn *Barn) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) RETURNING %s, %s`,
		schema.FarmBarn.Table, schema.FarmBarn.Name, schema.FarmBarn.ID, schema.FarmBarn.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, barn.Name).Scan(&barn.ID, &barn.CreatedAt)
	return dberr.Wrap(err, "create_barn")
}

// # Pens

// ListPens implements [Repository].
func (repository *PostgresRepository) ListPens(context context.Context, barnID int64) ([]*Pen, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		schema.Join(schema.FarmPen.Columns()), schema.FarmPen.Table, schema.FarmPen.BarnID, schema.FarmPen.ID,
	)

	rows, err := repository.db.Query(context, query, barnID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_pens")
	}
	defer rows.Close()

	pens := []*Pen{}
	for rows.Next() {
		pen := &Pen{}
		if err := rows.Scan(&pen.ID, &pen.BarnID, &pen.Name, &pen.Capacity, &pen.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_pen")
		}
		pens = append(pens, pen)
	}

	return pens, dberr.Wrap(rows.Err(), "list_pens")
}

// FindPen implements [Repository].
func (repository *PostgresRepository) FindPen(context context.Context, id int64) (*Pen, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.Join(schema.FarmPen.Columns()), schema.FarmPen.Table, schema.FarmPen.ID,
	)

	pen := &Pen{}
	err := repository.db.QueryRow(context, query, id).Scan(&pen.ID, &pen.BarnID, &pen.Name, &pen.Capacity, &pen.CreatedAt)
	if err != nil {
		wrapped := dberr.Wrap(err, "find_pen")
		if dberr.IsNotFound(wrapped) {
			return nil, ErrPenNotFound
		}
		return nil, wrapped
	}

	return pen, nil
}

// PenNameExists implements [Repository].
func (repository *PostgresRepository) PenNameExists(context context.Context, name string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.FarmPen.Table, schema.FarmPen.Name,
	)

	var exists bool
	if err := repository.db.QueryRow(context, query, name).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "pen_name_exists")
	}

	return exists, nil
}

// CreatePen implements [Repository].
func (repository *PostgresRepository) CreatePen(context context.Context, pen *Pen) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s`,
		schema.FarmPen.Table, schema.FarmPen.BarnID, schema.FarmPen.Name, schema.FarmPen.Capacity,
		schema.FarmPen.ID, schema.FarmPen.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, pen.BarnID, pen.Name, pen.Capacity).Scan(&pen.ID, &pen.CreatedAt)
	return dberr.Wrap(err, "create_pen")
}

// # Layouts

// ListLayouts implements [Repository].
func (repository *PostgresRepository) ListLayouts(context context.Context, barnID int64) ([]*Layout, error) {
	l, p := schema.FarmPenLayout, schema.FarmPen
	query := fmt.Sprintf(`
		SELECT l.%s, l.%s, l.%s, l.%s, l.%s, l.%s, l.%s, p.%s, p.%s
		FROM %s l
		JOIN %s p ON p.%s = l.%s
		WHERE l.%s = $1
		ORDER BY l.%s, l.%s, l.%s`,
		l.ID, l.BarnID, l.PenID, l.GridRow, l.GridCol, l.RowSpan, l.ColSpan, p.Name, p.Capacity,
		l.Table,
		p.Table, p.ID, l.PenID,
		l.BarnID,
		l.GridRow, l.GridCol, l.ID,
	)

	rows, err := repository.db.Query(context, query, barnID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_layouts")
	}
	defer rows.Close()

	layouts := []*Layout{}
	for rows.Next() {
		layout := &Layout{}
		err := rows.Scan(
			&layout.ID, &layout.BarnID, &layout.PenID,
			&layout.Row, &layout.Col, &layout.RowSpan, &layout.ColSpan,
			&layout.PenName, &layout.Capacity,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_layout")
		}
		layouts = append(layouts, layout)
	}

	return layouts, dberr.Wrap(rows.Err(), "list_layouts")
}

// CreateLayout implements [Repository].
func (repository *PostgresRepository) CreateLayout(context context.Context, layout *Layout) error {
	l := schema.FarmPenLayout
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`,
		l.Table, l.BarnID, l.PenID, l.GridRow, l.GridCol, l.RowSpan, l.ColSpan,
		l.ID,
	)

	err := repository.db.QueryRow(context, query,
		layout.BarnID, layout.PenID, layout.Row, layout.Col, layout.RowSpan, layout.ColSpan,
	).Scan(&layout.ID)

	return dberr.Wrap(err, "create_layout")
}

// UpdateLayout implements [Repository].
func (repository *PostgresRepository) UpdateLayout(context context.Context, layout *Layout) error {
	l := schema.FarmPenLayout
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1`,
		l.Table,
		l.GridRow, l.GridCol, l.RowSpan, l.ColSpan, l.UpdatedAt,
		l.ID,
	)

	_, err := repository.db.Exec(context, query, layout.ID, layout.Row, layout.Col, layout.RowSpan, layout.ColSpan)
	return dberr.Wrap(err, "update_layout")
}

// DeleteLayouts implements [Repository].
func (repository *PostgresRepository) DeleteLayouts(context context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ANY($1)`, schema.FarmPenLayout.Table, schema.FarmPenLayout.ID)

	_, err := repository.db.Exec(context, query, ids)
	return dberr.Wrap(err, "delete_layouts")
}

// # Occupancy

// OccupiedPenIDs implements [Repository].
func (repository *PostgresRepository) OccupiedPenIDs(context context.Context, penIDs []int64) ([]int64, error) {
	if len(penIDs) == 0 {
		return nil, nil
	}

	ls := schema.FarmLivestock
	query := fmt.Sprintf(`
		SELECT DISTINCT %s
		FROM %s
		WHERE %s = ANY($1)
		ORDER BY %s`,
		ls.PenID, ls.Table, ls.PenID, ls.PenID,
	)

	rows, err := repository.db.Query(context, query, penIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "occupied_pen_ids")
	}

	occupied, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	return occupied, dberr.Wrap(err, "occupied_pen_ids")
}

// CountByPen implements [Repository].
func (repository *PostgresRepository) CountByPen(context context.Context, barnID int64) (map[int64]int, error) {
	ls, p := schema.FarmLivestock, schema.FarmPen
	query := fmt.Sprintf(`
		SELECT ls.%s, COUNT(*)
		FROM %s ls
		JOIN %s p ON p.%s = ls.%s
		WHERE p.%s = $1
		GROUP BY ls.%s`,
		ls.PenID,
		ls.Table,
		p.Table, p.ID, ls.PenID,
		p.BarnID,
		ls.PenID,
	)

	rows, err := repository.db.Query(context, query, barnID)
	if err != nil {
		return nil, dberr.Wrap(err, "count_by_pen")
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var penID int64
		var count int
		if err := rows.Scan(&penID, &count); err != nil {
			return nil, dberr.Wrap(err, "scan_pen_count")
		}
		counts[penID] = count
	}

	return counts, dberr.Wrap(rows.Err(), "count_by_pen")
}
