// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package livestock

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/herdbook/internal/platform/database/schema"
	"github.com/taibuivan/herdbook/internal/platform/dberr"
	"github.com/taibuivan/herdbook/internal/platform/postgres"
)

// # Sales
//
// NUMERIC columns travel as text in both directions so no precision is lost
// between shopspring/decimal and Postgres.

// CreateSale implements [Repository].
func (repository *PostgresRepository) CreateSale(context context.Context, sale *Sale) error {
	s := schema.FarmSale
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3::text::numeric, NULLIF($4, ''), $5::text::numeric, NULLIF($6, ''), NULLIF($7, ''))
		RETURNING %s, %s`,
		s.Table, s.LivestockID, s.SaleDate, s.Price, s.CustomerName, s.Weight, s.Grade, s.Notes,
		s.ID, s.CreatedAt,
	)

	var weight *string
	if sale.Weight.Valid {
		text := sale.Weight.Decimal.String()
		weight = &text
	}

	err := repository.db.QueryRow(context, query,
		sale.LivestockID, postgres.Date(sale.SaleDate), sale.Price.String(),
		sale.CustomerName, weight, sale.Grade, sale.Notes,
	).Scan(&sale.ID, &sale.CreatedAt)

	return dberr.Wrap(err, "create_sale")
}

func saleColumns(alias string) string {
	s := schema.FarmSale
	return fmt.Sprintf(
		"%[1]s.%[2]s, %[1]s.%[3]s, %[1]s.%[4]s, %[1]s.%[5]s::text, COALESCE(%[1]s.%[6]s, ''), %[1]s.%[7]s::text, COALESCE(%[1]s.%[8]s, ''), COALESCE(%[1]s.%[9]s, ''), %[1]s.%[10]s",
		alias, s.ID, s.LivestockID, s.SaleDate, s.Price, s.CustomerName, s.Weight, s.Grade, s.Notes, s.CreatedAt,
	)
}

// saleTarget collects the raw scan destinations of [saleColumns].
type saleTarget struct {
	sale     Sale
	saleDate time.Time
	price    string
	weight   *string
}

func (target *saleTarget) dest() []any {
	return []any{
		&target.sale.ID, &target.sale.LivestockID, &target.saleDate, &target.price,
		&target.sale.CustomerName, &target.weight, &target.sale.Grade, &target.sale.Notes, &target.sale.CreatedAt,
	}
}

func (target *saleTarget) build() (Sale, error) {
	sale := target.sale
	sale.SaleDate = postgres.FromDate(target.saleDate)

	price, err := decimal.NewFromString(target.price)
	if err != nil {
		return Sale{}, fmt.Errorf("parse_sale_price: %w", err)
	}
	sale.Price = price

	if target.weight != nil {
		weight, err := decimal.NewFromString(*target.weight)
		if err != nil {
			return Sale{}, fmt.Errorf("parse_sale_weight: %w", err)
		}
		sale.Weight = decimal.NewNullDecimal(weight)
	}

	return sale, nil
}

// FindSale implements [Repository].
func (repository *PostgresRepository) FindSale(context context.Context, livestockID int64) (*Sale, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s s WHERE s.%s = $1`,
		saleColumns("s"), schema.FarmSale.Table, schema.FarmSale.LivestockID,
	)

	var target saleTarget
	if err := repository.db.QueryRow(context, query, livestockID).Scan(target.dest()...); err != nil {
		wrapped := dberr.Wrap(err, "find_sale")
		if dberr.IsNotFound(wrapped) {
			return nil, ErrSaleNotFound
		}
		return nil, wrapped
	}

	sale, err := target.build()
	if err != nil {
		return nil, dberr.Wrap(err, "find_sale")
	}

	return &sale, nil
}

// ListSales implements [Repository].
func (repository *PostgresRepository) ListSales(context context.Context, limit, offset int) ([]*SaleRecord, int, error) {
	s, ls := schema.FarmSale, schema.FarmLivestock
	query := fmt.Sprintf(`
		SELECT %s, ls.%s, ls.%s, COALESCE(ls.%s, ''), COUNT(*) OVER() AS total
		FROM %s s
		JOIN %s ls ON ls.%s = s.%s
		WHERE ls.%s = $1
		ORDER BY s.%s DESC, s.%s DESC
		LIMIT $2 OFFSET $3`,
		saleColumns("s"), ls.EarTag, ls.BirthDate, ls.Breed,
		s.Table,
		ls.Table, ls.ID, s.LivestockID,
		ls.Status,
		s.SaleDate, s.ID,
	)

	rows, err := repository.db.Query(context, query, string(StatusSold), limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_sales")
	}
	defer rows.Close()

	records := []*SaleRecord{}
	total := 0
	for rows.Next() {
		var (
			target saleTarget
			record SaleRecord
			birth  *time.Time
		)
		dest := append(target.dest(), &record.EarTag, &birth, &record.Breed, &total)
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_sale")
		}

		sale, err := target.build()
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_sale")
		}
		record.Sale = sale
		record.BirthDate = postgres.FromNullDate(birth)
		records = append(records, &record)
	}

	return records, total, dberr.Wrap(rows.Err(), "list_sales")
}
