// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package livestock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/herdbook/internal/platform/database/schema"
	"github.com/taibuivan/herdbook/internal/platform/dberr"
	"github.com/taibuivan/herdbook/internal/platform/postgres"
)

// # Health Log

// CreateHealth implements [Repository].
func (repository *PostgresRepository) CreateHealth(context context.Context, event *Health) error {
	h := schema.FarmHealth
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7)
		RETURNING %s, %s`,
		h.Table, h.LivestockID, h.Type, h.EventDate, h.DiseaseName, h.Medicine, h.Description, h.WithdrawalPeriod,
		h.ID, h.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		event.LivestockID, string(event.Type), postgres.Date(event.EventDate),
		event.DiseaseName, event.Medicine, event.Description, event.WithdrawalPeriod,
	).Scan(&event.ID, &event.CreatedAt)

	return dberr.Wrap(err, "create_health")
}

// ListHealth implements [Repository].
func (repository *PostgresRepository) ListHealth(context context.Context, livestockID int64) ([]*Health, error) {
	h := schema.FarmHealth
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, COALESCE(%s, ''), COALESCE(%s, ''), COALESCE(%s, ''), %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s DESC`,
		h.ID, h.LivestockID, h.Type, h.EventDate, h.DiseaseName, h.Medicine, h.Description, h.WithdrawalPeriod, h.CreatedAt,
		h.Table,
		h.LivestockID,
		h.EventDate, h.ID,
	)

	rows, err := repository.db.Query(context, query, livestockID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_health")
	}
	defer rows.Close()

	events := []*Health{}
	for rows.Next() {
		var (
			event     Health
			eventType string
			eventDate time.Time
		)
		err := rows.Scan(
			&event.ID, &event.LivestockID, &eventType, &eventDate,
			&event.DiseaseName, &event.Medicine, &event.Description, &event.WithdrawalPeriod, &event.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_health")
		}
		event.Type = HealthType(eventType)
		event.EventDate = postgres.FromDate(eventDate)
		events = append(events, &event)
	}

	return events, dberr.Wrap(rows.Err(), "list_health")
}

// # Breeding Log

// CreateBreeding implements [Repository].
func (repository *PostgresRepository) CreateBreeding(context context.Context, event *Breeding) error {
	b := schema.FarmBreeding
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, NULLIF($7, ''))
		RETURNING %s, %s`,
		b.Table, b.LivestockID, b.Type, b.EventDate, b.SireCode, b.IsPregnant, b.ExpectedDate, b.Notes,
		b.ID, b.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		event.LivestockID, string(event.Type), postgres.Date(event.EventDate),
		event.SireCode, event.IsPregnant, postgres.NullDate(event.ExpectedDate), event.Notes,
	).Scan(&event.ID, &event.CreatedAt)

	return dberr.Wrap(err, "create_breeding")
}

// ListBreeding implements [Repository].
func (repository *PostgresRepository) ListBreeding(context context.Context, livestockID int64) ([]*Breeding, error) {
	b := schema.FarmBreeding
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, COALESCE(%s, ''), %s, %s, COALESCE(%s, ''), %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s DESC`,
		b.ID, b.LivestockID, b.Type, b.EventDate, b.SireCode, b.IsPregnant, b.ExpectedDate, b.Notes, b.CreatedAt,
		b.Table,
		b.LivestockID,
		b.EventDate, b.ID,
	)

	rows, err := repository.db.Query(context, query, livestockID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_breeding")
	}
	defer rows.Close()

	events := []*Breeding{}
	for rows.Next() {
		var (
			event     Breeding
			eventType string
			eventDate time.Time
			expected  *time.Time
		)
		err := rows.Scan(
			&event.ID, &event.LivestockID, &eventType, &eventDate,
			&event.SireCode, &event.IsPregnant, &expected, &event.Notes, &event.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_breeding")
		}
		event.Type = BreedingType(eventType)
		event.EventDate = postgres.FromDate(eventDate)
		event.ExpectedDate = postgres.FromNullDate(expected)
		events = append(events, &event)
	}

	return events, dberr.Wrap(rows.Err(), "list_breeding")
}

// LatestSireCode implements [Repository].
func (repository *PostgresRepository) LatestSireCode(context context.Context, livestockID int64) (string, error) {
	b := schema.FarmBreeding
	query := fmt.Sprintf(`
		SELECT COALESCE(%s, '')
		FROM %s
		WHERE %s = $1 AND %s = $2
		ORDER BY %s DESC, %s DESC
		LIMIT 1`,
		b.SireCode,
		b.Table,
		b.LivestockID, b.Type,
		b.EventDate, b.ID,
	)

	var sireCode string
	err := repository.db.QueryRow(context, query, livestockID, string(BreedingInsemination)).Scan(&sireCode)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}

	return sireCode, dberr.Wrap(err, "latest_sire_code")
}
