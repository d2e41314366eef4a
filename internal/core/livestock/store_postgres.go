// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package livestock (Postgres) implements the storage layer for animals, their
event logs, and sales.

# Schema Table Mapping
  - farm.livestock: Animals with their denormalized summary.
  - farm.health: Veterinary log (append-only).
  - farm.breeding: Reproductive log (append-only).
  - farm.sale: One row per sold animal.
  - farm.pen: Read and locked here for capacity checks.
*/
package livestock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/herdbook/internal/core/barn"
	"github.com/taibuivan/herdbook/internal/platform/database/schema"
	"github.com/taibuivan/herdbook/internal/platform/dberr"
	"github.com/taibuivan/herdbook/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
	db   postgres.DBTX
}

// NewPostgresRepository constructs a PostgreSQL backed livestock store.
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

// # Row Mapping

type scanner interface {
	Scan(dest ...any) error
}

// livestockColumns renders the select list matched by [scanLivestock].
func livestockColumns(alias string) string {
	ls := schema.FarmLivestock
	c := func(column string) string { return alias + "." + column }
	text := func(column string) string { return fmt.Sprintf("COALESCE(%s.%s, '')", alias, column) }

	return strings.Join([]string{
		c(ls.ID), c(ls.EarTag), text(ls.Name), c(ls.BirthDate), c(ls.Gender), c(ls.Status),
		text(ls.Breed), c(ls.PenID), c(ls.MotherID), c(ls.FatherID), text(ls.Notes),
		c(ls.BreedingCount), c(ls.LastEstrusDate), c(ls.LastAIDate), c(ls.ExpectedDate),
		c(ls.WithdrawalDate), text(ls.LastDiseaseName), c(ls.LastTreatmentDate),
		c(ls.CreatedAt), c(ls.UpdatedAt),
	}, ", ")
}

func scanLivestock(row scanner) (*Livestock, error) {
	var (
		animal                                                  Livestock
		gender, status                                          string
		birth, estrus, inseminated, expected, withdrawal, treat *time.Time
	)

	err := row.Scan(
		&animal.ID, &animal.EarTag, &animal.Name, &birth, &gender, &status,
		&animal.Breed, &animal.PenID, &animal.MotherID, &animal.FatherID, &animal.Notes,
		&animal.BreedingCount, &estrus, &inseminated, &expected,
		&withdrawal, &animal.LastDiseaseName, &treat,
		&animal.CreatedAt, &animal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	animal.Gender = Gender(gender)
	animal.Status = Status(status)
	animal.BirthDate = postgres.FromNullDate(birth)
	animal.LastEstrusDate = postgres.FromNullDate(estrus)
	animal.LastAIDate = postgres.FromNullDate(inseminated)
	animal.ExpectedDate = postgres.FromNullDate(expected)
	animal.WithdrawalDate = postgres.FromNullDate(withdrawal)
	animal.LastTreatmentDate = postgres.FromNullDate(treat)

	return &animal, nil
}

func collectLivestock(rows pgx.Rows, action string) ([]*Livestock, error) {
	defer rows.Close()

	animals := []*Livestock{}
	for rows.Next() {
		animal, err := scanLivestock(rows)
		if err != nil {
			return nil, dberr.Wrap(err, action)
		}
		animals = append(animals, animal)
	}

	return animals, dberr.Wrap(rows.Err(), action)
}

// # Animals

func (repository *PostgresRepository) findOne(context context.Context, id int64, lock bool, action string) (*Livestock, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ls WHERE ls.%s = $1`,
		livestockColumns("ls"), schema.FarmLivestock.Table, schema.FarmLivestock.ID,
	)
	if lock {
		query += " FOR UPDATE"
	}

	animal, err := scanLivestock(repository.db.QueryRow(context, query, id))
	if err != nil {
		wrapped := dberr.Wrap(err, action)
		if dberr.IsNotFound(wrapped) {
			return nil, ErrNotFound
		}
		return nil, wrapped
	}

	return animal, nil
}

// Find implements [Repository].
func (repository *PostgresRepository) Find(context context.Context, id int64) (*Livestock, error) {
	return repository.findOne(context, id, false, "find_livestock")
}

// Lock implements [Repository].
func (repository *PostgresRepository) Lock(context context.Context, id int64) (*Livestock, error) {
	return repository.findOne(context, id, true, "lock_livestock")
}

// EarTagExists implements [Repository].
func (repository *PostgresRepository) EarTagExists(context context.Context, tag string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.FarmLivestock.Table, schema.FarmLivestock.EarTag,
	)

	var exists bool
	if err := repository.db.QueryRow(context, query, tag).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "ear_tag_exists")
	}

	return exists, nil
}

/*
Create inserts a new animal.

Description: Status and summary are written as given so a calf or an imported
animal keeps the values computed by the lifecycle functions.
*/
func (repository *PostgresRepository) Create(context context.Context, animal *Livestock) error {
	ls := schema.FarmLivestock
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s, %s, %s
		) VALUES (
			$1, NULLIF($2, ''), $3, $4, $5, NULLIF($6, ''), $7, $8, $9, NULLIF($10, ''),
			$11, $12, $13, $14, $15, NULLIF($16, ''), $17
		)
		RETURNING %s, %s, %s`,
		ls.Table,
		ls.EarTag, ls.Name, ls.BirthDate, ls.Gender, ls.Status, ls.Breed, ls.PenID, ls.MotherID, ls.FatherID, ls.Notes,
		ls.BreedingCount, ls.LastEstrusDate, ls.LastAIDate, ls.ExpectedDate, ls.WithdrawalDate, ls.LastDiseaseName, ls.LastTreatmentDate,
		ls.ID, ls.CreatedAt, ls.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		animal.EarTag, animal.Name, postgres.NullDate(animal.BirthDate), string(animal.Gender), string(animal.Status),
		animal.Breed, animal.PenID, animal.MotherID, animal.FatherID, animal.Notes,
		animal.BreedingCount, postgres.NullDate(animal.LastEstrusDate), postgres.NullDate(animal.LastAIDate),
		postgres.NullDate(animal.ExpectedDate), postgres.NullDate(animal.WithdrawalDate),
		animal.LastDiseaseName, postgres.NullDate(animal.LastTreatmentDate),
	).Scan(&animal.ID, &animal.CreatedAt, &animal.UpdatedAt)

	return dberr.Wrap(err, "create_livestock")
}

/*
List returns animals filtered by status and ear-tag suffix.

Description: Without explicit statuses, sold animals are excluded so the
result is the working herd.
*/
func (repository *PostgresRepository) List(context context.Context, filter ListFilter) ([]*Livestock, error) {
	ls := schema.FarmLivestock

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s FROM %s ls WHERE TRUE`, livestockColumns("ls"), ls.Table))

	args := []any{}
	argID := 1

	if len(filter.Statuses) == 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND ls.%s <> $%d", ls.Status, argID))
		args = append(args, string(StatusSold))
		argID++
	} else {
		statuses := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			statuses[i] = string(status)
		}
		queryBuilder.WriteString(fmt.Sprintf(" AND ls.%s = ANY($%d)", ls.Status, argID))
		args = append(args, statuses)
		argID++
	}

	if filter.TagSuffix != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND ls.%s LIKE $%d", ls.EarTag, argID))
		args = append(args, "%"+escapeLike(filter.TagSuffix))
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY ls.%s", ls.ID))

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_livestock")
	}

	return collectLivestock(rows, "list_livestock")
}

// escapeLike escapes LIKE wildcards in user input.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ListByPen implements [Repository].
func (repository *PostgresRepository) ListByPen(context context.Context, penID int64) ([]*Livestock, error) {
	ls := schema.FarmLivestock
	query := fmt.Sprintf(`SELECT %s FROM %s ls WHERE ls.%s = $1 ORDER BY ls.%s`,
		livestockColumns("ls"), ls.Table, ls.PenID, ls.ID,
	)

	rows, err := repository.db.Query(context, query, penID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_livestock_by_pen")
	}

	return collectLivestock(rows, "list_livestock_by_pen")
}

// UpdateInfo implements [Repository].
func (repository *PostgresRepository) UpdateInfo(context context.Context, animal *Livestock) error {
	ls := schema.FarmLivestock
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = NULLIF($2, ''), %s = $3, %s = $4, %s = NULLIF($5, ''), %s = NULLIF($6, ''), %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		ls.Table,
		ls.Name, ls.Gender, ls.BirthDate, ls.Breed, ls.Notes, ls.UpdatedAt,
		ls.ID,
		ls.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		animal.ID, animal.Name, string(animal.Gender), postgres.NullDate(animal.BirthDate), animal.Breed, animal.Notes,
	).Scan(&animal.UpdatedAt)

	return dberr.Wrap(err, "update_livestock_info")
}

// UpdateState implements [Repository].
func (repository *PostgresRepository) UpdateState(context context.Context, animal *Livestock) error {
	ls := schema.FarmLivestock
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NULLIF($8, ''), %s = $9, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		ls.Table,
		ls.Status, ls.BreedingCount, ls.LastEstrusDate, ls.LastAIDate, ls.ExpectedDate,
		ls.WithdrawalDate, ls.LastDiseaseName, ls.LastTreatmentDate, ls.UpdatedAt,
		ls.ID,
		ls.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		animal.ID, string(animal.Status), animal.BreedingCount,
		postgres.NullDate(animal.LastEstrusDate), postgres.NullDate(animal.LastAIDate),
		postgres.NullDate(animal.ExpectedDate), postgres.NullDate(animal.WithdrawalDate),
		animal.LastDiseaseName, postgres.NullDate(animal.LastTreatmentDate),
	).Scan(&animal.UpdatedAt)

	return dberr.Wrap(err, "update_livestock_state")
}

// UpdatePen implements [Repository].
func (repository *PostgresRepository) UpdatePen(context context.Context, id, penID int64) error {
	ls := schema.FarmLivestock
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		ls.Table, ls.PenID, ls.UpdatedAt, ls.ID,
	)

	_, err := repository.db.Exec(context, query, id, penID)
	return dberr.Wrap(err, "update_livestock_pen")
}

// # Pens

func (repository *PostgresRepository) findPen(context context.Context, penID int64, lock bool) (*barn.Pen, error) {
	p := schema.FarmPen
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, schema.Join(p.Columns()), p.Table, p.ID)
	if lock {
		query += " FOR UPDATE"
	}

	pen := &barn.Pen{}
	err := repository.db.QueryRow(context, query, penID).Scan(&pen.ID, &pen.BarnID, &pen.Name, &pen.Capacity, &pen.CreatedAt)
	if err != nil {
		wrapped := dberr.Wrap(err, "find_pen")
		if dberr.IsNotFound(wrapped) {
			return nil, barn.ErrPenNotFound
		}
		return nil, wrapped
	}

	return pen, nil
}

// FindPen implements [Repository].
func (repository *PostgresRepository) FindPen(context context.Context, penID int64) (*barn.Pen, error) {
	return repository.findPen(context, penID, false)
}

// LockPen implements [Repository].
func (repository *PostgresRepository) LockPen(context context.Context, penID int64) (*barn.Pen, error) {
	return repository.findPen(context, penID, true)
}

// CountInPen implements [Repository].
func (repository *PostgresRepository) CountInPen(context context.Context, penID, excludingID int64) (int, error) {
	ls := schema.FarmLivestock
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1 AND %s <> $2`,
		ls.Table, ls.PenID, ls.ID,
	)

	var count int
	if err := repository.db.QueryRow(context, query, penID, excludingID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_in_pen")
	}

	return count, nil
}
