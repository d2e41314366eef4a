// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/herdbook/internal/platform/dberr"
)

// DBTX is the query surface shared by [*pgxpool.Pool] and [pgx.Tx].
//
// Stores hold a DBTX so the same query code runs either directly against the
// pool or inside a transaction opened by [RunInTx].
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ DBTX = (*pgxpool.Pool)(nil)
	_ DBTX = (pgx.Tx)(nil)
)

/*
RunInTx executes fn inside a single database transaction.

Description: The transaction is committed only when fn returns nil. Any error
returned by fn (business or storage) rolls back every write made through the
transaction handle, so a failing operation leaves no persisted side effects.

Parameters:
  - ctx: context.Context
  - pool: *pgxpool.Pool
  - fn: func(pgx.Tx) error

Returns:
  - error: fn's error unchanged, or a wrapped begin/commit failure
*/
func RunInTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	transaction, err := pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_tx")
	}
	defer func() { _ = transaction.Rollback(ctx) }()

	if err := fn(transaction); err != nil {
		return err
	}

	return dberr.Wrap(transaction.Commit(ctx), "commit_tx")
}

// InTx reports whether db is already a transaction handle.
func InTx(db DBTX) bool {
	_, ok := db.(pgx.Tx)
	return ok
}
