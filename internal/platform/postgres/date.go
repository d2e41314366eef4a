// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"time"

	"github.com/golang-sql/civil"
)

// # DATE Column Helpers
//
// pgx encodes and decodes DATE columns as [time.Time] at UTC midnight.
// Domain types use [civil.Date]; these helpers convert at the store boundary.

// Date converts a calendar date into a DATE argument.
func Date(d civil.Date) time.Time {
	return d.In(time.UTC)
}

// NullDate converts an optional calendar date into a nullable DATE argument.
func NullDate(d *civil.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := Date(*d)
	return &t
}

// FromDate converts a scanned DATE value back into a calendar date.
func FromDate(t time.Time) civil.Date {
	return civil.DateOf(t.UTC())
}

// FromNullDate converts a scanned nullable DATE value back into a calendar date.
func FromNullDate(t *time.Time) *civil.Date {
	if t == nil {
		return nil
	}
	d := FromDate(*t)
	return &d
}
