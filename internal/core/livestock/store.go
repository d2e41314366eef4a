// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package livestock

import (
	"context"

	"github.com/taibuivan/herdbook/internal/core/barn"
)

// # Livestock Data Access

// Repository defines the data access contract for animals and their events.
type Repository interface {

	/*
		WithinTx runs fn against a repository bound to one transaction.

		Parameters:
		  - context: context.Context
		  - fn: func(Repository) error

		Returns:
		  - error: fn's error (after rollback) or a begin/commit failure
	*/
	WithinTx(context context.Context, fn func(repository Repository) error) error

	// # Animals

	/*
		Find retrieves an animal by id.

		Returns:
		  - *Livestock
		  - error: ErrNotFound if missing
	*/
	Find(context context.Context, id int64) (*Livestock, error)

	/*
		Lock retrieves an animal and holds a row lock on it until the
		surrounding transaction ends.

		Returns:
		  - *Livestock
		  - error: ErrNotFound if missing
	*/
	Lock(context context.Context, id int64) (*Livestock, error)

	/*
		EarTagExists reports whether tag is already registered.

		Parameters:
		  - context: context.Context
		  - tag: string

		Returns:
		  - bool
		  - error: Retrieval failures
	*/
	EarTagExists(context context.Context, tag string) (bool, error)

	/*
		Create inserts an animal with its status and summary and fills its id.

		Parameters:
		  - context: context.Context
		  - animal: *Livestock

		Returns:
		  - error: Conflict on a duplicate ear tag, NotFound on a dangling
		    pen or parent reference
	*/
	Create(context context.Context, animal *Livestock) error

	/*
		List returns animals matching filter, ordered by id.

		Parameters:
		  - context: context.Context
		  - filter: ListFilter

		Returns:
		  - []*Livestock
		  - error: Retrieval failures
	*/
	List(context context.Context, filter ListFilter) ([]*Livestock, error)

	/*
		ListByPen returns every animal assigned to a pen, sold ones included.

		Parameters:
		  - context: context.Context
		  - penID: int64

		Returns:
		  - []*Livestock
		  - error: Retrieval failures
	*/
	ListByPen(context context.Context, penID int64) ([]*Livestock, error)

	/*
		UpdateInfo persists the descriptive fields: name, gender, birth date,
		breed, and notes.

		Parameters:
		  - context: context.Context
		  - animal: *Livestock

		Returns:
		  - error: Persistence failures
	*/
	UpdateInfo(context context.Context, animal *Livestock) error

	/*
		UpdateState persists status and every [Summary] field.

		Parameters:
		  - context: context.Context
		  - animal: *Livestock

		Returns:
		  - error: Persistence failures
	*/
	UpdateState(context context.Context, animal *Livestock) error

	/*
		UpdatePen assigns an animal to a pen.

		Parameters:
		  - context: context.Context
		  - id: int64
		  - penID: int64

		Returns:
		  - error: Persistence failures
	*/
	UpdatePen(context context.Context, id, penID int64) error

	// # Pens

	/*
		FindPen retrieves a pen without locking it.

		Returns:
		  - *barn.Pen
		  - error: barn.ErrPenNotFound if missing
	*/
	FindPen(context context.Context, penID int64) (*barn.Pen, error)

	/*
		LockPen retrieves a pen and holds a row lock on it so concurrent moves
		into the same pen are serialized.

		Returns:
		  - *barn.Pen
		  - error: barn.ErrPenNotFound if missing
	*/
	LockPen(context context.Context, penID int64) (*barn.Pen, error)

	/*
		CountInPen counts every animal housed in a pen, sold ones included,
		ignoring excludingID.

		Parameters:
		  - context: context.Context
		  - penID: int64
		  - excludingID: int64

		Returns:
		  - int
		  - error: Retrieval failures
	*/
	CountInPen(context context.Context, penID, excludingID int64) (int, error)

	// # Events

	/*
		CreateHealth appends a veterinary record.

		Parameters:
		  - context: context.Context
		  - event: *Health

		Returns:
		  - error: Persistence failures
	*/
	CreateHealth(context context.Context, event *Health) error

	/*
		ListHealth returns the veterinary records of an animal, newest first.

		Returns:
		  - []*Health
		  - error: Retrieval failures
	*/
	ListHealth(context context.Context, livestockID int64) ([]*Health, error)

	/*
		CreateBreeding appends a reproductive record.

		Parameters:
		  - context: context.Context
		  - event: *Breeding

		Returns:
		  - error: Persistence failures
	*/
	CreateBreeding(context context.Context, event *Breeding) error

	/*
		ListBreeding returns the reproductive records of an animal, newest first.

		Returns:
		  - []*Breeding
		  - error: Retrieval failures
	*/
	ListBreeding(context context.Context, livestockID int64) ([]*Breeding, error)

	/*
		LatestSireCode returns the sire code of the most recent AI record.

		Returns:
		  - string: The sire code, empty when none is on record
		  - error: Retrieval failures
	*/
	LatestSireCode(context context.Context, livestockID int64) (string, error)

	// # Sales

	/*
		CreateSale inserts the sale of an animal.

		Parameters:
		  - context: context.Context
		  - sale: *Sale

		Returns:
		  - error: Conflict when the animal already has a sale
	*/
	CreateSale(context context.Context, sale *Sale) error

	/*
		FindSale retrieves the sale of an animal.

		Returns:
		  - *Sale
		  - error: ErrSaleNotFound if the animal was never sold
	*/
	FindSale(context context.Context, livestockID int64) (*Sale, error)

	/*
		ListSales returns sold animals with their sale, newest sale first.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*SaleRecord
		  - int: Total record count
		  - error: Retrieval failures
	*/
	ListSales(context context.Context, limit, offset int) ([]*SaleRecord, int, error)
}
