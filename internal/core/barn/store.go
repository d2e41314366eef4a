// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package barn

import "context"

// # Barn Data Access

// Repository defines the data access contract for barns, pens, and layouts.
type Repository interface {

	/*
		WithinTx runs fn against a repository bound to one transaction.

		Description: fn's error rolls back every write made through the
		transactional repository. Nested calls reuse the outer transaction.

		Parameters:
		  - context: context.Context
		  - fn: func(Repository) error

		Returns:
		  - error: fn's error or a begin/commit failure
	*/
	WithinTx(context context.Context, fn func(repository Repository) error) error

	/*
		ListBarns returns every barn ordered by id.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Barn
		  - error: Retrieval failures
	*/
	ListBarns(context context.Context) ([]*Barn, error)

	/*
		FindBarn retrieves a barn by id.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *Barn
		  - error: ErrBarnNotFound if missing
	*/
	FindBarn(context context.Context, id int64) (*Barn, error)

	/*
		CreateBarn inserts a barn and fills its id.

		Parameters:
		  - context: context.Context
		  - barn: *Barn

		Returns:
		  - error: Conflict on a duplicate name
	*/
	CreateBarn(context context.Context, barn *Barn) error

	// # Pens

	/*
		ListPens returns the pens of a barn ordered by id.

		Parameters:
		  - context: context.Context
		  - barnID: int64

		Returns:
		  - []*Pen
		  - error: Retrieval failures
	*/
	ListPens(context context.Context, barnID int64) ([]*Pen, error)

	/*
		FindPen retrieves a pen by id.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *Pen
		  - error: ErrPenNotFound if missing
	*/
	FindPen(context context.Context, id int64) (*Pen, error)

	/*
		PenNameExists reports whether any pen, in any barn, carries name.

		Parameters:
		  - context: context.Context
		  - name: string (canonical form)

		Returns:
		  - bool
		  - error: Retrieval failures
	*/
	PenNameExists(context context.Context, name string) (bool, error)

	/*
		CreatePen inserts a pen and fills its id.

		Parameters:
		  - context: context.Context
		  - pen: *Pen

		Returns:
		  - error: Conflict on a duplicate name
	*/
	CreatePen(context context.Context, pen *Pen) error

	// # Layouts

	/*
		ListLayouts returns the layouts of a barn joined with pen name and
		capacity, ordered by grid position.

		Parameters:
		  - context: context.Context
		  - barnID: int64

		Returns:
		  - []*Layout
		  - error: Retrieval failures
	*/
	ListLayouts(context context.Context, barnID int64) ([]*Layout, error)

	/*
		CreateLayout inserts a layout and fills its id.

		Parameters:
		  - context: context.Context
		  - layout: *Layout

		Returns:
		  - error: Conflict if the pen is already placed
	*/
	CreateLayout(context context.Context, layout *Layout) error

	/*
		UpdateLayout rewrites row, column, and spans of an existing layout.

		Parameters:
		  - context: context.Context
		  - layout: *Layout

		Returns:
		  - error: Persistence failures
	*/
	UpdateLayout(context context.Context, layout *Layout) error

	/*
		DeleteLayouts removes the layouts with the given ids.

		Parameters:
		  - context: context.Context
		  - ids: []int64

		Returns:
		  - error: Persistence failures
	*/
	DeleteLayouts(context context.Context, ids []int64) error

	// # Occupancy

	/*
		OccupiedPenIDs returns the subset of penIDs housing at least one
		animal. Sold animals keep their pen and still count.

		Parameters:
		  - context: context.Context
		  - penIDs: []int64

		Returns:
		  - []int64
		  - error: Retrieval failures
	*/
	OccupiedPenIDs(context context.Context, penIDs []int64) ([]int64, error)

	/*
		CountByPen returns the number of animals in each pen of a barn.
		Empty pens are absent from the map.

		Parameters:
		  - context: context.Context
		  - barnID: int64

		Returns:
		  - map[int64]int
		  - error: Retrieval failures
	*/
	CountByPen(context context.Context, barnID int64) (map[int64]int, error)
}
