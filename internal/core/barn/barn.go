// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package barn manages barns, their pens, and the spatial layout of pens on each
barn's grid.

# Core Responsibility

  - Housing: Defines [Barn] and [Pen]; a pen belongs to exactly one barn.
  - Layout: A [Layout] places one pen on its barn's grid. Pens without a layout
    are "unplaced" and are shown with a default 1x1 placeholder.
  - Reconciliation: [Service.ReconcileLayout] turns a submitted grid into the
    set of pen creations, layout updates, and layout deletions, refusing to
    unplace pens that still house animals.
*/
package barn

import (
	"net/http"
	"time"

	"github.com/taibuivan/herdbook/internal/platform/apperr"
)

// # Core Entities

// Barn is a named facility subdivided into pens.
type Barn struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Pen is a subdivision of a barn holding at most Capacity animals.
type Pen struct {
	ID        int64     `json:"id"`
	BarnID    int64     `json:"barn_id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

// Layout is the grid placement of one pen. Row and column are zero-based.
type Layout struct {
	ID      int64
	BarnID  int64
	PenID   int64
	Row     int
	Col     int
	RowSpan int
	ColSpan int

	// Denormalized from the pen for conflict messages and views.
	PenName  string
	Capacity int
}

// # Layout Commands

// NewPen describes a pen to create as part of a layout save.
type NewPen struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// PenRef identifies the pen a target entry places. Exactly one of ExistingID
// and New is set.
type PenRef struct {
	ExistingID *int64  `json:"existing_id,omitempty"`
	New        *NewPen `json:"new,omitempty"`
}

// TargetLayout is one entry of a submitted barn grid.
type TargetLayout struct {
	Pen     PenRef `json:"pen"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	RowSpan int    `json:"row_span"`
	ColSpan int    `json:"col_span"`
}

// # Layout Views

// PlacedPen is a pen with its grid geometry as returned to clients.
type PlacedPen struct {
	PenID    int64  `json:"pen_id"`
	PenName  string `json:"pen_name"`
	Capacity int    `json:"capacity"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	RowSpan  int    `json:"row_span"`
	ColSpan  int    `json:"col_span"`
}

// LayoutView is the full grid state of a barn.
type LayoutView struct {
	BarnID          int64         `json:"barn_id"`
	BarnName        string        `json:"barn_name"`
	Layouts         []PlacedPen   `json:"layouts"`
	UnplacedPens    []PlacedPen   `json:"unplaced_pens"`
	LivestockCounts map[int64]int `json:"livestock_counts"`
}

// # Domain Errors

const (
	CodePenOccupied      = "PEN_OCCUPIED"
	CodeDuplicatePenName = "DUPLICATE_PEN_NAME"
	CodeDuplicateBarn    = "DUPLICATE_BARN_NAME"
)

var (
	// ErrBarnNotFound is returned when a barn id does not resolve.
	ErrBarnNotFound = apperr.NotFound("Barn")

	// ErrPenNotFound is returned when a pen id does not resolve.
	ErrPenNotFound = apperr.NotFound("Pen")
)

func duplicatePenName(name string) *apperr.AppError {
	return apperr.New(http.StatusConflict, CodeDuplicatePenName, "Pen name '"+name+"' already exists")
}
