// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package barn

import (
	"sort"

	"github.com/taibuivan/herdbook/pkg/slice"
)

// StepKind tells the reconciler what to do with one target entry.
type StepKind int

const (
	// StepCreatePen creates a new pen and then its layout.
	StepCreatePen StepKind = iota + 1
	// StepPlace creates a layout for an existing, currently unplaced pen.
	StepPlace
	// StepUpdate rewrites the geometry of an existing layout.
	StepUpdate
)

// Step is one write of a reconciliation, in submission order.
type Step struct {
	Kind   StepKind
	Target TargetLayout
	// Current is the persisted layout for StepUpdate, nil otherwise.
	Current *Layout
}

// Plan is the full set of writes that turns persisted into the target grid.
type Plan struct {
	Deletions []*Layout
	Steps     []Step
}

/*
PlanReconcile diffs persisted layouts against a submitted target grid.

Description: Deletions are the persisted layouts whose pen is not referenced
by any ExistingID in targets; the comparison is on pen identity only, never on
geometry. Steps keep the caller's order and are not checked for overlap.

Parameters:
  - persisted: []*Layout (current layouts of the barn)
  - targets: []TargetLayout

Returns:
  - Plan
*/
func PlanReconcile(persisted []*Layout, targets []TargetLayout) Plan {
	byPen := slice.Index(persisted, func(layout *Layout) int64 { return layout.PenID })

	kept := make(map[int64]struct{}, len(targets))
	steps := make([]Step, 0, len(targets))

	for _, target := range targets {
		if target.Pen.New != nil {
			steps = append(steps, Step{Kind: StepCreatePen, Target: target})
			continue
		}

		penID := *target.Pen.ExistingID
		kept[penID] = struct{}{}

		if current, ok := byPen[penID]; ok {
			steps = append(steps, Step{Kind: StepUpdate, Target: target, Current: current})
		} else {
			steps = append(steps, Step{Kind: StepPlace, Target: target})
		}
	}

	var deletions []*Layout
	for _, layout := range persisted {
		if _, ok := kept[layout.PenID]; !ok {
			deletions = append(deletions, layout)
		}
	}

	return Plan{Deletions: deletions, Steps: steps}
}

// PenIDs returns the pen ids of layouts in order.
func PenIDs(layouts []*Layout) []int64 {
	return slice.Map(layouts, func(layout *Layout) int64 { return layout.PenID })
}

/*
BuildView assembles the client grid of a barn.

Every pen of the barn appears exactly once, either under Layouts (with its
persisted geometry) or under UnplacedPens at row 0, col 0, span 1x1. Every pen
has an entry in LivestockCounts, zero when empty.
*/
func BuildView(barn *Barn, pens []*Pen, layouts []*Layout, counts map[int64]int) *LayoutView {
	view := &LayoutView{
		BarnID:          barn.ID,
		BarnName:        barn.Name,
		Layouts:         make([]PlacedPen, 0, len(layouts)),
		UnplacedPens:    []PlacedPen{},
		LivestockCounts: make(map[int64]int, len(pens)),
	}

	placed := make(map[int64]struct{}, len(layouts))
	for _, layout := range layouts {
		placed[layout.PenID] = struct{}{}
		view.Layouts = append(view.Layouts, PlacedPen{
			PenID:    layout.PenID,
			PenName:  layout.PenName,
			Capacity: layout.Capacity,
			Row:      layout.Row,
			Col:      layout.Col,
			RowSpan:  layout.RowSpan,
			ColSpan:  layout.ColSpan,
		})
	}

	for _, pen := range pens {
		view.LivestockCounts[pen.ID] = counts[pen.ID]
		if _, ok := placed[pen.ID]; ok {
			continue
		}
		view.UnplacedPens = append(view.UnplacedPens, PlacedPen{
			PenID:    pen.ID,
			PenName:  pen.Name,
			Capacity: pen.Capacity,
			RowSpan:  1,
			ColSpan:  1,
		})
	}

	sort.Slice(view.UnplacedPens, func(i, j int) bool {
		return view.UnplacedPens[i].PenID < view.UnplacedPens[j].PenID
	})

	return view
}
