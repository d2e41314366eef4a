// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package barn_test

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/taibuivan/herdbook/internal/core/barn"
	"github.com/taibuivan/herdbook/internal/platform/apperr"
)

// memoryRepository is an in-memory [barn.Repository]. WithinTx snapshots the
// state and restores it when fn fails, mirroring a rolled back transaction.
type memoryRepository struct {
	nextID    int64
	barns     map[int64]barn.Barn
	pens      map[int64]barn.Pen
	layouts   map[int64]barn.Layout
	occupants map[int64][]string
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		barns:     map[int64]barn.Barn{},
		pens:      map[int64]barn.Pen{},
		layouts:   map[int64]barn.Layout{},
		occupants: map[int64][]string{},
	}
}

func (repository *memoryRepository) id() int64 {
	repository.nextID++
	return repository.nextID
}

// # Fixtures

func (repository *memoryRepository) addBarn(name string) int64 {
	id := repository.id()
	repository.barns[id] = barn.Barn{ID: id, Name: name, CreatedAt: time.Now()}
	return id
}

func (repository *memoryRepository) addPen(barnID int64, name string, capacity int) int64 {
	id := repository.id()
	repository.pens[id] = barn.Pen{ID: id, BarnID: barnID, Name: name, Capacity: capacity}
	return id
}

func (repository *memoryRepository) place(penID int64, row, col int) int64 {
	id := repository.id()
	repository.layouts[id] = barn.Layout{
		ID: id, BarnID: repository.pens[penID].BarnID, PenID: penID,
		Row: row, Col: col, RowSpan: 1, ColSpan: 1,
	}
	return id
}

// house records animals with the given statuses in a pen. Occupancy counts
// every housed animal whatever its status.
func (repository *memoryRepository) house(penID int64, statuses ...string) {
	repository.occupants[penID] = append(repository.occupants[penID], statuses...)
}

func (repository *memoryRepository) layoutOf(penID int64) (barn.Layout, bool) {
	for _, layout := range repository.layouts {
		if layout.PenID == penID {
			return layout, true
		}
	}
	return barn.Layout{}, false
}

// # Repository

func (repository *memoryRepository) WithinTx(_ context.Context, fn func(barn.Repository) error) error {
	snapshot := repository.snapshot()
	if err := fn(repository); err != nil {
		*repository = *snapshot
		return err
	}
	return nil
}

func (repository *memoryRepository) snapshot() *memoryRepository {
	clone := &memoryRepository{
		nextID:    repository.nextID,
		barns:     make(map[int64]barn.Barn, len(repository.barns)),
		pens:      make(map[int64]barn.Pen, len(repository.pens)),
		layouts:   make(map[int64]barn.Layout, len(repository.layouts)),
		occupants: make(map[int64][]string, len(repository.occupants)),
	}
	for k, v := range repository.barns {
		clone.barns[k] = v
	}
	for k, v := range repository.pens {
		clone.pens[k] = v
	}
	for k, v := range repository.layouts {
		clone.layouts[k] = v
	}
	for k, v := range repository.occupants {
		clone.occupants[k] = slices.Clone(v)
	}
	return clone
}

func (repository *memoryRepository) ListBarns(context.Context) ([]*barn.Barn, error) {
	barns := []*barn.Barn{}
	for _, b := range repository.barns {
		barns = append(barns, &b)
	}
	sort.Slice(barns, func(i, j int) bool { return barns[i].ID < barns[j].ID })
	return barns, nil
}

func (repository *memoryRepository) FindBarn(_ context.Context, id int64) (*barn.Barn, error) {
	b, ok := repository.barns[id]
	if !ok {
		return nil, barn.ErrBarnNotFound
	}
	return &b, nil
}

func (repository *memoryRepository) CreateBarn(_ context.Context, b *barn.Barn) error {
	for _, existing := range repository.barns {
		if existing.Name == b.Name {
			return apperr.Conflict("duplicate")
		}
	}
	b.ID = repository.id()
	repository.barns[b.ID] = *b
	return nil
}

func (repository *memoryRepository) ListPens(_ context.Context, barnID int64) ([]*barn.Pen, error) {
	pens := []*barn.Pen{}
	for _, pen := range repository.pens {
		if pen.BarnID == barnID {
			pens = append(pens, &pen)
		}
	}
	sort.Slice(pens, func(i, j int) bool { return pens[i].ID < pens[j].ID })
	return pens, nil
}

func (repository *memoryRepository) FindPen(_ context.Context, id int64) (*barn.Pen, error) {
	pen, ok := repository.pens[id]
	if !ok {
		return nil, barn.ErrPenNotFound
	}
	return &pen, nil
}

func (repository *memoryRepository) PenNameExists(_ context.Context, name string) (bool, error) {
	for _, pen := range repository.pens {
		if pen.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (repository *memoryRepository) CreatePen(ctx context.Context, pen *barn.Pen) error {
	if exists, _ := repository.PenNameExists(ctx, pen.Name); exists {
		return apperr.Conflict("duplicate")
	}
	pen.ID = repository.id()
	repository.pens[pen.ID] = *pen
	return nil
}

func (repository *memoryRepository) ListLayouts(_ context.Context, barnID int64) ([]*barn.Layout, error) {
	layouts := []*barn.Layout{}
	for _, layout := range repository.layouts {
		if layout.BarnID != barnID {
			continue
		}
		layout.PenName = repository.pens[layout.PenID].Name
		layout.Capacity = repository.pens[layout.PenID].Capacity
		layouts = append(layouts, &layout)
	}
	sort.Slice(layouts, func(i, j int) bool { return layouts[i].ID < layouts[j].ID })
	return layouts, nil
}

func (repository *memoryRepository) CreateLayout(_ context.Context, layout *barn.Layout) error {
	if _, placed := repository.layoutOf(layout.PenID); placed {
		return apperr.Conflict("duplicate")
	}
	layout.ID = repository.id()
	repository.layouts[layout.ID] = *layout
	return nil
}

func (repository *memoryRepository) UpdateLayout(_ context.Context, layout *barn.Layout) error {
	current := repository.layouts[layout.ID]
	current.Row, current.Col, current.RowSpan, current.ColSpan = layout.Row, layout.Col, layout.RowSpan, layout.ColSpan
	repository.layouts[layout.ID] = current
	return nil
}

func (repository *memoryRepository) DeleteLayouts(_ context.Context, ids []int64) error {
	for _, id := range ids {
		delete(repository.layouts, id)
	}
	return nil
}

func (repository *memoryRepository) OccupiedPenIDs(_ context.Context, penIDs []int64) ([]int64, error) {
	var occupied []int64
	for _, penID := range penIDs {
		if len(repository.occupants[penID]) > 0 {
			occupied = append(occupied, penID)
		}
	}
	return occupied, nil
}

func (repository *memoryRepository) CountByPen(_ context.Context, barnID int64) (map[int64]int, error) {
	counts := map[int64]int{}
	for penID, housed := range repository.occupants {
		if repository.pens[penID].BarnID == barnID && len(housed) > 0 {
			counts[penID] = len(housed)
		}
	}
	return counts, nil
}
