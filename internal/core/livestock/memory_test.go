// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package livestock_test

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/golang-sql/civil"

	"github.com/taibuivan/herdbook/internal/core/barn"
	"github.com/taibuivan/herdbook/internal/core/livestock"
	"github.com/taibuivan/herdbook/internal/platform/apperr"
)

// memoryRepository is an in-memory [livestock.Repository]. WithinTx
// snapshots the state and restores it when fn fails, mirroring a rolled back
// transaction.
type memoryRepository struct {
	nextID   int64
	pens     map[int64]barn.Pen
	animals  map[int64]livestock.Livestock
	health   []livestock.Health
	breeding []livestock.Breeding
	sales    map[int64]livestock.Sale
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		pens:    map[int64]barn.Pen{},
		animals: map[int64]livestock.Livestock{},
		sales:   map[int64]livestock.Sale{},
	}
}

func (repository *memoryRepository) id() int64 {
	repository.nextID++
	return repository.nextID
}

// # Fixtures

func (repository *memoryRepository) addPen(name string, capacity int) int64 {
	id := repository.id()
	repository.pens[id] = barn.Pen{ID: id, BarnID: 1, Name: name, Capacity: capacity}
	return id
}

func (repository *memoryRepository) addAnimal(animal livestock.Livestock) int64 {
	animal.ID = repository.id()
	repository.animals[animal.ID] = animal
	return animal.ID
}

func (repository *memoryRepository) animal(id int64) livestock.Livestock {
	return repository.animals[id]
}

func (repository *memoryRepository) byTag(tag string) (livestock.Livestock, bool) {
	for _, animal := range repository.animals {
		if animal.EarTag == tag {
			return animal, true
		}
	}
	return livestock.Livestock{}, false
}

// # Repository

func (repository *memoryRepository) WithinTx(_ context.Context, fn func(livestock.Repository) error) error {
	snapshot := &memoryRepository{
		nextID:   repository.nextID,
		pens:     maps.Clone(repository.pens),
		animals:  maps.Clone(repository.animals),
		health:   slices.Clone(repository.health),
		breeding: slices.Clone(repository.breeding),
		sales:    maps.Clone(repository.sales),
	}
	if err := fn(repository); err != nil {
		*repository = *snapshot
		return err
	}
	return nil
}

func (repository *memoryRepository) Find(_ context.Context, id int64) (*livestock.Livestock, error) {
	animal, ok := repository.animals[id]
	if !ok {
		return nil, livestock.ErrNotFound
	}
	return &animal, nil
}

func (repository *memoryRepository) Lock(ctx context.Context, id int64) (*livestock.Livestock, error) {
	return repository.Find(ctx, id)
}

func (repository *memoryRepository) EarTagExists(_ context.Context, tag string) (bool, error) {
	_, exists := repository.byTag(tag)
	return exists, nil
}

func (repository *memoryRepository) Create(_ context.Context, animal *livestock.Livestock) error {
	if _, exists := repository.byTag(animal.EarTag); exists {
		return apperr.Conflict("duplicate")
	}
	animal.ID = repository.id()
	animal.CreatedAt = time.Now()
	animal.UpdatedAt = animal.CreatedAt
	repository.animals[animal.ID] = *animal
	return nil
}

func (repository *memoryRepository) sorted(keep func(livestock.Livestock) bool) []*livestock.Livestock {
	herd := []*livestock.Livestock{}
	for _, id := range slices.Sorted(maps.Keys(repository.animals)) {
		if animal := repository.animals[id]; keep(animal) {
			herd = append(herd, &animal)
		}
	}
	return herd
}

func (repository *memoryRepository) List(_ context.Context, filter livestock.ListFilter) ([]*livestock.Livestock, error) {
	return repository.sorted(func(animal livestock.Livestock) bool {
		if !strings.HasSuffix(animal.EarTag, filter.TagSuffix) {
			return false
		}
		if len(filter.Statuses) == 0 {
			return animal.Status != livestock.StatusSold
		}
		return slices.Contains(filter.Statuses, animal.Status)
	}), nil
}

func (repository *memoryRepository) ListByPen(_ context.Context, penID int64) ([]*livestock.Livestock, error) {
	return repository.sorted(func(animal livestock.Livestock) bool { return animal.InPen(penID) }), nil
}

func (repository *memoryRepository) UpdateInfo(_ context.Context, animal *livestock.Livestock) error {
	current := repository.animals[animal.ID]
	current.Name, current.Gender, current.BirthDate = animal.Name, animal.Gender, animal.BirthDate
	current.Breed, current.Notes = animal.Breed, animal.Notes
	repository.animals[animal.ID] = current
	return nil
}

func (repository *memoryRepository) UpdateState(_ context.Context, animal *livestock.Livestock) error {
	current := repository.animals[animal.ID]
	current.Status = animal.Status
	current.Summary = animal.Summary
	repository.animals[animal.ID] = current
	return nil
}

func (repository *memoryRepository) UpdatePen(_ context.Context, id, penID int64) error {
	current := repository.animals[id]
	current.PenID = &penID
	repository.animals[id] = current
	return nil
}

func (repository *memoryRepository) FindPen(_ context.Context, penID int64) (*barn.Pen, error) {
	pen, ok := repository.pens[penID]
	if !ok {
		return nil, barn.ErrPenNotFound
	}
	return &pen, nil
}

func (repository *memoryRepository) LockPen(ctx context.Context, penID int64) (*barn.Pen, error) {
	return repository.FindPen(ctx, penID)
}

func (repository *memoryRepository) CountInPen(_ context.Context, penID, excludingID int64) (int, error) {
	count := 0
	for _, animal := range repository.animals {
		if animal.ID != excludingID && animal.InPen(penID) {
			count++
		}
	}
	return count, nil
}

func (repository *memoryRepository) CreateHealth(_ context.Context, event *livestock.Health) error {
	event.ID = repository.id()
	repository.health = append(repository.health, *event)
	return nil
}

func (repository *memoryRepository) ListHealth(_ context.Context, livestockID int64) ([]*livestock.Health, error) {
	events := []*livestock.Health{}
	for _, event := range repository.health {
		if event.LivestockID == livestockID {
			events = append(events, &event)
		}
	}
	slices.SortFunc(events, func(a, b *livestock.Health) int {
		return cmp.Or(compareDates(b.EventDate, a.EventDate), cmp.Compare(b.ID, a.ID))
	})
	return events, nil
}

func (repository *memoryRepository) CreateBreeding(_ context.Context, event *livestock.Breeding) error {
	event.ID = repository.id()
	repository.breeding = append(repository.breeding, *event)
	return nil
}

func (repository *memoryRepository) ListBreeding(_ context.Context, livestockID int64) ([]*livestock.Breeding, error) {
	events := []*livestock.Breeding{}
	for _, event := range repository.breeding {
		if event.LivestockID == livestockID {
			events = append(events, &event)
		}
	}
	slices.SortFunc(events, func(a, b *livestock.Breeding) int {
		return cmp.Or(compareDates(b.EventDate, a.EventDate), cmp.Compare(b.ID, a.ID))
	})
	return events, nil
}

func (repository *memoryRepository) LatestSireCode(ctx context.Context, livestockID int64) (string, error) {
	events, _ := repository.ListBreeding(ctx, livestockID)
	for _, event := range events {
		if event.Type == livestock.BreedingInsemination {
			return event.SireCode, nil
		}
	}
	return "", nil
}

func (repository *memoryRepository) CreateSale(_ context.Context, sale *livestock.Sale) error {
	if _, sold := repository.sales[sale.LivestockID]; sold {
		return apperr.Conflict("duplicate")
	}
	sale.ID = repository.id()
	sale.CreatedAt = time.Now()
	repository.sales[sale.LivestockID] = *sale
	return nil
}

func (repository *memoryRepository) FindSale(_ context.Context, livestockID int64) (*livestock.Sale, error) {
	sale, ok := repository.sales[livestockID]
	if !ok {
		return nil, livestock.ErrSaleNotFound
	}
	return &sale, nil
}

func (repository *memoryRepository) ListSales(_ context.Context, limit, offset int) ([]*livestock.SaleRecord, int, error) {
	records := []*livestock.SaleRecord{}
	for _, sale := range repository.sales {
		animal := repository.animals[sale.LivestockID]
		if animal.Status != livestock.StatusSold {
			continue
		}
		records = append(records, &livestock.SaleRecord{
			Sale: sale, EarTag: animal.EarTag, BirthDate: animal.BirthDate, Breed: animal.Breed,
		})
	}
	slices.SortFunc(records, func(a, b *livestock.SaleRecord) int {
		return cmp.Or(compareDates(b.SaleDate, a.SaleDate), cmp.Compare(b.ID, a.ID))
	})

	total := len(records)
	if offset >= total {
		return []*livestock.SaleRecord{}, total, nil
	}
	return records[offset:min(offset+limit, total)], total, nil
}

func compareDates(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

// occupancySpy records the pens reported through [livestock.OccupancyListener].
type occupancySpy struct {
	calls [][]int64
}

func (spy *occupancySpy) PenOccupancyChanged(_ context.Context, penIDs ...int64) {
	spy.calls = append(spy.calls, penIDs)
}
