// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package livestock

import (
	"context"
	"log/slog"

	"github.com/golang-sql/civil"

	"github.com/taibuivan/herdbook/internal/core/barn"
	"github.com/taibuivan/herdbook/internal/platform/apperr"
	"github.com/taibuivan/herdbook/internal/platform/ctxutil"
	"github.com/taibuivan/herdbook/internal/platform/metrics"
	"github.com/taibuivan/herdbook/internal/platform/validate"
	"github.com/taibuivan/herdbook/pkg/pointer"
	"github.com/taibuivan/herdbook/pkg/slice"
)

const (
	maxTagLength  = 50
	maxTextLength = 200
	maxNoteLength = 2000
)

// OccupancyListener is told which pens gained or lost animals once a
// mutation has been committed.
type OccupancyListener interface {
	PenOccupancyChanged(context context.Context, penIDs ...int64)
}

// # Service Layer

// Service applies registration, housing, lifecycle, and sale rules.
type Service struct {
	repository Repository
	occupancy  OccupancyListener
	metrics    *metrics.Recorder
	logger     *slog.Logger
}

// NewService constructs a new livestock [Service]. occupancy may be nil.
func NewService(repository Repository, occupancy OccupancyListener, recorder *metrics.Recorder, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		occupancy:  occupancy,
		metrics:    recorder,
		logger:     logger,
	}
}

// # Registry

// RegisterInput carries a new animal. Status defaults to CALF.
type RegisterInput struct {
	EarTag    string      `json:"ear_tag"`
	Name      string      `json:"name"`
	BirthDate *civil.Date `json:"birth_date"`
	Gender    Gender      `json:"gender"`
	Status    Status      `json:"status"`
	Breed     string      `json:"breed"`
	PenID     *int64      `json:"pen_id"`
	MotherID  *int64      `json:"mother_id"`
	FatherID  *int64      `json:"father_id"`
	Notes     string      `json:"notes"`
}

func (input RegisterInput) validate() error {
	validator := &validate.Validator{}
	validator.Required("ear_tag", input.EarTag).
		MaxLen("ear_tag", input.EarTag, maxTagLength).
		MaxLen("name", input.Name, maxTextLength).
		MaxLen("breed", input.Breed, maxTextLength).
		MaxLen("notes", input.Notes, maxNoteLength).
		OneOf("gender", string(input.Gender), string(GenderMale), string(GenderFemale), string(GenderCastrated))

	if input.Status != "" {
		validator.OneOf("status", string(input.Status), string(StatusCalf), string(StatusFattening), string(StatusPregnant), string(StatusSick))
	}
	if input.BirthDate != nil {
		validator.Date("birth_date", *input.BirthDate)
	}

	return validator.Err()
}

/*
Register adds an animal to the herd.

Description: Pen capacity is not checked here; only moves are gated.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Livestock: The persisted animal
  - error: ValidationError, ErrDuplicateEarTag, or NotFound for the pen,
    mother, or father
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Livestock, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = StatusCalf
	}

	animal := &Livestock{
		EarTag:    input.EarTag,
		Name:      input.Name,
		BirthDate: input.BirthDate,
		Gender:    input.Gender,
		Status:    status,
		Breed:     input.Breed,
		PenID:     input.PenID,
		MotherID:  input.MotherID,
		FatherID:  input.FatherID,
		Notes:     input.Notes,
	}

	err := service.repository.WithinTx(context, func(repository Repository) error {
		if err := ensureTagFree(context, repository, animal.EarTag); err != nil {
			return err
		}

		if animal.PenID != nil {
			if _, err := repository.FindPen(context, *animal.PenID); err != nil {
				return err
			}
		}

		for _, parent := range []struct {
			id       *int64
			resource string
		}{{animal.MotherID, "Mother"}, {animal.FatherID, "Father"}} {
			if parent.id == nil {
				continue
			}
			if _, err := repository.Find(context, *parent.id); err != nil {
				if apperr.HasCode(err, apperr.CodeNotFound) {
					return apperr.NotFound(parent.resource)
				}
				return err
			}
		}

		return createAnimal(context, repository, animal)
	})
	if err != nil {
		return nil, err
	}

	ctxutil.LoggerOr(context, service.logger).InfoContext(context, "livestock_registered",
		slog.Int64("livestock_id", animal.ID),
		slog.String("ear_tag", animal.EarTag),
		slog.String("status", string(animal.Status)),
		slog.Int64("pen_id", pointer.Val(animal.PenID)),
	)

	if animal.PenID != nil {
		service.notify(context, *animal.PenID)
	}

	return animal, nil
}

// List returns the herd matching filter; sold animals are hidden unless
// asked for by status.
func (service *Service) List(context context.Context, filter ListFilter) ([]*Livestock, error) {
	if len(filter.Statuses) > 0 {
		validator := &validate.Validator{}
		for _, status := range filter.Statuses {
			validator.OneOf("status", string(status), statusNames()...)
		}
		if err := validator.Err(); err != nil {
			return nil, err
		}
	}

	return service.repository.List(context, filter)
}

/*
Detail returns an animal with its health and breeding histories.

Returns:
  - *Detail
  - error: ErrNotFound
*/
func (service *Service) Detail(context context.Context, id int64) (*Detail, error) {
	animal, err := service.repository.Find(context, id)
	if err != nil {
		return nil, err
	}

	health, err := service.repository.ListHealth(context, id)
	if err != nil {
		return nil, err
	}

	breeding, err := service.repository.ListBreeding(context, id)
	if err != nil {
		return nil, err
	}

	return &Detail{Livestock: animal, HealthHistory: health, BreedingHistory: breeding}, nil
}

// UpdateInput replaces the descriptive fields of an animal. Status, pen, and
// summary fields are owned by dedicated operations.
type UpdateInput struct {
	Name      string      `json:"name"`
	Gender    Gender      `json:"gender"`
	BirthDate *civil.Date `json:"birth_date"`
	Breed     string      `json:"breed"`
	Notes     string      `json:"notes"`
}

/*
UpdateInfo rewrites name, gender, birth date, breed, and notes.

Returns:
  - *Livestock: The updated animal
  - error: ValidationError or ErrNotFound
*/
func (service *Service) UpdateInfo(context context.Context, id int64, input UpdateInput) (*Livestock, error) {
	validator := &validate.Validator{}
	validator.MaxLen("name", input.Name, maxTextLength).
		MaxLen("breed", input.Breed, maxTextLength).
		MaxLen("notes", input.Notes, maxNoteLength).
		OneOf("gender", string(input.Gender), string(GenderMale), string(GenderFemale), string(GenderCastrated))
	if input.BirthDate != nil {
		validator.Date("birth_date", *input.BirthDate)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var animal *Livestock
	err := service.repository.WithinTx(context, func(repository Repository) error {
		var err error
		if animal, err = repository.Lock(context, id); err != nil {
			return err
		}

		animal.Name = input.Name
		animal.Gender = input.Gender
		animal.BirthDate = input.BirthDate
		animal.Breed = input.Breed
		animal.Notes = input.Notes

		return repository.UpdateInfo(context, animal)
	})
	if err != nil {
		return nil, err
	}

	return animal, nil
}

// # Housing

/*
Move assigns an animal to another pen.

Description: The destination pen row is locked before its occupants are
counted, so concurrent moves into the same pen are serialized. Moving into
the pen the animal already occupies is a no-op.

Parameters:
  - context: context.Context
  - id: int64
  - penID: int64

Returns:
  - error: ErrNotFound, barn.ErrPenNotFound, or ErrPenFull
*/
func (service *Service) Move(context context.Context, id, penID int64) error {
	var from *int64
	moved := false

	err := service.repository.WithinTx(context, func(repository Repository) error {
		animal, err := repository.Lock(context, id)
		if err != nil {
			return err
		}

		pen, err := repository.LockPen(context, penID)
		if err != nil {
			return err
		}

		if animal.InPen(pen.ID) {
			return nil
		}

		occupants, err := repository.CountInPen(context, pen.ID, animal.ID)
		if err != nil {
			return err
		}
		if !CanPlace(pen.Capacity, occupants) {
			return ErrPenFull
		}

		from, moved = animal.PenID, true
		return repository.UpdatePen(context, animal.ID, pen.ID)
	})
	if err != nil || !moved {
		return err
	}

	ctxutil.LoggerOr(context, service.logger).InfoContext(context, "livestock_moved",
		slog.Int64("livestock_id", id),
		slog.Int64("pen_id", penID),
	)

	if from != nil {
		service.notify(context, *from, penID)
	} else {
		service.notify(context, penID)
	}

	return nil
}

// ListByPen returns the animals assigned to a pen.
func (service *Service) ListByPen(context context.Context, penID int64) ([]*Livestock, error) {
	if _, err := service.repository.FindPen(context, penID); err != nil {
		return nil, err
	}
	return service.repository.ListByPen(context, penID)
}

// # Helpers

func ensureTagFree(context context.Context, repository Repository, tag string) error {
	exists, err := repository.EarTagExists(context, tag)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateEarTag
	}
	return nil
}

func createAnimal(context context.Context, repository Repository, animal *Livestock) error {
	if err := repository.Create(context, animal); err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			return ErrDuplicateEarTag
		}
		return err
	}
	return nil
}

func (service *Service) notify(context context.Context, penIDs ...int64) {
	if service.occupancy != nil {
		service.occupancy.PenOccupancyChanged(context, penIDs...)
	}
}

// record reports a committed lifecycle event to metrics.
func (service *Service) record(kind string, change Transition) {
	service.metrics.Event(kind)
	service.metrics.Transition(string(change.From), string(change.To))
}

func statusNames() []string {
	return slice.Map(Statuses, func(status Status) string { return string(status) })
}

// Ensure barn.Service satisfies OccupancyListener.
var _ OccupancyListener = (*barn.Service)(nil)
