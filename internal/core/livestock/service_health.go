// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package livestock

import (
	"context"
	"log/slog"

	"github.com/golang-sql/civil"

	"github.com/taibuivan/herdbook/internal/platform/ctxutil"
	"github.com/taibuivan/herdbook/internal/platform/validate"
)

// # Health Events

// HealthInput is a veterinary event as submitted by an operator.
type HealthInput struct {
	Type             HealthType `json:"type"`
	EventDate        civil.Date `json:"event_date"`
	DiseaseName      string     `json:"disease_name"`
	Medicine         string     `json:"medicine"`
	Description      string     `json:"description"`
	WithdrawalPeriod int        `json:"withdrawal_period"`
}

func (input HealthInput) validate() error {
	validator := &validate.Validator{}
	validator.OneOf("type", string(input.Type), string(HealthVaccine), string(HealthTreat)).
		Date("event_date", input.EventDate).
		MaxLen("disease_name", input.DiseaseName, maxTextLength).
		MaxLen("medicine", input.Medicine, maxTextLength).
		MaxLen("description", input.Description, maxNoteLength).
		Min("withdrawal_period", input.WithdrawalPeriod, 0)
	return validator.Err()
}

/*
RegisterHealth records a veterinary event and folds it into the animal's
summary and status.

Parameters:
  - context: context.Context
  - id: int64
  - input: HealthInput

Returns:
  - *Health: The stored record
  - error: ValidationError or ErrNotFound
*/
func (service *Service) RegisterHealth(context context.Context, id int64, input HealthInput) (*Health, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	event := &Health{
		LivestockID:      id,
		Type:             input.Type,
		EventDate:        input.EventDate,
		DiseaseName:      input.DiseaseName,
		Medicine:         input.Medicine,
		Description:      input.Description,
		WithdrawalPeriod: input.WithdrawalPeriod,
	}

	var change Transition
	err := service.repository.WithinTx(context, func(repository Repository) error {
		animal, err := repository.Lock(context, id)
		if err != nil {
			return err
		}

		if err := repository.CreateHealth(context, event); err != nil {
			return err
		}

		change = ApplyHealth(animal, event)
		return repository.UpdateState(context, animal)
	})
	if err != nil {
		return nil, err
	}

	service.record("health", change)
	ctxutil.LoggerOr(context, service.logger).InfoContext(context, "health_event_registered",
		slog.Int64("livestock_id", id),
		slog.String("type", string(event.Type)),
		slog.String("status", string(change.To)),
	)

	return event, nil
}

/*
Recover returns a SICK animal to FATTENING.

Returns:
  - *Livestock: The animal after the call; unchanged unless it was SICK
  - error: ErrNotFound
*/
func (service *Service) Recover(context context.Context, id int64) (*Livestock, error) {
	var (
		animal *Livestock
		change Transition
	)

	err := service.repository.WithinTx(context, func(repository Repository) error {
		var err error
		if animal, err = repository.Lock(context, id); err != nil {
			return err
		}

		if change = Recover(animal); !change.Changed() {
			return nil
		}
		return repository.UpdateState(context, animal)
	})
	if err != nil {
		return nil, err
	}

	if change.Changed() {
		service.record("recover", change)
		ctxutil.LoggerOr(context, service.logger).InfoContext(context, "livestock_recovered",
			slog.Int64("livestock_id", id),
		)
	}

	return animal, nil
}
