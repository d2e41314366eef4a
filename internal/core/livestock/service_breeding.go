// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package livestock

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-sql/civil"

	"github.com/taibuivan/herdbook/internal/platform/ctxutil"
	"github.com/taibuivan/herdbook/internal/platform/validate"
	"github.com/taibuivan/herdbook/pkg/pointer"
)

// # Breeding Events

// EstrusInput records an observed heat.
type EstrusInput struct {
	EventDate civil.Date `json:"event_date"`
	Notes     string     `json:"notes"`
}

// InseminationInput records an artificial insemination.
type InseminationInput struct {
	EventDate civil.Date `json:"event_date"`
	SireCode  string     `json:"sire_code"`
	Notes     string     `json:"notes"`
}

// PregnancyCheckInput records a pregnancy diagnosis.
type PregnancyCheckInput struct {
	EventDate  civil.Date `json:"event_date"`
	IsPregnant bool       `json:"is_pregnant"`
	Notes      string     `json:"notes"`
}

// CalvingInput records a birth. An empty CalfEarTag gives the calf a
// temporary tag.
type CalvingInput struct {
	EventDate  civil.Date `json:"event_date"`
	CalfEarTag string     `json:"calf_ear_tag"`
	CalfName   string     `json:"calf_name"`
	CalfGender Gender     `json:"calf_gender"`
	Notes      string     `json:"notes"`
}

func validateBreeding(date civil.Date, notes string) *validate.Validator {
	validator := &validate.Validator{}
	return validator.Date("event_date", date).MaxLen("notes", notes, maxNoteLength)
}

// Estrus records a heat and the animal's latest estrus date.
func (service *Service) Estrus(context context.Context, id int64, input EstrusInput) (*Breeding, error) {
	if err := validateBreeding(input.EventDate, input.Notes).Err(); err != nil {
		return nil, err
	}

	event := &Breeding{LivestockID: id, Type: BreedingEstrus, EventDate: input.EventDate, Notes: input.Notes}

	if err := service.applyBreeding(context, event, func(animal *Livestock) Transition {
		return ApplyEstrus(animal, input.EventDate)
	}); err != nil {
		return nil, err
	}

	return event, nil
}

/*
Insemination records an AI and returns the record carrying the expected
delivery date.

Returns:
  - *Breeding
  - error: ValidationError or ErrNotFound
*/
func (service *Service) Insemination(context context.Context, id int64, input InseminationInput) (*Breeding, error) {
	validator := validateBreeding(input.EventDate, input.Notes)
	validator.MaxLen("sire_code", input.SireCode, maxTagLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	event := &Breeding{
		LivestockID:  id,
		Type:         BreedingInsemination,
		EventDate:    input.EventDate,
		SireCode:     input.SireCode,
		ExpectedDate: pointer.To(ExpectedDelivery(input.EventDate)),
		Notes:        input.Notes,
	}

	if err := service.applyBreeding(context, event, func(animal *Livestock) Transition {
		ApplyInsemination(animal, input.EventDate)
		return unchanged(animal)
	}); err != nil {
		return nil, err
	}

	return event, nil
}

// PregnancyCheck records a diagnosis and moves the animal to PREGNANT or
// FATTENING accordingly.
func (service *Service) PregnancyCheck(context context.Context, id int64, input PregnancyCheckInput) (*Breeding, error) {
	if err := validateBreeding(input.EventDate, input.Notes).Err(); err != nil {
		return nil, err
	}

	event := &Breeding{
		LivestockID: id,
		Type:        BreedingPregnancyCheck,
		EventDate:   input.EventDate,
		IsPregnant:  pointer.To(input.IsPregnant),
		Notes:       input.Notes,
	}

	if err := service.applyBreeding(context, event, func(animal *Livestock) Transition {
		return ApplyPregnancyCheck(animal, input.IsPregnant)
	}); err != nil {
		return nil, err
	}

	return event, nil
}

/*
Calving records a birth, closes the mother's pregnancy, and registers the
calf in the mother's pen.

Description: The calf's notes name the sire code of the mother's most recent
insemination, or "unknown" when none is on record. Pen capacity is not
checked for the calf.

Parameters:
  - context: context.Context
  - id: int64 (the mother)
  - input: CalvingInput

Returns:
  - *Livestock: The calf
  - error: ValidationError, ErrNotFound, or ErrDuplicateEarTag
*/
func (service *Service) Calving(context context.Context, id int64, input CalvingInput) (*Livestock, error) {
	validator := validateBreeding(input.EventDate, input.Notes)
	validator.MaxLen("calf_ear_tag", input.CalfEarTag, maxTagLength).
		MaxLen("calf_name", input.CalfName, maxTextLength).
		OneOf("calf_gender", string(input.CalfGender), string(GenderMale), string(GenderFemale), string(GenderCastrated))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var (
		calf   *Livestock
		change Transition
	)

	err := service.repository.WithinTx(context, func(repository Repository) error {
		mother, err := repository.Lock(context, id)
		if err != nil {
			return err
		}

		tag := input.CalfEarTag
		if tag == "" {
			tag = TemporaryEarTag(time.Now())
		}
		if err := ensureTagFree(context, repository, tag); err != nil {
			return err
		}

		sire, err := repository.LatestSireCode(context, mother.ID)
		if err != nil {
			return err
		}

		calf = NewCalf(mother, CalfSpec{
			EarTag: tag,
			Name:   input.CalfName,
			Gender: input.CalfGender,
			Born:   input.EventDate,
		}, sire)
		if err := createAnimal(context, repository, calf); err != nil {
			return err
		}

		change = ApplyCalving(mother)
		if err := repository.UpdateState(context, mother); err != nil {
			return err
		}

		return repository.CreateBreeding(context, &Breeding{
			LivestockID: mother.ID,
			Type:        BreedingCalving,
			EventDate:   input.EventDate,
			Notes:       input.Notes,
		})
	})
	if err != nil {
		return nil, err
	}

	service.record("calving", change)
	ctxutil.LoggerOr(context, service.logger).InfoContext(context, "calving_registered",
		slog.Int64("livestock_id", id),
		slog.Int64("calf_id", calf.ID),
		slog.String("calf_ear_tag", calf.EarTag),
	)

	if calf.PenID != nil {
		service.notify(context, *calf.PenID)
	}

	return calf, nil
}

// applyBreeding stores event and applies fold to the locked animal in one
// transaction.
func (service *Service) applyBreeding(context context.Context, event *Breeding, fold func(*Livestock) Transition) error {
	var change Transition

	err := service.repository.WithinTx(context, func(repository Repository) error {
		animal, err := repository.Lock(context, event.LivestockID)
		if err != nil {
			return err
		}

		if err := repository.CreateBreeding(context, event); err != nil {
			return err
		}

		change = fold(animal)
		return repository.UpdateState(context, animal)
	})
	if err != nil {
		return err
	}

	kind := breedingMetric[event.Type]
	service.record(kind, change)
	ctxutil.LoggerOr(context, service.logger).InfoContext(context, "breeding_event_registered",
		slog.Int64("livestock_id", event.LivestockID),
		slog.String("type", string(event.Type)),
		slog.String("status", string(change.To)),
	)

	return nil
}

var breedingMetric = map[BreedingType]string{
	BreedingEstrus:         "estrus",
	BreedingInsemination:   "ai",
	BreedingPregnancyCheck: "preg_check",
	BreedingCalving:        "calving",
}
