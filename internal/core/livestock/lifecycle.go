// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package livestock

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-sql/civil"

	"github.com/taibuivan/herdbook/pkg/pointer"
)

// GestationDays is the time from insemination to expected delivery.
const GestationDays = 285

// UnknownSire is recorded on calves whose mother has no insemination record.
const UnknownSire = "unknown"

// Transition is the status change caused by one event.
type Transition struct {
	From Status
	To   Status
}

// Changed reports whether the event moved the animal to another status.
func (t Transition) Changed() bool { return t.From != t.To }

func transition(animal *Livestock, to Status) Transition {
	from := animal.Status
	animal.Status = to
	return Transition{From: from, To: to}
}

func unchanged(animal *Livestock) Transition {
	return Transition{From: animal.Status, To: animal.Status}
}

// ExpectedDelivery returns the expected calving date for an insemination.
func ExpectedDelivery(inseminated civil.Date) civil.Date {
	return inseminated.AddDays(GestationDays)
}

// # Health Events

/*
ApplyHealth folds a veterinary event into the animal.

Description:
  - LastDiseaseName and LastTreatmentDate always take the event's values,
    whatever the event date.
  - A positive withdrawal period yields a candidate expiry of
    EventDate + WithdrawalPeriod. WithdrawalDate only ever moves forward.
  - TREAT marks the animal SICK unless it is PREGNANT.
*/
func ApplyHealth(animal *Livestock, event *Health) Transition {
	animal.LastDiseaseName = event.DiseaseName
	animal.LastTreatmentDate = pointer.To(event.EventDate)

	if event.WithdrawalPeriod > 0 {
		candidate := event.EventDate.AddDays(event.WithdrawalPeriod)
		if animal.WithdrawalDate == nil || candidate.After(*animal.WithdrawalDate) {
			animal.WithdrawalDate = &candidate
		}
	}

	if event.Type == HealthTreat && animal.Status != StatusPregnant {
		return transition(animal, StatusSick)
	}

	return unchanged(animal)
}

// Recover returns a SICK animal to FATTENING. Any other status is left as is.
func Recover(animal *Livestock) Transition {
	if animal.Status != StatusSick {
		return unchanged(animal)
	}
	return transition(animal, StatusFattening)
}

// # Breeding Events

// ApplyEstrus records the latest heat.
func ApplyEstrus(animal *Livestock, date civil.Date) Transition {
	animal.LastEstrusDate = pointer.To(date)
	return unchanged(animal)
}

// ApplyInsemination records an AI and returns the expected delivery date,
// which is also stored on the animal.
func ApplyInsemination(animal *Livestock, date civil.Date) civil.Date {
	expected := ExpectedDelivery(date)
	animal.LastAIDate = pointer.To(date)
	animal.ExpectedDate = pointer.To(expected)
	return expected
}

/*
ApplyPregnancyCheck applies a pregnancy diagnosis.

A positive result makes the animal PREGNANT and, when an insemination is on
record, recomputes the expected date from it. A negative result makes it
FATTENING and clears the expected date.
*/
func ApplyPregnancyCheck(animal *Livestock, pregnant bool) Transition {
	if !pregnant {
		animal.ExpectedDate = nil
		return transition(animal, StatusFattening)
	}

	if animal.LastAIDate != nil {
		animal.ExpectedDate = pointer.To(ExpectedDelivery(*animal.LastAIDate))
	}
	return transition(animal, StatusPregnant)
}

// ApplyCalving closes a pregnancy: the mother returns to FATTENING, her
// insemination and expected dates are cleared, and her parity grows by one.
func ApplyCalving(mother *Livestock) Transition {
	mother.ExpectedDate = nil
	mother.LastAIDate = nil
	mother.BreedingCount++
	return transition(mother, StatusFattening)
}

// CalfSpec describes a calf born during a calving event.
type CalfSpec struct {
	EarTag string
	Name   string
	Gender Gender
	Born   civil.Date
}

// TemporaryEarTag returns the placeholder tag given to untagged calves.
func TemporaryEarTag(now time.Time) string {
	return fmt.Sprintf("TEMP-%d", now.UnixMilli())
}

// NewCalf builds the calf of mother. It inherits the mother's pen and breed,
// and its notes name the sire code of the mother's latest insemination.
func NewCalf(mother *Livestock, spec CalfSpec, sireCode string) *Livestock {
	if strings.TrimSpace(sireCode) == "" {
		sireCode = UnknownSire
	}

	return &Livestock{
		EarTag:    spec.EarTag,
		Name:      spec.Name,
		BirthDate: pointer.To(spec.Born),
		Gender:    spec.Gender,
		Status:    StatusCalf,
		Breed:     mother.Breed,
		PenID:     pointer.Clone(mother.PenID),
		MotherID:  pointer.To(mother.ID),
		Notes:     "Sire: " + sireCode,
	}
}

// # Sale

// SafeToSell reports whether the animal may be sold on date: it is neither
// SOLD nor SICK, and date is not before its withdrawal date. Selling on the
// withdrawal date itself is allowed.
func (animal *Livestock) SafeToSell(date civil.Date) bool {
	if animal.Status == StatusSold || animal.Status == StatusSick {
		return false
	}
	return animal.WithdrawalDate == nil || !date.Before(*animal.WithdrawalDate)
}

// MarkSold moves the animal to its terminal status.
func MarkSold(animal *Livestock) Transition {
	return transition(animal, StatusSold)
}
