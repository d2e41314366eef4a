// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package livestock tracks individual animals from registration to sale.

# Core Responsibility

  - Registry: Defines [Livestock] with its identity tag, lineage, and pen.
  - Lifecycle: Health and breeding events move an animal between statuses and
    refresh its [Summary] (see lifecycle.go). Summary fields are written only
    by the lifecycle functions, never by the store directly.
  - Housing: Moves are gated by pen capacity (see capacity.go).
  - Sale: A sale is terminal and only allowed once the animal is healthy and
    out of its withdrawal period.
*/
package livestock

import (
	"net/http"
	"time"

	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"

	"github.com/taibuivan/herdbook/internal/platform/apperr"
)

// # Enums

// Status is the lifecycle state of an animal.
type Status string

const (
	StatusCalf      Status = "CALF"
	StatusFattening Status = "FATTENING"
	StatusPregnant  Status = "PREGNANT"
	StatusSick      Status = "SICK"
	StatusSold      Status = "SOLD"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusCalf, StatusFattening, StatusPregnant, StatusSick, StatusSold}

// Gender of an animal.
type Gender string

const (
	GenderMale      Gender = "MALE"
	GenderFemale    Gender = "FEMALE"
	GenderCastrated Gender = "CASTRATED"
)

// HealthType distinguishes preventive from curative veterinary events.
type HealthType string

const (
	HealthVaccine HealthType = "VACCINE"
	HealthTreat   HealthType = "TREAT"
)

// BreedingType is the kind of a reproductive event.
type BreedingType string

const (
	BreedingEstrus         BreedingType = "ESTRUS"
	BreedingInsemination   BreedingType = "AI"
	BreedingPregnancyCheck BreedingType = "PREG_CHECK"
	BreedingCalving        BreedingType = "CALVING"
)

// # Core Entities

// Summary caches the latest health and breeding facts of an animal.
type Summary struct {
	BreedingCount     int         `json:"breeding_count"`
	LastEstrusDate    *civil.Date `json:"last_estrus_date"`
	LastAIDate        *civil.Date `json:"last_ai_date"`
	ExpectedDate      *civil.Date `json:"expected_date"`
	WithdrawalDate    *civil.Date `json:"withdrawal_date"`
	LastDiseaseName   string      `json:"last_disease_name,omitempty"`
	LastTreatmentDate *civil.Date `json:"last_treatment_date"`
}

// Livestock is one animal. EarTag is unique and never reused.
type Livestock struct {
	ID        int64       `json:"id"`
	EarTag    string      `json:"ear_tag"`
	Name      string      `json:"name,omitempty"`
	BirthDate *civil.Date `json:"birth_date"`
	Gender    Gender      `json:"gender"`
	Status    Status      `json:"status"`
	Breed     string      `json:"breed,omitempty"`
	PenID     *int64      `json:"pen_id"`
	MotherID  *int64      `json:"mother_id,omitempty"`
	FatherID  *int64      `json:"father_id,omitempty"`
	Notes     string      `json:"notes,omitempty"`
	Summary
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InPen reports whether the animal is currently housed in penID.
func (animal *Livestock) InPen(penID int64) bool {
	return animal.PenID != nil && *animal.PenID == penID
}

// Health is one append-only veterinary record.
type Health struct {
	ID               int64      `json:"id"`
	LivestockID      int64      `json:"livestock_id"`
	Type             HealthType `json:"type"`
	EventDate        civil.Date `json:"event_date"`
	DiseaseName      string     `json:"disease_name,omitempty"`
	Medicine         string     `json:"medicine,omitempty"`
	Description      string     `json:"description,omitempty"`
	WithdrawalPeriod int        `json:"withdrawal_period"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Breeding is one append-only reproductive record. SireCode is an external
// semen identifier, not a livestock id.
type Breeding struct {
	ID           int64        `json:"id"`
	LivestockID  int64        `json:"livestock_id"`
	Type         BreedingType `json:"type"`
	EventDate    civil.Date   `json:"event_date"`
	SireCode     string       `json:"sire_code,omitempty"`
	IsPregnant   *bool        `json:"is_pregnant,omitempty"`
	ExpectedDate *civil.Date  `json:"expected_date,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Sale closes the life of an animal on the farm. At most one per animal.
type Sale struct {
	ID           int64               `json:"id"`
	LivestockID  int64               `json:"livestock_id"`
	SaleDate     civil.Date          `json:"sale_date"`
	Price        decimal.Decimal     `json:"price"`
	CustomerName string              `json:"customer_name,omitempty"`
	Weight       decimal.NullDecimal `json:"weight"`
	Grade        string              `json:"grade,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// SaleRecord is a sale joined with the identity of the sold animal.
type SaleRecord struct {
	Sale
	EarTag    string      `json:"ear_tag"`
	BirthDate *civil.Date `json:"birth_date"`
	Breed     string      `json:"breed,omitempty"`
}

// Detail is an animal with its full event history, newest first.
type Detail struct {
	*Livestock
	HealthHistory   []*Health   `json:"health_history"`
	BreedingHistory []*Breeding `json:"breeding_history"`
}

// ListFilter narrows [Repository.List]. An empty Statuses selects every
// animal that is not sold.
type ListFilter struct {
	TagSuffix string
	Statuses  []Status
}

// # Domain Errors

const (
	CodeDuplicateEarTag = "DUPLICATE_EAR_TAG"
	CodeCapacityFull    = "PEN_CAPACITY_EXCEEDED"
	CodeAlreadySold     = "ALREADY_SOLD"
	CodeNotSafeToSell   = "NOT_SAFE_TO_SELL"
	CodeSaleNotFound    = "SALE_NOT_FOUND"
)

var (
	// ErrNotFound is returned when a livestock id does not resolve.
	ErrNotFound = apperr.NotFound("Livestock")

	// ErrDuplicateEarTag rejects a registration reusing an identity tag.
	ErrDuplicateEarTag = apperr.New(http.StatusConflict, CodeDuplicateEarTag, "Ear tag is already registered")

	// ErrPenFull rejects a move into a pen at capacity.
	ErrPenFull = apperr.New(http.StatusConflict, CodeCapacityFull, "Destination pen is at capacity")

	// ErrAlreadySold rejects a second sale of the same animal.
	ErrAlreadySold = apperr.New(http.StatusConflict, CodeAlreadySold, "Livestock is already sold")

	// ErrNotSafeToSell rejects a sale of a sick animal or one still inside
	// its withdrawal period.
	ErrNotSafeToSell = apperr.New(http.StatusBadRequest, CodeNotSafeToSell,
		"Livestock under treatment or within its withdrawal period cannot be sold")

	// ErrSaleNotFound is returned when an animal has no sale record.
	ErrSaleNotFound = apperr.New(http.StatusNotFound, CodeSaleNotFound, "Sale not found")
)
