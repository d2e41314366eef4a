// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package livestock

import (
	"context"
	"log/slog"

	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"

	"github.com/taibuivan/herdbook/internal/platform/apperr"
	"github.com/taibuivan/herdbook/internal/platform/ctxutil"
	"github.com/taibuivan/herdbook/internal/platform/validate"
	"github.com/taibuivan/herdbook/pkg/pagination"
)

// # Sale Finalizer

// SaleInput is the closing record of an animal.
type SaleInput struct {
	SaleDate     civil.Date          `json:"sale_date"`
	Price        decimal.Decimal     `json:"price"`
	CustomerName string              `json:"customer_name"`
	Weight       decimal.NullDecimal `json:"weight"`
	Grade        string              `json:"grade"`
	Notes        string              `json:"notes"`
}

func (input SaleInput) validate() error {
	validator := &validate.Validator{}
	validator.Date("sale_date", input.SaleDate).
		Custom("price", input.Price.IsNegative(), "Must not be negative").
		Custom("weight", input.Weight.Valid && !input.Weight.Decimal.IsPositive(), "Must be positive").
		MaxLen("customer_name", input.CustomerName, maxTextLength).
		MaxLen("grade", input.Grade, maxTagLength).
		MaxLen("notes", input.Notes, maxNoteLength)
	return validator.Err()
}

/*
RegisterSale sells an animal.

Description: Preconditions are checked in order and the first failure wins:
the animal must not be SOLD already, then it must be safe to sell on the
sale date. The sale and the SOLD status are written in one transaction.

Parameters:
  - context: context.Context
  - id: int64
  - input: SaleInput

Returns:
  - *Sale: The stored sale
  - error: ValidationError, ErrNotFound, ErrAlreadySold, or ErrNotSafeToSell
*/
func (service *Service) RegisterSale(context context.Context, id int64, input SaleInput) (*Sale, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	sale := &Sale{
		LivestockID:  id,
		SaleDate:     input.SaleDate,
		Price:        input.Price,
		CustomerName: input.CustomerName,
		Weight:       input.Weight,
		Grade:        input.Grade,
		Notes:        input.Notes,
	}

	var (
		penID  *int64
		change Transition
	)

	err := service.repository.WithinTx(context, func(repository Repository) error {
		animal, err := repository.Lock(context, id)
		if err != nil {
			return err
		}

		if animal.Status == StatusSold {
			return ErrAlreadySold
		}
		if !animal.SafeToSell(input.SaleDate) {
			return ErrNotSafeToSell
		}

		if err := repository.CreateSale(context, sale); err != nil {
			if apperr.HasCode(err, apperr.CodeConflict) {
				return ErrAlreadySold
			}
			return err
		}

		change = MarkSold(animal)
		penID = animal.PenID
		return repository.UpdateState(context, animal)
	})
	if err != nil {
		return nil, err
	}

	service.record("sale", change)
	ctxutil.LoggerOr(context, service.logger).InfoContext(context, "sale_registered",
		slog.Int64("livestock_id", id),
		slog.Int64("sale_id", sale.ID),
		slog.String("price", sale.Price.StringFixed(2)),
	)

	// A sold animal stops counting towards its pen's occupancy.
	if penID != nil {
		service.notify(context, *penID)
	}

	return sale, nil
}

/*
GetSale returns the sale of an animal.

Returns:
  - *Sale
  - error: ErrNotFound for an unknown animal, ErrSaleNotFound if it was
    never sold
*/
func (service *Service) GetSale(context context.Context, id int64) (*Sale, error) {
	if _, err := service.repository.Find(context, id); err != nil {
		return nil, err
	}
	return service.repository.FindSale(context, id)
}

// ListSales returns a page of sold animals, newest sale first.
func (service *Service) ListSales(context context.Context, params pagination.Params) ([]*SaleRecord, int, error) {
	return service.repository.ListSales(context, params.Limit, params.Offset())
}
