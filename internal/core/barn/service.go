// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package barn

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/herdbook/internal/platform/apperr"
	"github.com/taibuivan/herdbook/internal/platform/ctxutil"
	"github.com/taibuivan/herdbook/internal/platform/metrics"
	"github.com/taibuivan/herdbook/internal/platform/validate"
	"github.com/taibuivan/herdbook/pkg/textnorm"
)

const maxNameLength = 100

// # Service Layer

// Service orchestrates barn listing, layout views, and layout reconciliation.
type Service struct {
	repository Repository
	cache      LayoutCache
	metrics    *metrics.Recorder
	logger     *slog.Logger
}

// NewService constructs a new barn [Service].
func NewService(repository Repository, cache LayoutCache, recorder *metrics.Recorder, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		cache:      cache,
		metrics:    recorder,
		logger:     logger,
	}
}

// # Barns & Pens

// ListBarns returns every barn.
func (service *Service) ListBarns(context context.Context) ([]*Barn, error) {
	return service.repository.ListBarns(context)
}

/*
CreateBarn registers a new facility.

Parameters:
  - context: context.Context
  - name: string

Returns:
  - *Barn: The persisted barn
  - error: ValidationError, or Conflict (DUPLICATE_BARN_NAME)
*/
func (service *Service) CreateBarn(context context.Context, name string) (*Barn, error) {
	name = textnorm.Name(name)

	validator := &validate.Validator{}
	validator.Required("name", name).MaxLen("name", name, maxNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	barn := &Barn{Name: name}
	if err := service.repository.CreateBarn(context, barn); err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			return nil, apperr.New(http.StatusConflict, CodeDuplicateBarn, "Barn name '"+name+"' already exists")
		}
		return nil, err
	}

	ctxutil.LoggerOr(context, service.logger).InfoContext(context, "barn_created",
		slog.Int64("barn_id", barn.ID),
		slog.String("name", barn.Name),
	)

	return barn, nil
}

/*
ListPens returns the pens of a barn.

Returns:
  - []*Pen
  - error: ErrBarnNotFound if the barn does not exist
*/
func (service *Service) ListPens(context context.Context, barnID int64) ([]*Pen, error) {
	if _, err := service.repository.FindBarn(context, barnID); err != nil {
		return nil, err
	}
	return service.repository.ListPens(context, barnID)
}

// # Layout

/*
GetLayout returns the grid of a barn: placed pens, unplaced pens with a
default 1x1 geometry, and live occupancy per pen.

Description: Views are served from the layout cache when present. Cache
failures are logged and the view is rebuilt from the repository.

Parameters:
  - context: context.Context
  - barnID: int64

Returns:
  - *LayoutView
  - error: ErrBarnNotFound
*/
func (service *Service) GetLayout(context context.Context, barnID int64) (*LayoutView, error) {
	logger := ctxutil.LoggerOr(context, service.logger)

	if view, hit, err := service.cache.Get(context, barnID); err != nil {
		logger.WarnContext(context, "layout_cache_get_failed", slog.Int64("barn_id", barnID), slog.Any("error", err))
	} else if hit {
		return view, nil
	}

	barn, err := service.repository.FindBarn(context, barnID)
	if err != nil {
		return nil, err
	}

	pens, err := service.repository.ListPens(context, barnID)
	if err != nil {
		return nil, err
	}

	layouts, err := service.repository.ListLayouts(context, barnID)
	if err != nil {
		return nil, err
	}

	counts, err := service.repository.CountByPen(context, barnID)
	if err != nil {
		return nil, err
	}

	view := BuildView(barn, pens, layouts, counts)

	if err := service.cache.Set(context, view); err != nil {
		logger.WarnContext(context, "layout_cache_set_failed", slog.Int64("barn_id", barnID), slog.Any("error", err))
	}

	return view, nil
}

/*
ReconcileLayout replaces the grid of a barn with targets.

Description: The whole operation runs in one transaction:
 1. The barn and its persisted layouts are loaded.
 2. Layouts whose pen is absent from targets are scheduled for deletion.
 3. If any scheduled pen still houses an animal, the call fails with
    Conflict (PEN_OCCUPIED) naming those pens, and nothing is written.
 4. Deletions are applied, then targets in order: new pens are created
    (Conflict on a taken name) and placed, unplaced pens get a layout, and
    placed pens are moved in place.

Parameters:
  - context: context.Context
  - barnID: int64
  - targets: []TargetLayout

Returns:
  - error: ValidationError, ErrBarnNotFound, ErrPenNotFound, or Conflict
*/
func (service *Service) ReconcileLayout(context context.Context, barnID int64, targets []TargetLayout) error {
	logger := ctxutil.LoggerOr(context, service.logger)

	if err := validateTargets(targets); err != nil {
		service.metrics.Reconciliation(metrics.OutcomeRejected)
		return err
	}

	var plan Plan
	err := service.repository.WithinTx(context, func(repository Repository) error {
		if _, err := repository.FindBarn(context, barnID); err != nil {
			return err
		}

		persisted, err := repository.ListLayouts(context, barnID)
		if err != nil {
			return err
		}

		plan = PlanReconcile(persisted, targets)

		if err := guardOccupied(context, repository, plan.Deletions); err != nil {
			return err
		}

		if len(plan.Deletions) > 0 {
			ids := make([]int64, len(plan.Deletions))
			for i, layout := range plan.Deletions {
				ids[i] = layout.ID
			}
			if err := repository.DeleteLayouts(context, ids); err != nil {
				return err
			}
		}

		for _, step := range plan.Steps {
			if err := applyStep(context, repository, barnID, step); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		service.metrics.Reconciliation(metrics.OutcomeRejected)
		logger.WarnContext(context, "layout_reconcile_rejected",
			slog.Int64("barn_id", barnID),
			slog.String("reason", err.Error()),
		)
		return err
	}

	service.metrics.Reconciliation(metrics.OutcomeApplied)
	service.invalidate(context, barnID)

	logger.InfoContext(context, "layout_reconciled",
		slog.Int64("barn_id", barnID),
		slog.Int("deleted", len(plan.Deletions)),
		slog.Int("entries", len(plan.Steps)),
	)

	return nil
}

// PenOccupancyChanged drops the cached views of the barns owning penIDs.
// Unknown pens are ignored.
func (service *Service) PenOccupancyChanged(context context.Context, penIDs ...int64) {
	seen := make(map[int64]struct{}, len(penIDs))
	var barnIDs []int64

	for _, penID := range penIDs {
		pen, err := service.repository.FindPen(context, penID)
		if err != nil {
			continue
		}
		if _, ok := seen[pen.BarnID]; !ok {
			seen[pen.BarnID] = struct{}{}
			barnIDs = append(barnIDs, pen.BarnID)
		}
	}

	service.invalidate(context, barnIDs...)
}

func (service *Service) invalidate(context context.Context, barnIDs ...int64) {
	if len(barnIDs) == 0 {
		return
	}
	if err := service.cache.Invalidate(context, barnIDs...); err != nil {
		ctxutil.LoggerOr(context, service.logger).WarnContext(context, "layout_cache_invalidate_failed",
			slog.Any("barn_ids", barnIDs),
			slog.Any("error", err),
		)
	}
}

// # Reconciliation Steps

func guardOccupied(context context.Context, repository Repository, deletions []*Layout) error {
	if len(deletions) == 0 {
		return nil
	}

	occupied, err := repository.OccupiedPenIDs(context, PenIDs(deletions))
	if err != nil {
		return err
	}
	if len(occupied) == 0 {
		return nil
	}

	isOccupied := make(map[int64]struct{}, len(occupied))
	for _, penID := range occupied {
		isOccupied[penID] = struct{}{}
	}

	var names []string
	for _, layout := range deletions {
		if _, ok := isOccupied[layout.PenID]; ok {
			names = append(names, layout.PenName)
		}
	}

	return apperr.New(http.StatusConflict, CodePenOccupied,
		fmt.Sprintf("Pens still holding livestock cannot be unplaced: %s", strings.Join(names, ", ")))
}

func applyStep(context context.Context, repository Repository, barnID int64, step Step) error {
	target := step.Target

	switch step.Kind {
	case StepCreatePen:
		name := textnorm.Name(target.Pen.New.Name)

		exists, err := repository.PenNameExists(context, name)
		if err != nil {
			return err
		}
		if exists {
			return duplicatePenName(name)
		}

		pen := &Pen{BarnID: barnID, Name: name, Capacity: target.Pen.New.Capacity}
		if err := repository.CreatePen(context, pen); err != nil {
			if apperr.HasCode(err, apperr.CodeConflict) {
				return duplicatePenName(name)
			}
			return err
		}

		return repository.CreateLayout(context, newLayout(barnID, pen, target))

	case StepPlace:
		pen, err := repository.FindPen(context, *target.Pen.ExistingID)
		if err != nil {
			return err
		}
		if pen.BarnID != barnID {
			return apperr.ValidationError(fmt.Sprintf("Pen %d belongs to another barn", pen.ID))
		}

		return repository.CreateLayout(context, newLayout(barnID, pen, target))

	case StepUpdate:
		layout := *step.Current
		layout.Row, layout.Col = target.Row, target.Col
		layout.RowSpan, layout.ColSpan = target.RowSpan, target.ColSpan

		return repository.UpdateLayout(context, &layout)
	}

	return nil
}

func newLayout(barnID int64, pen *Pen, target TargetLayout) *Layout {
	return &Layout{
		BarnID:   barnID,
		PenID:    pen.ID,
		Row:      target.Row,
		Col:      target.Col,
		RowSpan:  target.RowSpan,
		ColSpan:  target.ColSpan,
		PenName:  pen.Name,
		Capacity: pen.Capacity,
	}
}

func validateTargets(targets []TargetLayout) error {
	validator := &validate.Validator{}
	seen := make(map[int64]struct{}, len(targets))

	for i, target := range targets {
		field := fmt.Sprintf("layouts[%d]", i)
		hasExisting, hasNew := target.Pen.ExistingID != nil, target.Pen.New != nil

		validator.Custom(field+".pen", hasExisting == hasNew, "Exactly one of existing_id or new is required")

		if hasExisting {
			penID := *target.Pen.ExistingID
			validator.Custom(field+".pen.existing_id", penID <= 0, "Must be a positive id")

			_, duplicate := seen[penID]
			validator.Custom(field+".pen.existing_id", duplicate, "Pen is listed more than once")
			seen[penID] = struct{}{}
		}

		if hasNew {
			validator.Required(field+".pen.new.name", target.Pen.New.Name).
				MaxLen(field+".pen.new.name", target.Pen.New.Name, maxNameLength).
				Min(field+".pen.new.capacity", target.Pen.New.Capacity, 1)
		}

		validator.Min(field+".row", target.Row, 0).
			Min(field+".col", target.Col, 0).
			Min(field+".row_span", target.RowSpan, 1).
			Min(field+".col_span", target.ColSpan, 1)
	}

	return validator.Err()
}
