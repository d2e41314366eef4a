// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package livestock

import (
	"context"

	"github.com/golang-sql/civil"

	"github.com/taibuivan/herdbook/pkg/slice"
)

// DefaultDueHorizon is how many days ahead the dashboard looks for
// expected deliveries.
const DefaultDueHorizon = 30

// MaxDueHorizon bounds the horizon accepted over HTTP.
const MaxDueHorizon = 365

// Dashboard summarizes the manageable herd on a given day.
type Dashboard struct {
	Date         civil.Date     `json:"date"`
	Total        int            `json:"total"`
	StatusCounts map[Status]int `json:"status_counts"`
	SafeToSell   int            `json:"safe_to_sell"`
	HorizonDays  int            `json:"horizon_days"`
	DueSoon      []*Livestock   `json:"due_soon"`
}

/*
Dashboard summarizes every animal that is not sold.

Description: DueSoon holds animals whose expected delivery falls between
today and today + horizonDays, both inclusive, ordered by id. A horizon
below one falls back to [DefaultDueHorizon].

Parameters:
  - context: context.Context
  - today: civil.Date
  - horizonDays: int

Returns:
  - *Dashboard
  - error: Retrieval failures
*/
func (service *Service) Dashboard(context context.Context, today civil.Date, horizonDays int) (*Dashboard, error) {
	if horizonDays < 1 {
		horizonDays = DefaultDueHorizon
	}

	herd, err := service.repository.List(context, ListFilter{})
	if err != nil {
		return nil, err
	}

	counts := make(map[Status]int, len(Statuses)-1)
	for _, status := range Statuses {
		if status != StatusSold {
			counts[status] = 0
		}
	}

	dashboard := &Dashboard{
		Date:         today,
		Total:        len(herd),
		StatusCounts: counts,
		HorizonDays:  horizonDays,
	}

	for _, animal := range herd {
		counts[animal.Status]++
		if animal.SafeToSell(today) {
			dashboard.SafeToSell++
		}
	}

	limit := today.AddDays(horizonDays)
	dashboard.DueSoon = slice.Filter(herd, func(animal *Livestock) bool {
		due := animal.ExpectedDate
		return due != nil && !due.Before(today) && !due.After(limit)
	})
	if dashboard.DueSoon == nil {
		dashboard.DueSoon = []*Livestock{}
	}

	return dashboard, nil
}
