// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes Prometheus counters for the livestock lifecycle and
the barn layout reconciler.

A [Recorder] owns a private registry so tests can construct as many as they
need without colliding on the global default registry. All methods are safe
to call on a nil *Recorder.
*/
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "herdbook"

// Reconciliation outcomes.
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
)

// Recorder groups the application counters.
type Recorder struct {
	registry        *prometheus.Registry
	transitions     *prometheus.CounterVec
	events          *prometheus.CounterVec
	reconciliations *prometheus.CounterVec
}

// NewRecorder builds a Recorder with its own registry, including Go runtime
// and process collectors.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	recorder := &Recorder{
		registry: registry,
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "livestock_status_transitions_total",
			Help:      "Livestock status changes applied by lifecycle events.",
		}, []string{"from", "to"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lifecycle_events_total",
			Help:      "Lifecycle events registered, by kind.",
		}, []string{"kind"}),
		reconciliations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_reconciliations_total",
			Help:      "Barn layout reconciliations, by outcome.",
		}, []string{"outcome"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		recorder.transitions,
		recorder.events,
		recorder.reconciliations,
	)

	return recorder
}

// Transition counts a status change. Unchanged statuses are ignored.
func (r *Recorder) Transition(from, to string) {
	if r == nil || from == to {
		return
	}
	r.transitions.WithLabelValues(from, to).Inc()
}

// Event counts one registered lifecycle event.
func (r *Recorder) Event(kind string) {
	if r == nil {
		return
	}
	r.events.WithLabelValues(kind).Inc()
}

// Reconciliation counts one layout save attempt.
func (r *Recorder) Reconciliation(outcome string) {
	if r == nil {
		return
	}
	r.reconciliations.WithLabelValues(outcome).Inc()
}

// TransitionCounter returns the counter behind [Recorder.Transition].
func (r *Recorder) TransitionCounter(from, to string) prometheus.Counter {
	return r.transitions.WithLabelValues(from, to)
}

// EventCounter returns the counter behind [Recorder.Event].
func (r *Recorder) EventCounter(kind string) prometheus.Counter {
	return r.events.WithLabelValues(kind)
}

// ReconciliationCounter returns the counter behind [Recorder.Reconciliation].
func (r *Recorder) ReconciliationCounter(outcome string) prometheus.Counter {
	return r.reconciliations.WithLabelValues(outcome)
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
