// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/herdbook/internal/platform/metrics"
)

/*
TestRecorder_Counters exposes recorded values on the handler.
*/
func TestRecorder_Counters(t *testing.T) {
	recorder := metrics.NewRecorder()

	recorder.Transition("FATTENING", "SICK")
	recorder.Transition("SICK", "SICK")
	recorder.Event("health")
	recorder.Event("health")
	recorder.Reconciliation(metrics.OutcomeRejected)

	assert.Equal(t, 2.0, testutil.ToFloat64(recorder.EventCounter("health")))

	response := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := response.Body.String()
	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, body, `herdbook_livestock_status_transitions_total{from="FATTENING",to="SICK"} 1`)
	assert.NotContains(t, body, `from="SICK",to="SICK"`)
	assert.Contains(t, body, `herdbook_lifecycle_events_total{kind="health"} 2`)
	assert.Contains(t, body, `herdbook_layout_reconciliations_total{outcome="rejected"} 1`)
}

/*
TestRecorder_NilSafe allows services to run without metrics.
*/
func TestRecorder_NilSafe(t *testing.T) {
	var recorder *metrics.Recorder

	assert.NotPanics(t, func() {
		recorder.Transition("CALF", "SOLD")
		recorder.Event("sale")
		recorder.Reconciliation(metrics.OutcomeApplied)
	})
}
