//go:build unit

package metrics_test

import (
	"errors"
	"testing"
	"time"

	"hotel-reservation/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordReservation(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry())

	m.RecordReservation(metrics.OutcomeCreated)
	m.RecordReservation(metrics.OutcomeCreated)
	m.RecordReservation(metrics.OutcomeUnavailable)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReservationsTotal.WithLabelValues(metrics.OutcomeCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationsTotal.WithLabelValues(metrics.OutcomeUnavailable)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ReservationsTotal.WithLabelValues(metrics.OutcomeError)))
}

func TestRecordTransition(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry())

	m.RecordTransition("confirm", nil)
	m.RecordTransition("confirm", errors.New("stale"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationTransitionsTotal.WithLabelValues("confirm", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationTransitionsTotal.WithLabelValues("confirm", "failed")))
}

func TestObserveHTTP(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	m.ObserveHTTP("GET", "/api/rooms", "200", 20*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/rooms", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
}

func TestNilMetricsIsANoop(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.RecordReservation(metrics.OutcomeCreated)
		m.RecordTransition("cancel", nil)
		m.ObserveHTTP("GET", "/health", "200", time.Millisecond)
	})
}
