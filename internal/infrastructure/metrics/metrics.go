package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Schedule metrics
	SchedulesComputed prometheus.Counter
	ScheduleDuration  prometheus.Histogram
	SchedulePrincipal prometheus.Histogram
	SchedulePeriods   prometheus.Histogram
	ScheduleErrors    *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter

	// Idempotency metrics
	IdempotencyReplays prometheus.Counter
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SchedulesComputed: factory.NewCounter(prometheus.CounterOpts{
			Name: "goloan_schedules_computed_total",
			Help: "Total number of amortization schedules computed",
		}),
		ScheduleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "goloan_schedule_duration_seconds",
			Help:    "Duration of schedule computations",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		}),
		SchedulePrincipal: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "goloan_schedule_principal",
			Help:    "Principal of computed schedules",
			Buckets: []float64{50000, 100000, 250000, 500000, 1000000, 2500000, 10000000},
		}),
		SchedulePeriods: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "goloan_schedule_periods",
			Help:    "Number of payment periods in computed schedules",
			Buckets: []float64{60, 120, 180, 240, 300, 360, 420},
		}),
		ScheduleErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goloan_schedule_errors_total",
				Help: "Total number of rejected schedule requests by type",
			},
			[]string{"error_type"},
		),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "goloan_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),

		IdempotencyReplays: factory.NewCounter(prometheus.CounterOpts{
			Name: "goloan_idempotency_replays_total",
			Help: "Total responses replayed from the idempotency store",
		}),
	}
}

// ObserveSchedule implements usecase.ScheduleRecorder.
func (m *Metrics) ObserveSchedule(principal float64, periods int, elapsed time.Duration) {
	m.SchedulesComputed.Inc()
	m.ScheduleDuration.Observe(elapsed.Seconds())
	m.SchedulePrincipal.Observe(principal)
	m.SchedulePeriods.Observe(float64(periods))
}

// RecordError implements usecase.ScheduleRecorder.
func (m *Metrics) RecordError(kind string) {
	m.ScheduleErrors.WithLabelValues(kind).Inc()
}
