package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the assessment module: response writes,
// lock waits and debounced field saves.
type Metrics struct {
	ResponseChanges       *prometheus.CounterVec
	ResponseChangeLatency prometheus.Histogram
	LockWaitDuration      prometheus.Histogram
	SavesScheduled        prometheus.Counter
	SavesPersisted        *prometheus.CounterVec
}

// New registers the assessment metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ResponseChanges: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ethicsaudit_response_changes_total",
			Help: "Response changes applied, by outcome",
		}, []string{"outcome"}),
		ResponseChangeLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "ethicsaudit_response_change_duration_seconds",
			Help:    "Duration of a full response change including re-fetch",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		LockWaitDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "ethicsaudit_audit_lock_wait_seconds",
			Help:    "Time spent waiting for the per-audit write lock",
			Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		SavesScheduled: f.NewCounter(prometheus.CounterOpts{
			Name: "ethicsaudit_field_saves_scheduled_total",
			Help: "Debounced field saves requested",
		}),
		SavesPersisted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ethicsaudit_field_saves_persisted_total",
			Help: "Debounced field saves written, by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveResponseChange records one response change and its duration.
func (m *Metrics) ObserveResponseChange(start time.Time, outcome string) {
	if m == nil {
		return
	}
	m.ResponseChanges.WithLabelValues(outcome).Inc()
	m.ResponseChangeLatency.Observe(time.Since(start).Seconds())
}

// ObserveLockWait records how long a writer waited for its audit lock.
func (m *Metrics) ObserveLockWait(start time.Time) {
	if m == nil {
		return
	}
	m.LockWaitDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementSaveScheduled() {
	if m == nil {
		return
	}
	m.SavesScheduled.Inc()
}

func (m *Metrics) IncrementSavePersisted(outcome string) {
	if m == nil {
		return
	}
	m.SavesPersisted.WithLabelValues(outcome).Inc()
}
