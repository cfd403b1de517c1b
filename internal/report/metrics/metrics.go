package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for report generation.
type Metrics struct {
	Generations        *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
	PhaseDuration      *prometheus.HistogramVec
	ChunksStreamed     prometheus.Counter
	ActiveStreams      prometheus.Gauge
	EventsPublished    *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Generations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ethicsaudit_report_generations_total",
			Help: "Report generations by terminal outcome",
		}, []string{"outcome"}),
		GenerationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "ethicsaudit_report_generation_duration_seconds",
			Help:    "Wall time of a report generation stream",
			Buckets: []float64{1, 2.5, 5, 10, 20, 30, 60, 120},
		}),
		PhaseDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ethicsaudit_report_phase_duration_seconds",
			Help:    "Duration of each generation phase",
			Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 5, 15, 60},
		}, []string{"phase"}),
		ChunksStreamed: f.NewCounter(prometheus.CounterOpts{
			Name: "ethicsaudit_report_chunks_streamed_total",
			Help: "Content fragments relayed to clients",
		}),
		ActiveStreams: f.NewGauge(prometheus.GaugeOpts{
			Name: "ethicsaudit_report_active_streams",
			Help: "Report generation streams in progress",
		}),
		EventsPublished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ethicsaudit_report_events_published_total",
			Help: "report.generated events by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) StreamStarted() {
	if m != nil {
		m.ActiveStreams.Inc()
	}
}

// StreamFinished records the outcome and duration of one generation.
func (m *Metrics) StreamFinished(outcome string, start time.Time) {
	if m != nil {
		m.ActiveStreams.Dec()
		m.Generations.WithLabelValues(outcome).Inc()
		m.GenerationDuration.Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) ObservePhase(phase string, start time.Time) {
	if m != nil {
		m.PhaseDuration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) IncrementChunks() {
	if m != nil {
		m.ChunksStreamed.Inc()
	}
}

func (m *Metrics) IncrementPublished(outcome string) {
	if m != nil {
		m.EventsPublished.WithLabelValues(outcome).Inc()
	}
}
