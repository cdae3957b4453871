package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Stream metrics
var (
	StreamsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scenevault_streams_active",
			Help: "Number of media streams currently being served",
		},
	)

	StreamsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scenevault_streams_total",
			Help: "Total number of media streams by type and outcome",
		},
		[]string{"type", "outcome"},
	)
)

// Probe metrics
var (
	ProbeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scenevault_probe_duration_seconds",
			Help:    "Duration of ffprobe runs in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	ProbeFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scenevault_probe_failures_total",
			Help: "Total number of failed ffprobe runs",
		},
	)
)

// Processing metrics
var (
	ItemsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scenevault_items_processed_total",
			Help: "Total number of queue items handled by the worker",
		},
		[]string{"status"},
	)

	StepFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scenevault_step_failures_total",
			Help: "Total number of failed derivative generation steps",
		},
		[]string{"step"},
	)
)

// Outcomes recorded in StreamsTotal.
const (
	OutcomeEnded    = "ended"
	OutcomeKilled   = "killed"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
)
