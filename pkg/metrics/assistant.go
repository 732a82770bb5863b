package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AssistantMetrics records verification-driven context sync outcomes.
type AssistantMetrics struct {
	duration prometheus.Histogram
	outcomes *prometheus.CounterVec
}

// NewAssistantMetrics registers the assistant sync metrics on the provided registerer.
func NewAssistantMetrics(reg prometheus.Registerer) *AssistantMetrics {
	if reg == nil {
		return &AssistantMetrics{}
	}
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "assistant_sync_duration_seconds",
		Help:    "Duration of a full assistant context sync in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_sync_conversations_total",
		Help: "Per-conversation assistant sync outcomes.",
	}, []string{"outcome"})
	reg.MustRegister(duration, outcomes)
	return &AssistantMetrics{
		duration: duration,
		outcomes: outcomes,
	}
}

// ObserveSyncDuration records the wall time of one sync run.
func (a *AssistantMetrics) ObserveSyncDuration(d time.Duration) {
	if a == nil || a.duration == nil {
		return
	}
	a.duration.Observe(d.Seconds())
}

// IncApplied counts a conversation whose context message was written.
func (a *AssistantMetrics) IncApplied() {
	a.incOutcome("applied")
}

// IncSkipped counts a conversation passed over (no prompt binding).
func (a *AssistantMetrics) IncSkipped() {
	a.incOutcome("skipped")
}

// IncFailed counts a conversation whose sync errored.
func (a *AssistantMetrics) IncFailed() {
	a.incOutcome("failed")
}

func (a *AssistantMetrics) incOutcome(outcome string) {
	if a == nil || a.outcomes == nil {
		return
	}
	a.outcomes.WithLabelValues(outcome).Inc()
}
