package metrics

import "github.com/prometheus/client_golang/prometheus"

// ViewWorkerMetrics records view-event ingestion outcomes.
type ViewWorkerMetrics struct {
	recorded prometheus.Counter
	failed   prometheus.Counter
}

// NewViewWorkerMetrics registers the ingestion counters on the provided registerer.
func NewViewWorkerMetrics(reg prometheus.Registerer) *ViewWorkerMetrics {
	if reg == nil {
		return &ViewWorkerMetrics{}
	}
	recorded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "view_events_recorded_total",
		Help: "View events appended to the view log.",
	})
	failed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "view_events_failed_total",
		Help: "View events dropped after a decode or store failure.",
	})
	reg.MustRegister(recorded, failed)
	return &ViewWorkerMetrics{recorded: recorded, failed: failed}
}

// IncRecorded increments the appended counter.
func (v *ViewWorkerMetrics) IncRecorded() {
	if v == nil || v.recorded == nil {
		return
	}
	v.recorded.Inc()
}

// IncFailed increments the dropped counter.
func (v *ViewWorkerMetrics) IncFailed() {
	if v == nil || v.failed == nil {
		return
	}
	v.failed.Inc()
}
