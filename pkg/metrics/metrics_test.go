package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestAssistantMetricsExportsOutcomesAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewAssistantMetrics(reg)
	metrics.ObserveSyncDuration(250 * time.Millisecond)
	metrics.IncApplied()
	metrics.IncApplied()
	metrics.IncSkipped()
	metrics.IncFailed()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "assistant_sync_conversations_total", "outcome", "applied"); err != nil {
		t.Fatalf("fetch applied: %v", err)
	} else if got != 2 {
		t.Fatalf("expected applied=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "assistant_sync_conversations_total", "outcome", "skipped"); err != nil {
		t.Fatalf("fetch skipped: %v", err)
	} else if got != 1 {
		t.Fatalf("expected skipped=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "assistant_sync_duration_seconds"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestNotificationAndViewCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	mail := NewNotificationMetrics(reg)
	views := NewViewWorkerMetrics(reg)

	mail.IncSent()
	mail.IncSent()
	mail.IncFailed()
	views.IncRecorded()
	views.IncFailed()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	checks := []struct {
		name string
		want float64
	}{
		{"price_change_mail_sent_total", 2},
		{"price_change_mail_failed_total", 1},
		{"view_events_recorded_total", 1},
		{"view_events_failed_total", 1},
	}
	for _, check := range checks {
		mf := findMetricFamily(mfs, check.name)
		if mf == nil {
			t.Fatalf("metric %q not found", check.name)
		}
		if got := mf.GetMetric()[0].GetCounter().GetValue(); got != check.want {
			t.Fatalf("metric %q expected %f got %f", check.name, check.want, got)
		}
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	metrics := NewAssistantMetrics(nil)
	metrics.ObserveSyncDuration(time.Second)
	metrics.IncApplied()

	mail := NewNotificationMetrics(nil)
	mail.IncSent()
	mail.IncFailed()

	views := NewViewWorkerMetrics(nil)
	views.IncRecorded()
	views.IncFailed()
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	if len(mf.GetMetric()) == 0 {
		return 0, fmt.Errorf("histogram %q has no samples", name)
	}
	return mf.GetMetric()[0].GetHistogram().GetSampleSum(), nil
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
