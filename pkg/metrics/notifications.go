package metrics

import "github.com/prometheus/client_golang/prometheus"

// NotificationMetrics records price-change mail dispatch outcomes.
type NotificationMetrics struct {
	sent   prometheus.Counter
	failed prometheus.Counter
}

// NewNotificationMetrics registers the mail counters on the provided registerer.
func NewNotificationMetrics(reg prometheus.Registerer) *NotificationMetrics {
	if reg == nil {
		return &NotificationMetrics{}
	}
	sent := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "price_change_mail_sent_total",
		Help: "Price-change mails handed to the mail provider.",
	})
	failed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "price_change_mail_failed_total",
		Help: "Price-change mails the provider rejected.",
	})
	reg.MustRegister(sent, failed)
	return &NotificationMetrics{sent: sent, failed: failed}
}

// IncSent increments the delivered counter.
func (n *NotificationMetrics) IncSent() {
	if n == nil || n.sent == nil {
		return
	}
	n.sent.Inc()
}

// IncFailed increments the failure counter.
func (n *NotificationMetrics) IncFailed() {
	if n == nil || n.failed == nil {
		return
	}
	n.failed.Inc()
}
