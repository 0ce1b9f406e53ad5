package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts scheduler activity for the /metrics endpoint.
type Metrics struct {
	JobsScheduled    prometheus.Counter
	ReportsGenerated prometheus.Counter
	ReportFailures   prometheus.Counter
	ReportsDelivered prometheus.Counter
	DeliveryFailures prometheus.Counter
}

// NewMetrics creates and registers the scheduler counters.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		JobsScheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blackbox_jobs_scheduled_total",
			Help: "Number of jobs scheduled or rescheduled.",
		}),
		ReportsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blackbox_reports_generated_total",
			Help: "Number of reports generated successfully.",
		}),
		ReportFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blackbox_report_failures_total",
			Help: "Number of report generations that failed.",
		}),
		ReportsDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blackbox_reports_delivered_total",
			Help: "Number of reports delivered by email.",
		}),
		DeliveryFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blackbox_delivery_failures_total",
			Help: "Number of report deliveries that failed.",
		}),
	}
	reg.MustRegister(m.JobsScheduled, m.ReportsGenerated, m.ReportFailures,
		m.ReportsDelivered, m.DeliveryFailures)
	return m
}
