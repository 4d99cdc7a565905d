// Package metrics holds the Prometheus collectors for the reflow service,
// registered once at startup and shared across the job handlers and the
// HTTP API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the collectors a reflow invocation reports to, whether it
// ran synchronously from the API or inside an Asynq job handler.
type Metrics struct {
	ReflowDuration      *prometheus.HistogramVec
	ReflowInfeasible    prometheus.Counter
	WorkOrdersReflowed  prometheus.Counter
	ReflowJobsProcessed *prometheus.CounterVec
}

// New registers the reflow collectors against reg and returns the bundle.
// cmd/server passes a dedicated prometheus.Registry; a nil reg creates the
// collectors without registering them.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ReflowDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reflow_duration_seconds",
			Help:    "Wall-clock time of one reflow invocation.",
			Buckets: prometheus.DefBuckets,
		}, []string{"infeasible"}),

		ReflowInfeasible: factory.NewCounter(prometheus.CounterOpts{
			Name: "reflow_infeasible_total",
			Help: "Number of reflow invocations whose result was infeasible.",
		}),

		WorkOrdersReflowed: factory.NewCounter(prometheus.CounterOpts{
			Name: "reflow_work_orders_rescheduled_total",
			Help: "Total work orders whose timestamps changed across all reflow invocations.",
		}),

		ReflowJobsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reflow_jobs_total",
			Help: "Number of Asynq reflow jobs handled, labeled by outcome.",
		}, []string{"outcome"}),
	}
}

// ObserveResult records duration, infeasibility, and work-order-change
// counters for one completed reflow invocation.
func (m *Metrics) ObserveResult(seconds float64, infeasible bool, changedCount int) {
	label := "false"
	if infeasible {
		label = "true"
		m.ReflowInfeasible.Inc()
	}
	m.ReflowDuration.WithLabelValues(label).Observe(seconds)
	m.WorkOrdersReflowed.Add(float64(changedCount))
}

// ObserveJob records one Asynq job outcome ("success" or "failure").
func (m *Metrics) ObserveJob(outcome string) {
	m.ReflowJobsProcessed.WithLabelValues(outcome).Inc()
}
