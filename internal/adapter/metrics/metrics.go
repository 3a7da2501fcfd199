// Package metrics exposes Prometheus counters for lead lifecycle activity.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Transition outcomes used as the "outcome" label.
const (
	OutcomeApplied   = "applied"
	OutcomeUnchanged = "unchanged"
	OutcomeRejected  = "rejected"
)

var (
	once sync.Once

	StatusTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "leadflow_status_transitions_total",
		Help: "Status transition checks by event and outcome",
	}, []string{"event", "outcome"})

	LeadChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "leadflow_lead_changes_total",
		Help: "Published lead field changes by field",
	}, []string{"field"})

	PublishFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "leadflow_publish_failures_total",
		Help: "Lead changes that could not be handed to the audit pipeline",
	})
)

// Handler exposes /metrics HTTP handler with a singleton registry.
func Handler() http.Handler {
	once.Do(func() {
		prometheus.MustRegister(
			StatusTransitions,
			LeadChanges,
			PublishFailures,
		)
	})
	return promhttp.Handler()
}
