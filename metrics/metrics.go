package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// RequestsTotal counts orchestrated requests by detected intent and outcome.
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "citybuddy",
		Subsystem: "orchestrator",
		Name:      "requests_total",
		Help:      "Total number of requests processed by the orchestrator, labeled by intent and result.",
	}, []string{"intent", "result"})

	// LLMCallSeconds observes remote generation service latency.
	LLMCallSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "citybuddy",
		Subsystem: "llm",
		Name:      "call_duration_seconds",
		Help:      "Latency of remote generation service calls, labeled by provider and call kind.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider", "kind"})

	// GeocodeFailuresTotal counts reverse-geocoding calls that produced no area.
	GeocodeFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "citybuddy",
		Subsystem: "geocode",
		Name:      "failures_total",
		Help:      "Total number of reverse-geocoding lookups that returned no area name.",
	})

	// RosterMissesTotal counts lookups that matched no official.
	RosterMissesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "citybuddy",
		Subsystem: "roster",
		Name:      "misses_total",
		Help:      "Total number of roster lookups that fell back to the departmental helpline, labeled by category.",
	}, []string{"category"})
)

// Register registers all metrics with the default registry. Safe to call
// more than once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			RequestsTotal,
			LLMCallSeconds,
			GeocodeFailuresTotal,
			RosterMissesTotal,
		)
	})
}
