package analyzer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/viant/phpda/analyzer/usage"
	"time"
)

const tracerName = "phpda.analyzer"

var (
	// unitsTotal counts analyzed units.
	//
	// Labels:
	//   - status: "ok", "parse_error", "canceled"
	unitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "phpda",
			Subsystem: "analyzer",
			Name:      "units_total",
			Help:      "Total number of analyzed PHP units.",
		},
		[]string{"status"},
	)

	// factsTotal counts collected usage facts.
	//
	// Labels:
	//   - kind: "namespace", "superglobal", "include"
	factsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "phpda",
			Subsystem: "analyzer",
			Name:      "facts_total",
			Help:      "Total number of collected usage facts.",
		},
		[]string{"kind"},
	)

	analyzeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "phpda",
			Subsystem: "analyzer",
			Name:      "analyze_duration_seconds",
			Help:      "Duration of parsing and traversing a single unit.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)
)

func recordUnit(status string, duration time.Duration, facts []*usage.Fact) {
	unitsTotal.WithLabelValues(status).Inc()
	analyzeDuration.Observe(duration.Seconds())
	for _, fact := range facts {
		factsTotal.WithLabelValues(string(fact.Kind)).Inc()
	}
}
