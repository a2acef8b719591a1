package filter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// identifiersTotal counts normalized facts.
	//
	// Labels:
	//   - kind: "namespace", "superglobal", "include"
	//   - outcome: "kept", "reserved", "min-depth", "excluded", "slice", "empty", "unresolved"
	identifiersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "phpda",
			Subsystem: "filter",
			Name:      "identifiers_total",
			Help:      "Total number of normalized identifiers by outcome.",
		},
		[]string{"kind", "outcome"},
	)
)

func recordOutcome(item *Normalized) {
	outcome := "kept"
	switch {
	case item.Reason != ReasonNone:
		outcome = string(item.Reason)
	case item.Key == "":
		outcome = "unresolved"
	}
	identifiersTotal.WithLabelValues(string(item.Fact.Kind), outcome).Inc()
}
