package store

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	corruptionPurgedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: "store",
			Name:      "corruption_purged_total",
			Help:      "Storage keys purged after failing corruption checks, by key and reason.",
		},
		[]string{"key", "reason"},
	)
	persistFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: "store",
			Name:      "persist_failures_total",
			Help:      "Write-behind persistence failures, by key. Failures are logged and swallowed; in-memory state stays authoritative.",
		},
		[]string{"key"},
	)
	fullResetsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Subsystem: "store",
			Name:      "full_resets_total",
			Help:      "Times the store fell back to wiping all entity keys after an unrecoverable load failure.",
		},
	)
)

func init() {
	prometheus.MustRegister(corruptionPurgedTotal, persistFailuresTotal, fullResetsTotal)
}
