package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "usermanager"

func NewCounter() *prometheus.CounterVec {
	return promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "general_counters",
		},
		[]string{"result"})
}

// NewHashDuration tracks how long a single bcrypt hash takes. At cost 10 this
// is tens of milliseconds per write, so buckets start at 5ms.
func NewHashDuration() prometheus.Histogram {
	return promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "password_hash_duration_seconds",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		})
}
