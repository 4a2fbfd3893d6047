package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_queries_total",
			Help: "Total number of catalog queries executed",
		},
		[]string{"sort_field"},
	)

	queryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_query_duration_seconds",
			Help:    "Catalog query execution time in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"sort_field"},
	)
)

func observeQuery(sortField string, duration time.Duration) {
	queriesTotal.WithLabelValues(sortField).Inc()
	queryDuration.WithLabelValues(sortField).Observe(duration.Seconds())
}
