// Package metrics: Prometheus-метрики jamjournal.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jamjournal",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jamjournal",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	VisitsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jamjournal",
			Name:      "visits_recorded_total",
			Help:      "Visit ledger appends by outcome",
		},
		[]string{"status"},
	)

	AnalyticsDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "jamjournal",
			Name:      "analytics_overview_duration_seconds",
			Help:      "Time spent building the analytics overview",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	LookupCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jamjournal",
			Name:      "lookup_cache_total",
			Help:      "Geo/device lookup cache results",
		},
		[]string{"lookup", "result"},
	)

	EmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jamjournal",
			Name:      "emails_sent_total",
			Help:      "Notification emails by outcome",
		},
		[]string{"status"},
	)
)

func RecordRequest(method, route, status string, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

func RecordVisit(ok bool) {
	VisitsRecorded.WithLabelValues(outcome(ok)).Inc()
}

func RecordLookup(lookup string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	LookupCacheHits.WithLabelValues(lookup, result).Inc()
}

func RecordEmail(ok bool) {
	EmailsSent.WithLabelValues(outcome(ok)).Inc()
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}
