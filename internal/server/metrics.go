package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusOK         = "ok"
	statusBadRequest = "bad_request"
	statusError      = "error"
)

// Metrics are the service's Prometheus collectors.
type Metrics struct {
	RankRequests *prometheus.CounterVec
	RankDuration prometheus.Histogram
	CatalogJobs  prometheus.Gauge
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RankRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "career_fit_rank_requests_total",
				Help: "Total number of rank requests by outcome",
			},
			[]string{"status"},
		),
		RankDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "career_fit_rank_duration_seconds",
				Help:    "Duration of rank requests in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
		),
		CatalogJobs: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "career_fit_catalog_jobs",
				Help: "Number of jobs in the loaded catalog",
			},
		),
	}
}
