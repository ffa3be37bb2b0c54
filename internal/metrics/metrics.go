package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPAttemptsTotal tracks every outbound attempt by method and outcome
	HTTPAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chargewindow_http_attempts_total",
			Help: "Total number of outbound HTTP attempts",
		},
		[]string{"method", "outcome"},
	)

	// HTTPRetriesTotal tracks retries scheduled after a transient failure
	HTTPRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chargewindow_http_retries_total",
			Help: "Total number of retries after transient failures",
		},
		[]string{"method", "reason"},
	)

	// HTTPRequestsTotal tracks logical requests by final result
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chargewindow_http_requests_total",
			Help: "Total number of logical requests by final result",
		},
		[]string{"method", "result"},
	)

	// HTTPAttemptLatency tracks the latency of single attempts
	HTTPAttemptLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chargewindow_http_attempt_latency_seconds",
			Help:    "Outbound HTTP attempt latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// DashboardFetchesTotal tracks dashboard loads by view and result
	DashboardFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chargewindow_dashboard_fetches_total",
			Help: "Total number of dashboard data fetches",
		},
		[]string{"view", "result"},
	)

	// WindowCleanShare tracks the clean energy share of the last computed window
	WindowCleanShare = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chargewindow_window_clean_share_percent",
			Help: "Clean energy share of the last optimal charging window",
		},
		[]string{"hours"},
	)
)
