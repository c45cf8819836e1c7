package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// TVmaze API metrics
var (
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showfinder_api_requests_total",
			Help: "Total number of TVmaze API requests by endpoint and outcome.",
		},
		[]string{"endpoint", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "showfinder_api_request_duration_seconds",
			Help:    "Latency of TVmaze API requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// User flow metrics
var (
	FlowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showfinder_flows_total",
			Help: "Total number of search and episode lookup flows by outcome.",
		},
		[]string{"flow", "outcome"},
	)
)

// HTTP ingress metrics
var (
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "showfinder_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		APIRequestsTotal,
		APIRequestDuration,
		FlowsTotal,
		HTTPRequestDuration,
	)
}
