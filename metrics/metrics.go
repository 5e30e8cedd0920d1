package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campus_http_requests_total",
		Help: "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "campus_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	// NewsFetchFailures counts latest-news reads that failed, by consumer ("page" or "api").
	NewsFetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campus_news_fetch_failures_total",
		Help: "Failed latest-news reads by consumer.",
	}, []string{"consumer"})
)
