// Package metrics provides Prometheus metrics for the WordPress MCP server.
// It tracks tool call counts, latencies, cache performance, and site API
// error rates.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "wordpress_mcp"
)

var (
	// RequestsTotal counts total MCP tool calls by tool name and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures request latency distribution
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Request latency distribution by tool",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing requests
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of requests currently being processed",
	}, []string{"tool"})

	// CacheHits counts content-type directory cache hits by tier
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "cache_hits_total",
		Help:      "Content-type directory cache hits by tier (memory, disk)",
	}, []string{"tier"})

	// CacheMisses counts directory cache misses that went to the network
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "cache_misses_total",
		Help:      "Content-type directory cache misses",
	})

	// DirectoryRefreshes counts directory fetches by site and outcome
	DirectoryRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "directory_refreshes_total",
		Help:      "Content-type directory fetches by site and status",
	}, []string{"site", "status"})

	// SiteAPILatency measures WordPress REST API call latency by site and method
	SiteAPILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "site_api_latency_seconds",
		Help:      "WordPress REST API call latency by site and method",
		Buckets:   prometheus.DefBuckets,
	}, []string{"site", "method"})

	// SiteAPIRequestsTotal counts WordPress REST API requests
	SiteAPIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "site_api_requests_total",
		Help:      "Total WordPress REST API requests by site, method and status",
	}, []string{"site", "method", "status"})

	// SiteAPIRetries counts API request retries
	SiteAPIRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "site_api_retries_total",
		Help:      "WordPress REST API retry count by site",
	}, []string{"site"})

	// CircuitBreakerOpens counts circuit breaker trips by site
	CircuitBreakerOpens = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "circuit_breaker_opens_total",
		Help:      "Circuit breaker trips by site",
	}, []string{"site"})

	// SlugSearches counts cross-type slug searches by outcome
	SlugSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "slug_searches_total",
		Help:      "Cross-type slug searches by outcome (found, not_found, error)",
	}, []string{"outcome"})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})
)

// RecordRequest records a completed request with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	RequestsTotal.WithLabelValues(tool, status).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordAPICall records a WordPress REST API call
func RecordAPICall(site, method string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	SiteAPIRequestsTotal.WithLabelValues(site, method, status).Inc()
	SiteAPILatency.WithLabelValues(site, method).Observe(duration)
}

// RecordCacheAccess records a directory cache hit (by tier) or miss
func RecordCacheAccess(tier string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(tier).Inc()
	} else {
		CacheMisses.Inc()
	}
}

// RecordDirectoryRefresh records a directory fetch outcome
func RecordDirectoryRefresh(site string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	DirectoryRefreshes.WithLabelValues(site, status).Inc()
}
