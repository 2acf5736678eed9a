// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus instruments for allocations, batches,
// and HTTP traffic.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AllocationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fairseats_allocations_total",
		Help: "Allocation units computed, by outcome kind (ok or error kind)",
	}, []string{"outcome"})
	AllocationDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fairseats_allocation_duration_ms",
		Help:    "Time to allocate and evaluate one unit in milliseconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 50, 100},
	})
	BatchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fairseats_batches_total",
		Help: "Total batches run",
	})
	BatchFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fairseats_batch_unit_failures_total",
		Help: "Batch units that failed or were skipped",
	})
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fairseats_http_requests_total",
		Help: "HTTP requests by method and status code",
	}, []string{"method", "status"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fairseats_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"method"})
)

func init() {
	prometheus.MustRegister(AllocationsTotal)
	prometheus.MustRegister(AllocationDurationMs)
	prometheus.MustRegister(BatchesTotal)
	prometheus.MustRegister(BatchFailuresTotal)
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
}

// Handler serves the default registry at /metrics
func Handler() http.Handler { return promhttp.Handler() }
