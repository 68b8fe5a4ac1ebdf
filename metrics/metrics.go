// Package metrics holds the Prometheus collectors for housing-credit.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PlansTotal counts solve requests by outcome.
var PlansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "housing_credit",
	Subsystem: "plans",
	Name:      "requests_total",
	Help:      "Total plan requests by outcome (found, insufficient_funds, no_viable_scenario, invalid_input, error).",
}, []string{"outcome"})

// CandidatesEvaluated tracks how many grid pairs the solver examined per search.
var CandidatesEvaluated = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "housing_credit",
	Subsystem: "search",
	Name:      "candidates_evaluated",
	Help:      "Number of (savings, term) pairs solved per search.",
	Buckets:   []float64{1, 2, 4, 8, 16, 50, 100, 200, 400, 800},
})

// SolveDuration tracks end-to-end latency of a plan computation.
var SolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "housing_credit",
	Subsystem: "plans",
	Name:      "solve_duration_seconds",
	Help:      "Time spent computing a plan, cache misses only.",
	Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
})

// CacheLookups counts plan cache lookups by result.
var CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "housing_credit",
	Subsystem: "cache",
	Name:      "lookups_total",
	Help:      "Plan cache lookups by result (hit, miss).",
}, []string{"result"})

// RateLimited counts requests rejected by the rate limiter.
var RateLimited = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "housing_credit",
	Subsystem: "http",
	Name:      "rate_limited_total",
	Help:      "Requests rejected with 429 by the rate limiter.",
})
