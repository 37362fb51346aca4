// internal/metrics/metrics.go
//
// Prometheus collectors for the solver and the benchmark.
// Registered on the default registry; the HTTP server exposes them on /metrics.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Guess phases.
const (
	PhaseStart     = "start"
	PhaseConverged = "converged"
	PhaseSearch    = "search"
)

// Benchmark outcomes.
const (
	OutcomeSolved = "solved"
	OutcomeFailed = "failed"
)

var (
	// Guesses counts guesses returned by solvers, by how they were chosen.
	Guesses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordle_solver_guesses_total",
		Help: "Guesses returned by the solver, by phase",
	}, []string{"phase"})

	// SearchDuration observes the wall time of one exhaustive search round.
	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wordle_solver_search_duration_seconds",
		Help:    "Duration of one exhaustive guess search",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
	})

	// ProbeEvaluations counts (probe, candidate) simulations.
	ProbeEvaluations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordle_solver_probe_evaluations_total",
		Help: "Simulated clue evaluations performed by the guess search",
	})

	// BenchmarkSolves counts benchmark games by outcome.
	BenchmarkSolves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordle_benchmark_solves_total",
		Help: "Benchmark games played, by outcome",
	}, []string{"outcome"})
)
