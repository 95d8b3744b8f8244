package solver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// rankDuration measures one full Rank call, fan-out through sort.
	rankDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "wordle",
		Subsystem: "solver",
		Name:      "rank_duration_seconds",
		Help:      "Time to score and sort a guess pool",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	})

	guessesScored = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wordle",
		Subsystem: "solver",
		Name:      "guesses_scored_total",
		Help:      "Total guesses scored by the ranker",
	})

	// sessionOutcomes counts sessions reaching a terminal state.
	// Labels: status (solved, contradiction)
	sessionOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wordle",
		Subsystem: "solver",
		Name:      "session_outcomes_total",
		Help:      "Sessions that ended, by final status",
	}, []string{"status"})
)
