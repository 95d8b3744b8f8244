package feedback

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// cacheLookups counts cache lookups by outcome, including those a Memo
// reports on Merge.
// Labels: result (hit, miss)
var cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "wordle",
	Subsystem: "feedback",
	Name:      "cache_lookups_total",
	Help:      "Feedback cache lookups by result",
}, []string{"result"})

var (
	cacheHits   = cacheLookups.WithLabelValues("hit")
	cacheMisses = cacheLookups.WithLabelValues("miss")
)
