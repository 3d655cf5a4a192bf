package matching

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_searches_total",
			Help: "Total number of match searches",
		},
		[]string{"outcome"},
	)

	candidatesScanned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_candidates_scanned_total",
			Help: "Total candidates considered across all searches",
		},
	)

	matchesReturned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_matches_returned_total",
			Help: "Total matches returned to requesters",
		},
	)

	compatibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_compatibility_scores",
			Help:    "Distribution of computed compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	searchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "matching_search_duration_seconds",
			Help: "Wall-clock time of the filter/score/rank pipeline",
		},
	)
)

// RecordCompatibilityScore observes one computed pair score.
func RecordCompatibilityScore(score int) {
	compatibilityScores.Observe(float64(score))
}

// RecordSearchOutcome counts a finished search by outcome label.
func RecordSearchOutcome(outcome string) {
	searchesTotal.WithLabelValues(outcome).Inc()
}

// SearchTimer measures one pipeline run.
type SearchTimer struct {
	start time.Time
}

// StartSearchTimer begins timing a pipeline run.
func StartSearchTimer() *SearchTimer {
	return &SearchTimer{start: time.Now()}
}

// Done records pool size, result size, and elapsed time.
func (t *SearchTimer) Done(poolSize, returned int) {
	candidatesScanned.Add(float64(poolSize))
	matchesReturned.Add(float64(returned))
	searchDuration.Observe(time.Since(t.start).Seconds())
}
