// internal/matching/metrics.go

package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	swipesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matching_swipes_total",
		Help: "Number of recorded swipes by decision",
	}, []string{"decision"})

	matchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matching_matches_total",
		Help: "Number of mutual matches formed",
	})

	compatibilityScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "matching_compatibility_score",
		Help:    "Distribution of computed compatibility scores",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})

	discoveryFeedSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "matching_discovery_feed_size",
		Help:    "Number of candidates returned per discovery feed request",
		Buckets: prometheus.LinearBuckets(0, 5, 11),
	})
)
