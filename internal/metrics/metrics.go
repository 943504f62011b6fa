// Package metrics exposes Prometheus metrics for the raidsync service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "raidsync"

var (
	// Lock lifecycle
	locksAcquired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "locks_acquired_total",
		Help:      "Draft locks newly acquired.",
	})
	locksExtended = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "locks_extended_total",
		Help:      "Draft lock renewals by the current holder.",
	})
	lockConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lock_conflicts_total",
		Help:      "Acquire attempts rejected because another leader holds the lock.",
	})
	locksReleased = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "locks_released_total",
		Help:      "Draft locks explicitly released.",
	})
	locksExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "locks_expired_total",
		Help:      "Draft locks evicted by the expiry sweeper.",
	})

	// Roster mutations
	assignments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roster_mutations_total",
		Help:      "Roster assign/unassign operations by outcome.",
	}, []string{"op", "outcome"})

	// Change feed
	feedPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_notifications_total",
		Help:      "Change feed notifications published, by kind.",
	}, []string{"kind"})
	feedDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_dropped_total",
		Help:      "Notifications dropped because a subscriber buffer was full.",
	})
	feedSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "feed_subscribers",
		Help:      "Currently connected change feed subscribers.",
	})

	// HTTP
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint and status code.",
	}, []string{"endpoint", "status"})
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by endpoint.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})
)

func RecordLockAcquired() { locksAcquired.Inc() }
func RecordLockExtended() { locksExtended.Inc() }
func RecordLockConflict() { lockConflicts.Inc() }

// RecordLocksReleased counts n explicit releases.
func RecordLocksReleased(n int) { locksReleased.Add(float64(n)) }

// RecordLocksExpired counts n sweeper evictions.
func RecordLocksExpired(n int) { locksExpired.Add(float64(n)) }

// RecordRosterMutation counts one assign/unassign by outcome
// ("ok", "conflict", "bad_request", "not_found", "error").
func RecordRosterMutation(op, outcome string) {
	assignments.WithLabelValues(op, outcome).Inc()
}

func RecordFeedPublished(kind string) { feedPublished.WithLabelValues(kind).Inc() }
func RecordFeedDropped()              { feedDropped.Inc() }
func AddFeedSubscribers(delta int)    { feedSubscribers.Add(float64(delta)) }

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(endpoint, status string, elapsed time.Duration) {
	httpRequests.WithLabelValues(endpoint, status).Inc()
	httpDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
