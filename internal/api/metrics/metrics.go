// Package metrics defines the custom Prometheus metrics of the intranet API.
// Metrics register with the default registry on import and are exposed by the
// /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "intranet"

// ── Mural metrics ─────────────────────────────────────────────────────────────

// PostsCreatedTotal counts posts created through the API.
// Label:
//   - status: "published" or "scheduled"
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of mural posts created, by publication status.",
	},
	[]string{"status"},
)

// PostsIdempotentReplaysTotal counts create requests answered from an earlier
// Idempotency-Key.
var PostsIdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_idempotent_replays_total",
		Help:      "Total number of post creations replayed from an idempotency key.",
	},
)

// FeedRequestsTotal counts feed reads.
// Label:
//   - mode: "all" or "important"
var FeedRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_requests_total",
		Help:      "Total number of mural feed requests, by feed mode.",
	},
	[]string{"mode"},
)

// ── Scheduler metrics ─────────────────────────────────────────────────────────

// ScheduledPostsPublishedTotal counts scheduled posts converged to published
// by the background sweep.
var ScheduledPostsPublishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scheduled_posts_published_total",
		Help:      "Total number of scheduled posts published by the sweeper.",
	},
)

// PublishSweepDuration measures one sweep over the post store.
// Label:
//   - result: "ok" or "error"
var PublishSweepDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "publish_sweep_duration_seconds",
		Help:      "Duration of a scheduled-post publication sweep.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
