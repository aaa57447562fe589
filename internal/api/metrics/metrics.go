// Package metrics defines and registers the custom Prometheus collectors of
// the social API. It is the single source of truth for metric names, labels,
// and help strings. Collectors register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "social"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthFailuresTotal counts requests rejected by the authorization gate.
// Label:
//   - kind: "missing", "invalid_signature", "expired" or "malformed"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the authorization gate.",
	},
	[]string{"kind"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// PostsCreatedTotal counts newly created posts.
var PostsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created.",
	},
)

// LikesToggledTotal counts like toggles.
// Label:
//   - action: "like" or "unlike"
var LikesToggledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "likes_toggled_total",
		Help:      "Total number of like toggles, by resulting action.",
	},
	[]string{"action"},
)

// CommentsTotal counts comment mutations.
// Label:
//   - action: "add", "update" or "delete"
var CommentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_total",
		Help:      "Total number of comment mutations, by action.",
	},
	[]string{"action"},
)

// OwnershipDenialsTotal counts mutations refused because the caller does not
// own the post or comment collection.
// Label:
//   - resource: "post" or "comment"
var OwnershipDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ownership_denials_total",
		Help:      "Total number of mutations refused by an ownership check.",
	},
	[]string{"resource"},
)

// ── Profile metrics ───────────────────────────────────────────────────────────

// ProfileCacheTotal counts profile cache lookups.
// Label:
//   - result: "hit", "miss" or "fenced" (a fill dropped because the profile
//     was invalidated after it was read)
var ProfileCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_cache_total",
		Help:      "Total number of profile cache lookups, labelled by result (hit/miss/fenced).",
	},
	[]string{"result"},
)

// CascadeDeletesTotal counts account deletions.
// Label:
//   - outcome: "ok" or the step that failed ("posts", "profile", "user")
var CascadeDeletesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cascade_deletes_total",
		Help:      "Total number of account cascade deletions, by outcome.",
	},
	[]string{"outcome"},
)

// ── Mutation queue metrics ────────────────────────────────────────────────────

// MutationQueueDepth tracks the number of document mutations waiting in each
// serializer worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MutationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mutation_queue_depth",
		Help:      "Current number of document mutations pending in each serializer worker.",
	},
	[]string{"worker_id"},
)

// MutationDuration measures how long a serialized read-modify-write takes,
// from dequeue to completion.
var MutationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "mutation_duration_seconds",
		Help:      "Duration of serialized document mutations.",
		Buckets:   prometheus.DefBuckets,
	},
)
