// Package metrics provides Prometheus metrics for the progression
// engine: task completions, reward totals, deaths, level-ups, cooldown
// rejections, and badge grants.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Tasks ──────────────────────────────────────────────────────────────────

// TasksCompleted tracks completed tasks by folder type.
var TasksCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "meumundo",
	Name:      "tasks_completed_total",
	Help:      "Total completed tasks.",
}, []string{"type"})

// CoinsGranted tracks positive coin rewards applied to profiles.
var CoinsGranted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "meumundo",
	Name:      "coins_granted_total",
	Help:      "Total coins granted by completed tasks and work bonuses.",
})

// XPGranted tracks XP applied to profiles.
var XPGranted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "meumundo",
	Name:      "xp_granted_total",
	Help:      "Total experience granted.",
})

// ─── Progression ────────────────────────────────────────────────────────────

// LevelUps tracks level-up events.
var LevelUps = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "meumundo",
	Name:      "level_ups_total",
	Help:      "Total level-up events.",
})

// Deaths tracks death-reset events.
var Deaths = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "meumundo",
	Name:      "deaths_total",
	Help:      "Total death resets (health reached zero).",
})

// ─── Actions ────────────────────────────────────────────────────────────────

// CooldownRejections tracks relax/work-bonus attempts inside the window.
var CooldownRejections = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "meumundo",
	Name:      "cooldown_rejections_total",
	Help:      "Actions rejected by the 3-hour cooldown.",
}, []string{"action"})

// BadgesGranted tracks badge grants.
var BadgesGranted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "meumundo",
	Name:      "badges_granted_total",
	Help:      "Total badges granted.",
})
