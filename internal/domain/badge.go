package domain

import "time"

// ─── Badge / Mission Types ──────────────────────────────────────────────────

// BadgeCategory groups badges by theme.
type BadgeCategory string

const (
	CatPrimeirosPassos BadgeCategory = "primeiros_passos"
	CatConstancia      BadgeCategory = "constancia"
	CatRiqueza         BadgeCategory = "riqueza"
	CatPastas          BadgeCategory = "pastas"
	CatAvatares        BadgeCategory = "avatares"
)

// BadgeDef defines a badge's requirement declaratively. The Predicate is
// evaluated against a full UserStats snapshot, never against incremental
// events, so evaluation is idempotent by construction.
type BadgeDef struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	Category BadgeCategory        `json:"category"`
	Icon     string               `json:"icon"`
	// Avatar and Chapter order the storyline missions for display.
	// The evaluator ignores them and checks only the predicate.
	Avatar    string               `json:"avatar,omitempty"`
	Chapter   int                  `json:"chapter,omitempty"`
	Predicate func(UserStats) bool `json:"-"`
}

// EarnedBadge records when a badge was granted.
type EarnedBadge struct {
	ID       string    `json:"id"`
	EarnedAt time.Time `json:"earned_at"`
}

// UserStats is the aggregate snapshot fed to badge predicates. It is
// recomputed from scratch from the activity log on every evaluation.
type UserStats struct {
	TotalCompleted  int                  `json:"total_completed"`
	ActiveDays      int                  `json:"active_days"`
	Level           int                  `json:"level"`
	CoinsEver       int                  `json:"coins_ever"`
	ByType          map[ActivityType]int `json:"by_type"`
	MaxInOneDay     int                  `json:"max_in_one_day"`
	StreakDays      int                  `json:"streak_days"`
	DistinctFolders int                  `json:"distinct_folders"`
	LinkedEvents    int                  `json:"linked_events"`
}

// CountOf returns the completed-task count for one folder type.
func (s UserStats) CountOf(t ActivityType) int {
	if s.ByType == nil {
		return 0
	}
	return s.ByType[t]
}
