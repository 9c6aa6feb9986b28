package domain

import "time"

// ─── Activity Types ─────────────────────────────────────────────────────────

// ActivityType mirrors the folder type of the source task. The string
// values are persisted and shared with the UI — do not rename.
type ActivityType string

const (
	ActivityTrabalho ActivityType = "trabalho"
	ActivityEstudos  ActivityType = "estudos"
	ActivityLazer    ActivityType = "lazer"
	ActivityTarefas  ActivityType = "tarefas_pessoais"
)

// AllActivityTypes lists every folder type, in catalog order.
func AllActivityTypes() []ActivityType {
	return []ActivityType{ActivityTrabalho, ActivityEstudos, ActivityLazer, ActivityTarefas}
}

// Importance weights a source event's reward.
type Importance string

const (
	ImportanceSimple    Importance = "simple"
	ImportanceMedium    Importance = "medium"
	ImportanceImportant Importance = "important"
)

// ─── Activity Log ───────────────────────────────────────────────────────────

// Activity is one entry of the append-only activity log. The reward
// fields are frozen at completion time and never recomputed.
type Activity struct {
	ID            string       `json:"id"`
	UserID        string       `json:"user_id"`
	Type          ActivityType `json:"activity_type"`
	FolderID      string       `json:"folder_id,omitempty"`
	ScheduledDate string       `json:"scheduled_date"`           // "2006-01-02"
	ScheduledTime string       `json:"scheduled_time,omitempty"` // "15:04", "" when unset
	HasLink       bool         `json:"has_link"`
	Completed     bool         `json:"completed"`
	CompletedAt   time.Time    `json:"completed_at,omitempty"`
	CoinsEarned   int          `json:"coins_earned"`
	XPEarned      int          `json:"xp_earned"`
	HealthChange  int          `json:"health_change"`
	StressChange  int          `json:"stress_change"`
}

// TaskInput is the inbound payload for a task completion.
type TaskInput struct {
	ScheduledDate string       `json:"scheduled_date"`
	ScheduledTime string       `json:"scheduled_time,omitempty"`
	FolderType    ActivityType `json:"folder_type,omitempty"`      // "" falls back to trabalho
	Importance    Importance   `json:"event_importance,omitempty"` // "" falls back to medium
	FolderID      string       `json:"folder_id,omitempty"`
	HasLink       bool         `json:"has_link,omitempty"`
}
