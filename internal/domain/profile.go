// Package domain holds the typed records of the Meu Mundo progression
// engine: the player profile, the append-only activity log, badges, and
// the result shapes returned by the state machine.
package domain

import "time"

// ─── Profile ────────────────────────────────────────────────────────────────

// Profile is the per-user progression state. It is mutated only through
// the progression state machine; every write clamps Health to [0,100] and
// Stress to [0,120], and Level is always derived from Experience.
type Profile struct {
	UserID            string     `json:"user_id"`
	Coins             int        `json:"coins"`
	Level             int        `json:"level"`
	Experience        int        `json:"experience"`
	Health            int        `json:"health"`
	Stress            int        `json:"stress"`
	PetID             string     `json:"pet_id"`             // "" = no pet
	CoverID           string     `json:"cover_id"`           // "default" when unset
	AntistressItemID  string     `json:"antistress_item_id"` // guardian item, "" = none
	CurrentHouseID    string     `json:"current_house_id"`
	CurrentWorkRoomID string     `json:"current_work_room_id"`
	AvatarID          string     `json:"avatar_id"`
	RoomLayout        string     `json:"room_layout,omitempty"` // opaque UI blob, "" = none
	LastRelaxAt       *time.Time `json:"last_relax_at,omitempty"`
	LastWorkBonusAt   *time.Time `json:"last_work_bonus_at,omitempty"`
	Version           int64      `json:"-"` // optimistic concurrency token
}

// Burnout reports whether the profile is in the burnout band (stress ≥ 100),
// which suppresses work/study rewards entirely.
func (p Profile) Burnout() bool { return p.Stress >= 100 }

// Sick reports whether the profile is in the sick band: low health or
// high stress. Sickness halves work rewards and worsens their costs.
func (p Profile) Sick() bool { return p.Health <= 50 || p.Stress > 75 }

// ─── Reward ─────────────────────────────────────────────────────────────────

// Reward is the delta a completed task applies to a profile.
// Health and Stress are signed changes, not absolute values.
type Reward struct {
	Coins  int `json:"coins"`
	XP     int `json:"xp"`
	Health int `json:"health_change"`
	Stress int `json:"stress_change"`
}

// ─── Action results ─────────────────────────────────────────────────────────

// CompleteTaskResult reports the outcome of a task completion.
type CompleteTaskResult struct {
	Reward        Reward  `json:"reward"`
	XPEarned      int     `json:"xp_earned"`
	LevelUp       bool    `json:"level_up"`
	PreviousLevel int     `json:"previous_level"`
	NewLevel      int     `json:"new_level"`
	Died          bool    `json:"died"`
	Profile       Profile `json:"profile"`
}

// RelaxResult reports the outcome of the relax action.
// AlreadyUsed is the expected cooldown rejection, not an error.
type RelaxResult struct {
	AlreadyUsed     bool      `json:"already_used"`
	NextAvailableAt time.Time `json:"next_available_at,omitempty"`
	Profile         Profile   `json:"profile"`
}

// WorkBonusResult reports the outcome of the work bonus action.
type WorkBonusResult struct {
	AlreadyUsed     bool      `json:"already_used"`
	NextAvailableAt time.Time `json:"next_available_at,omitempty"`
	XPEarned        int       `json:"xp_earned"`
	LevelUp         bool      `json:"level_up"`
	PreviousLevel   int       `json:"previous_level"`
	NewLevel        int       `json:"new_level"`
	Died            bool      `json:"died"`
	Profile         Profile   `json:"profile"`
}
