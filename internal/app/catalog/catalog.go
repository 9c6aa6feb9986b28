// Package catalog holds the static game data: base rewards per folder
// type, importance multipliers, house/work-room/pet/cover/guardian-item
// bonuses, and the XP→level curve. All tables are immutable and all
// lookups are total — unknown ids resolve to neutral values, never errors,
// since ownership and validity are enforced by the inventory layer.
package catalog

import "github.com/meu-mundo/meumundo/internal/domain"

// Starting selections, used on first profile access and on death reset.
const (
	DefaultHouseID    = "casa_inicial"
	DefaultWorkRoomID = "escritorio_simples"
	DefaultCoverID    = "default"
	DefaultAvatarID   = "aprendiz"
)

// Starting profile values.
const (
	StartingCoins  = 200
	StartingHealth = 100
)

// ─── Base Rewards ───────────────────────────────────────────────────────────

var folderRewards = map[domain.ActivityType]domain.Reward{
	domain.ActivityTrabalho: {Coins: 80, XP: 30, Health: -10, Stress: 15},
	domain.ActivityEstudos:  {Coins: 50, XP: 40, Health: -5, Stress: 10},
	domain.ActivityLazer:    {Coins: 20, XP: 15, Health: 10, Stress: -20},
	domain.ActivityTarefas:  {Coins: 40, XP: 20, Health: -5, Stress: 5},
}

// RewardForFolderType returns the base reward for a completed task.
// Unknown or empty types fall back to the trabalho baseline.
func RewardForFolderType(t domain.ActivityType) domain.Reward {
	if r, ok := folderRewards[t]; ok {
		return r
	}
	return folderRewards[domain.ActivityTrabalho]
}

// ─── Importance ─────────────────────────────────────────────────────────────

var importanceMultipliers = map[domain.Importance]float64{
	domain.ImportanceSimple:    0.7,
	domain.ImportanceMedium:    1.0,
	domain.ImportanceImportant: 1.5,
}

// ImportanceMultiplier returns the reward weight for an event importance.
// Unknown or empty importance falls back to medium (1.0).
func ImportanceMultiplier(imp domain.Importance) float64 {
	if m, ok := importanceMultipliers[imp]; ok {
		return m
	}
	return importanceMultipliers[domain.ImportanceMedium]
}

// ─── Houses and Work Rooms ──────────────────────────────────────────────────

// HouseBonusDef is the additive bonus a house grants to the relax action.
type HouseBonusDef struct {
	RelaxExtra  int `json:"relax_extra"`  // added to the base stress reduction
	HealthBonus int `json:"health_bonus"` // flat health gain on relax
}

var houseBonuses = map[string]HouseBonusDef{
	DefaultHouseID:  {RelaxExtra: 0, HealthBonus: 0},
	"casa_jardim":   {RelaxExtra: 5, HealthBonus: 2},
	"casa_lago":     {RelaxExtra: 8, HealthBonus: 3},
	"casa_montanha": {RelaxExtra: 12, HealthBonus: 5},
}

// HouseBonus returns the relax bonus for a house. Unknown id → zero bonus.
func HouseBonus(houseID string) HouseBonusDef {
	return houseBonuses[houseID]
}

// WorkRoomBonusDef is the additive bonus a work room grants to the work
// bonus action. WorkHealthExtra is negative for rooms that soften the
// health cost.
type WorkRoomBonusDef struct {
	WorkCoinsExtra  int `json:"work_coins_extra"`
	WorkHealthExtra int `json:"work_health_extra"`
}

var workRoomBonuses = map[string]WorkRoomBonusDef{
	DefaultWorkRoomID:    {WorkCoinsExtra: 0, WorkHealthExtra: 0},
	"escritorio_moderno": {WorkCoinsExtra: 15, WorkHealthExtra: -2},
	"estudio_criativo":   {WorkCoinsExtra: 25, WorkHealthExtra: -4},
	"cobertura":          {WorkCoinsExtra: 40, WorkHealthExtra: -6},
}

// WorkRoomBonus returns the work bonus for a room. Unknown id → zero bonus.
func WorkRoomBonus(roomID string) WorkRoomBonusDef {
	return workRoomBonuses[roomID]
}

// ─── Pets ───────────────────────────────────────────────────────────────────

var petStressReduction = map[string]int{
	"gato":      10,
	"cachorro":  15,
	"coelho":    12,
	"papagaio":  8,
	"capivara":  20,
}

// PetStressReductionPercent returns the pet's stress reduction in
// [0,100]. Unknown or empty id → 0.
func PetStressReductionPercent(petID string) int {
	return petStressReduction[petID]
}

// ─── Covers and Guardian Items ──────────────────────────────────────────────

// ItemBonus is the percent-based bonus shape shared by covers and
// guardian (antistress) items.
type ItemBonus struct {
	XPPercent           int `json:"xp_percent"`
	CoinsPercent        int `json:"coins_percent"`
	StressReducePercent int `json:"stress_reduce_percent"`
	HealthExtra         int `json:"health_extra"`
}

var coverBonuses = map[string]ItemBonus{
	DefaultCoverID:   {},
	"capa_estelar":   {XPPercent: 10, CoinsPercent: 0, StressReducePercent: 0, HealthExtra: 0},
	"capa_dourada":   {XPPercent: 5, CoinsPercent: 15, StressReducePercent: 0, HealthExtra: 0},
	"capa_serena":    {XPPercent: 0, CoinsPercent: 0, StressReducePercent: 20, HealthExtra: 2},
	"capa_lendaria":  {XPPercent: 15, CoinsPercent: 15, StressReducePercent: 10, HealthExtra: 3},
}

// CoverBonus returns the bonus for an equipped cover. Unknown or empty
// id → all-zero bonus.
func CoverBonus(coverID string) ItemBonus {
	return coverBonuses[coverID]
}

var guardianBonuses = map[string]ItemBonus{
	"amuleto_calma":    {XPPercent: 0, CoinsPercent: 0, StressReducePercent: 25, HealthExtra: 2},
	"totem_sabedoria":  {XPPercent: 12, CoinsPercent: 0, StressReducePercent: 5, HealthExtra: 0},
	"moeda_da_sorte":   {XPPercent: 0, CoinsPercent: 20, StressReducePercent: 0, HealthExtra: 0},
	"cristal_guardiao": {XPPercent: 8, CoinsPercent: 8, StressReducePercent: 15, HealthExtra: 1},
}

// GuardianItemBonus returns the bonus for an equipped guardian item.
// Unknown or empty id → all-zero bonus.
func GuardianItemBonus(itemID string) ItemBonus {
	return guardianBonuses[itemID]
}
