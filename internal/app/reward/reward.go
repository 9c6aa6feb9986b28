// Package reward computes the reward for a completed task as an ordered
// pipeline of named transformation steps. Each step is a pure function
// Reward -> Reward over a read-only profile and completion context; the
// step order is a contract — several steps compound on the running value
// of earlier ones, so reordering changes totals.
package reward

import (
	"math"
	"time"

	"github.com/meu-mundo/meumundo/internal/app/catalog"
	"github.com/meu-mundo/meumundo/internal/domain"
)

// Context bundles the completion-time inputs that are not part of the
// profile: calendar facts derived from the activity log in the reference
// timezone, and whether a work bonus was already activated today.
type Context struct {
	Today              time.Time // midnight of today in the reference timezone
	WorkBonusUsedToday bool
	LastActivityDate   time.Time // zero if the user has no completed activity
	ActivitiesToday    int       // completed today, before the current one
	ConsecutiveDays    int       // prior-day streak, excluding today
}

// Step is one named stage of the pipeline.
type Step struct {
	Name  string
	Apply func(domain.Reward, domain.Profile, domain.ActivityType, Context) domain.Reward
}

// Steps returns the pipeline stages 2–10 in their fixed order. Stage 1
// (base reward × importance) seeds the running value in Compute.
func Steps() []Step {
	return []Step{
		{"stress_suppression", stepStressSuppression},
		{"work_bonus_today", stepWorkBonusToday},
		{"pet_bonus", stepPetBonus},
		{"cover_bonus", stepCoverBonus},
		{"guardian_bonus", stepGuardianBonus},
		{"sickness_penalty", stepSicknessPenalty},
		{"work_tax", stepWorkTax},
		{"catch_up", stepCatchUp},
		{"momentum", stepMomentum},
	}
}

// Compute applies the full pipeline and returns the final deltas.
func Compute(p domain.Profile, t domain.ActivityType, imp domain.Importance, ctx Context) domain.Reward {
	r := baseReward(t, imp)
	for _, step := range Steps() {
		r = step.Apply(r, p, t, ctx)
	}
	return r
}

// baseReward is stage 1: folder-type base × importance, rounded.
func baseReward(t domain.ActivityType, imp domain.Importance) domain.Reward {
	base := catalog.RewardForFolderType(t)
	m := catalog.ImportanceMultiplier(imp)
	return domain.Reward{
		Coins:  roundMul(base.Coins, m),
		XP:     roundMul(base.XP, m),
		Health: roundMul(base.Health, m),
		Stress: roundMul(base.Stress, m),
	}
}

// stepStressSuppression (stage 2): burnout zeroes coins and XP for work
// and study tasks; elevated stress shrinks work XP in two bands.
func stepStressSuppression(r domain.Reward, p domain.Profile, t domain.ActivityType, _ Context) domain.Reward {
	if t != domain.ActivityTrabalho && t != domain.ActivityEstudos {
		return r
	}
	if p.Stress >= 100 {
		r.XP = 0
		r.Coins = 0
		return r
	}
	if t == domain.ActivityTrabalho {
		switch {
		case p.Stress >= 60:
			r.XP = floorMul(r.XP, 0.3)
		case p.Stress >= 30:
			r.XP = floorMul(r.XP, 0.6)
		}
	}
	return r
}

// stepWorkBonusToday (stage 3): a work bonus already used today boosts
// coins and halves the stress cost of further work tasks.
func stepWorkBonusToday(r domain.Reward, _ domain.Profile, t domain.ActivityType, ctx Context) domain.Reward {
	if t != domain.ActivityTrabalho || !ctx.WorkBonusUsedToday {
		return r
	}
	r.Coins = floorMul(r.Coins, 1.5)
	r.Stress = roundMul(r.Stress, 0.5)
	return r
}

// stepPetBonus (stage 4): an equipped pet adds 10% coins and absorbs part
// of the stress cost.
func stepPetBonus(r domain.Reward, p domain.Profile, _ domain.ActivityType, _ Context) domain.Reward {
	if p.PetID == "" {
		return r
	}
	if r.Coins > 0 {
		r.Coins = floorMul(r.Coins, 1.1)
	}
	if r.Stress > 0 {
		pct := catalog.PetStressReductionPercent(p.PetID)
		r.Stress = maxInt(0, floorMul(r.Stress, 1-float64(pct)/100))
	}
	return r
}

// stepCoverBonus (stage 5): percent boosts from the equipped cover plus a
// flat health extra. The stress reduction rounds, unlike the pet's floor.
func stepCoverBonus(r domain.Reward, p domain.Profile, _ domain.ActivityType, _ Context) domain.Reward {
	b := catalog.CoverBonus(p.CoverID)
	return applyItemBonus(r, b, true)
}

// stepGuardianBonus (stage 6): the guardian item applies the same three
// percent adjustments as the cover, on the then-current running value, so
// the two stack multiplicatively.
func stepGuardianBonus(r domain.Reward, p domain.Profile, _ domain.ActivityType, _ Context) domain.Reward {
	if p.AntistressItemID == "" {
		return r
	}
	b := catalog.GuardianItemBonus(p.AntistressItemID)
	return applyItemBonus(r, b, false)
}

// applyItemBonus applies an ItemBonus shape. withHealth distinguishes the
// cover (flat health extra applies) from the guardian item (percent
// adjustments only).
func applyItemBonus(r domain.Reward, b catalog.ItemBonus, withHealth bool) domain.Reward {
	if r.XP > 0 && b.XPPercent != 0 {
		r.XP = floorMul(r.XP, 1+float64(b.XPPercent)/100)
	}
	if r.Coins > 0 && b.CoinsPercent != 0 {
		r.Coins = floorMul(r.Coins, 1+float64(b.CoinsPercent)/100)
	}
	if withHealth {
		r.Health += b.HealthExtra
	}
	if r.Stress > 0 && b.StressReducePercent != 0 {
		r.Stress = maxInt(0, roundMul(r.Stress, 1-float64(b.StressReducePercent)/100))
	}
	return r
}

// stepSicknessPenalty (stage 7): sick profiles earn half from work tasks
// and pay 1.5× the health and stress costs.
func stepSicknessPenalty(r domain.Reward, p domain.Profile, t domain.ActivityType, _ Context) domain.Reward {
	if t != domain.ActivityTrabalho || !p.Sick() {
		return r
	}
	r.Coins = floorMul(r.Coins, 0.5)
	r.XP = floorMul(r.XP, 0.5)
	r.Health = roundMul(r.Health, 1.5)
	r.Stress = roundMul(r.Stress, 1.5)
	return r
}

// stepWorkTax (stage 8): the unconditional ×0.95 tax on work activities.
// Kept separate from the sickness penalty — the two stack by contract.
func stepWorkTax(r domain.Reward, _ domain.Profile, t domain.ActivityType, _ Context) domain.Reward {
	if t != domain.ActivityTrabalho {
		return r
	}
	r.Coins = floorMul(r.Coins, 0.95)
	r.XP = floorMul(r.XP, 0.95)
	if r.Health < 0 {
		r.Health = floorMul(r.Health, 1.05)
	}
	if r.Stress > 0 {
		r.Stress = ceilMul(r.Stress, 1.05)
	}
	return r
}

// stepCatchUp (stage 9): returning after a gap boosts the first two
// activities of the day.
func stepCatchUp(r domain.Reward, _ domain.Profile, _ domain.ActivityType, ctx Context) domain.Reward {
	if ctx.LastActivityDate.IsZero() || ctx.ActivitiesToday >= 2 {
		return r
	}
	gap := daysBetween(ctx.LastActivityDate, ctx.Today)
	if gap < 1 {
		return r
	}
	m := 1.1
	switch {
	case gap >= 3:
		m = 1.3
	case gap >= 2:
		m = 1.2
	}
	r.XP = floorMul(r.XP, m)
	if r.Coins > 0 {
		r.Coins = floorMul(r.Coins, m)
	}
	return r
}

// momentumMultiplier is the shared day-streak / same-day-count table.
func momentumMultiplier(n int) float64 {
	switch {
	case n >= 5:
		return 1.20
	case n == 4:
		return 1.15
	case n == 3:
		return 1.10
	case n == 2:
		return 1.05
	default:
		return 1.0
	}
}

// stepMomentum (stage 10): the day-based streak and the same-day count
// feed the same table; only the larger multiplier applies — they model
// the same momentum and must not stack.
func stepMomentum(r domain.Reward, _ domain.Profile, _ domain.ActivityType, ctx Context) domain.Reward {
	dayMult := momentumMultiplier(ctx.ConsecutiveDays + 1)
	sameDayMult := momentumMultiplier(ctx.ActivitiesToday + 1)
	m := math.Max(dayMult, sameDayMult)
	if m <= 1.0 {
		return r
	}
	r.XP = floorMul(r.XP, m)
	if r.Coins > 0 {
		r.Coins = floorMul(r.Coins, m)
	}
	return r
}

// ─── Numeric helpers ────────────────────────────────────────────────────────
// Floor is toward −∞ throughout: floor(−10.5) = −11, which is what makes
// the work tax hit harder on negative health changes.

func floorMul(v int, m float64) int {
	return int(math.Floor(float64(v) * m))
}

func roundMul(v int, m float64) int {
	return int(math.Round(float64(v) * m))
}

func ceilMul(v int, m float64) int {
	return int(math.Ceil(float64(v) * m))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// daysBetween returns whole calendar days from a to b; both are expected
// to be midnights in the same location.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
