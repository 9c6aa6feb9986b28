// Package progression owns the profile's coins/level/xp/health/stress
// fields and is the only writer of profile state. It applies reward
// deltas, recomputes level from XP, detects level-up and death, runs the
// death reset, and reconciles badges after non-death completions.
package progression

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meu-mundo/meumundo/internal/app/badges"
	"github.com/meu-mundo/meumundo/internal/app/catalog"
	"github.com/meu-mundo/meumundo/internal/app/history"
	"github.com/meu-mundo/meumundo/internal/app/reward"
	"github.com/meu-mundo/meumundo/internal/domain"
	"github.com/meu-mundo/meumundo/internal/infra/metrics"
	"github.com/meu-mundo/meumundo/internal/infra/sqlite"
)

// ActionCooldown is the rolling window shared by relax and work bonus.
// The two timers are independent; only the duration is common.
const ActionCooldown = 3 * time.Hour

// Fixed relax/work-bonus amounts.
const (
	relaxBaseReduction = 15
	workHealthCost     = 10
	workStressGain     = 15
	workBaseCoins      = 80
	workXP             = 50
)

// Service is the progression state machine.
type Service struct {
	db       *sqlite.DB
	analyzer *history.Analyzer
	badges   *badges.Evaluator
	cooldown time.Duration
}

// New creates a progression service. A nil location selects the
// reference timezone.
func New(db *sqlite.DB, loc *time.Location) *Service {
	analyzer := history.NewAnalyzer(db, loc)
	return &Service{
		db:       db,
		analyzer: analyzer,
		badges:   badges.NewEvaluator(db, analyzer),
		cooldown: ActionCooldown,
	}
}

// SetCooldown overrides the relax/work-bonus cooldown window.
func (s *Service) SetCooldown(d time.Duration) {
	if d > 0 {
		s.cooldown = d
	}
}

// Analyzer exposes the service's history analyzer.
func (s *Service) Analyzer() *history.Analyzer { return s.analyzer }

// Badges exposes the service's badge evaluator.
func (s *Service) Badges() *badges.Evaluator { return s.badges }

// ─── Profile lifecycle ──────────────────────────────────────────────────────

// Profile returns the user's profile, creating it with the fixed
// starting values on first access. Missing profiles are not an error.
func (s *Service) Profile(userID string) (domain.Profile, error) {
	p, err := s.db.GetProfile(userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if p != nil {
		return *p, nil
	}

	fresh := startingProfile(userID)
	if err := s.db.InsertProfile(fresh); err != nil {
		return domain.Profile{}, fmt.Errorf("create profile: %w", err)
	}
	now := time.Now()
	s.db.GrantItem(userID, "house", catalog.DefaultHouseID, now)
	s.db.GrantItem(userID, "work_room", catalog.DefaultWorkRoomID, now)
	fresh.Version = 1
	return fresh, nil
}

func startingProfile(userID string) domain.Profile {
	return domain.Profile{
		UserID:            userID,
		Coins:             catalog.StartingCoins,
		Level:             1,
		Experience:        0,
		Health:            catalog.StartingHealth,
		Stress:            0,
		CoverID:           catalog.DefaultCoverID,
		CurrentHouseID:    catalog.DefaultHouseID,
		CurrentWorkRoomID: catalog.DefaultWorkRoomID,
		AvatarID:          catalog.DefaultAvatarID,
		Version:           1,
	}
}

// ─── Task completion ────────────────────────────────────────────────────────

// CompleteTask applies the full reward pipeline for a completed task.
func (s *Service) CompleteTask(userID, taskID string, input domain.TaskInput) (*domain.CompleteTaskResult, error) {
	return s.CompleteTaskAt(userID, taskID, input, time.Now())
}

// CompleteTaskAt is CompleteTask with an explicit clock, for tests.
func (s *Service) CompleteTaskAt(userID, taskID string, input domain.TaskInput, now time.Time) (*domain.CompleteTaskResult, error) {
	p, err := s.Profile(userID)
	if err != nil {
		return nil, err
	}

	ctx, err := s.buildContext(userID, p, now)
	if err != nil {
		return nil, err
	}

	atype := input.FolderType
	if atype == "" {
		atype = domain.ActivityTrabalho
	}
	imp := input.Importance
	if imp == "" {
		imp = domain.ImportanceMedium
	}

	rw := reward.Compute(p, atype, imp, ctx)

	activity := domain.Activity{
		ID:            uuid.NewString(),
		UserID:        userID,
		Type:          atype,
		FolderID:      input.FolderID,
		ScheduledDate: input.ScheduledDate,
		ScheduledTime: input.ScheduledTime,
		HasLink:       input.HasLink,
		Completed:     true,
		CompletedAt:   now,
		CoinsEarned:   rw.Coins,
		XPEarned:      rw.XP,
		HealthChange:  rw.Health,
		StressChange:  rw.Stress,
	}
	if activity.ScheduledDate == "" {
		activity.ScheduledDate = now.In(s.analyzer.Location()).Format("2006-01-02")
	}

	previousLevel := p.Level
	updated := p
	updated.Coins = maxInt(0, p.Coins+rw.Coins)
	updated.Experience = p.Experience + maxInt(0, rw.XP)
	updated.Health = clamp(p.Health+rw.Health, 0, 100)
	updated.Stress = clamp(p.Stress+rw.Stress, 0, 120)
	updated.Level = catalog.LevelForXP(updated.Experience)

	result := &domain.CompleteTaskResult{
		Reward:        rw,
		XPEarned:      rw.XP,
		PreviousLevel: previousLevel,
	}

	if updated.Health == 0 {
		// Death short-circuits the normal update and badge evaluation.
		dead, err := s.applyDeathReset(p, &activity, now)
		if err != nil {
			return nil, err
		}
		result.Died = true
		result.NewLevel = 1
		result.Profile = dead
		metrics.TasksCompleted.WithLabelValues(string(atype)).Inc()
		metrics.Deaths.Inc()
		return result, nil
	}

	err = s.db.WithTx(func(tx *sqlite.Tx) error {
		if err := tx.InsertActivity(activity); err != nil {
			return fmt.Errorf("insert activity: %w", err)
		}
		if err := tx.UpdateProfileCAS(updated, p.Version); err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	updated.Version = p.Version + 1

	result.NewLevel = updated.Level
	result.LevelUp = updated.Level > previousLevel
	result.Profile = updated

	metrics.TasksCompleted.WithLabelValues(string(atype)).Inc()
	if rw.Coins > 0 {
		metrics.CoinsGranted.Add(float64(rw.Coins))
	}
	if rw.XP > 0 {
		metrics.XPGranted.Add(float64(rw.XP))
	}
	if result.LevelUp {
		metrics.LevelUps.Inc()
	}

	if err := s.EvaluateAndGrantBadgesAt(userID, now); err != nil {
		return nil, fmt.Errorf("badge reconciliation: %w", err)
	}
	return result, nil
}

// buildContext gathers the calendar facts the reward pipeline needs.
func (s *Service) buildContext(userID string, p domain.Profile, now time.Time) (reward.Context, error) {
	loc := s.analyzer.Location()
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	lastDate, err := s.analyzer.LastActivityDate(userID)
	if err != nil {
		return reward.Context{}, fmt.Errorf("last activity date: %w", err)
	}
	countToday, err := s.analyzer.ActivitiesCountToday(userID, now)
	if err != nil {
		return reward.Context{}, fmt.Errorf("activities today: %w", err)
	}
	streak, err := s.analyzer.ConsecutiveDaysStreak(userID, now)
	if err != nil {
		return reward.Context{}, fmt.Errorf("streak: %w", err)
	}

	return reward.Context{
		Today:              today,
		WorkBonusUsedToday: p.LastWorkBonusAt != nil && sameDay(*p.LastWorkBonusAt, now, loc),
		LastActivityDate:   lastDate,
		ActivitiesToday:    countToday,
		ConsecutiveDays:    streak,
	}, nil
}

// ─── Cooldown-gated actions ─────────────────────────────────────────────────

// Relax restores stress and health once per cooldown window.
func (s *Service) Relax(userID string) (*domain.RelaxResult, error) {
	return s.RelaxAt(userID, time.Now())
}

// RelaxAt is Relax with an explicit clock, for tests.
func (s *Service) RelaxAt(userID string, now time.Time) (*domain.RelaxResult, error) {
	p, err := s.Profile(userID)
	if err != nil {
		return nil, err
	}

	if p.LastRelaxAt != nil && now.Sub(*p.LastRelaxAt) < s.cooldown {
		metrics.CooldownRejections.WithLabelValues("relax").Inc()
		return &domain.RelaxResult{
			AlreadyUsed:     true,
			NextAvailableAt: p.LastRelaxAt.Add(s.cooldown),
			Profile:         p,
		}, nil
	}

	house := catalog.HouseBonus(p.CurrentHouseID)
	reduction := relaxBaseReduction + house.RelaxExtra
	if p.PetID != "" {
		reduction = reduction * 12 / 10 // ×1.2, floored
	}

	updated := p
	updated.Stress = clamp(p.Stress-reduction, 0, 120)
	updated.Health = clamp(p.Health+house.HealthBonus, 0, 100)
	relaxedAt := now
	updated.LastRelaxAt = &relaxedAt

	err = s.db.WithTx(func(tx *sqlite.Tx) error {
		return tx.UpdateProfileCAS(updated, p.Version)
	})
	if err != nil {
		return nil, fmt.Errorf("save relax: %w", err)
	}
	updated.Version = p.Version + 1

	return &domain.RelaxResult{Profile: updated}, nil
}

// WorkBonus trades health and stress for coins and a fixed XP payout,
// once per cooldown window. Reaching zero health triggers the death
// reset instead of the normal update.
func (s *Service) WorkBonus(userID string) (*domain.WorkBonusResult, error) {
	return s.WorkBonusAt(userID, time.Now())
}

// WorkBonusAt is WorkBonus with an explicit clock, for tests.
func (s *Service) WorkBonusAt(userID string, now time.Time) (*domain.WorkBonusResult, error) {
	p, err := s.Profile(userID)
	if err != nil {
		return nil, err
	}

	if p.LastWorkBonusAt != nil && now.Sub(*p.LastWorkBonusAt) < s.cooldown {
		metrics.CooldownRejections.WithLabelValues("work_bonus").Inc()
		return &domain.WorkBonusResult{
			AlreadyUsed:     true,
			NextAvailableAt: p.LastWorkBonusAt.Add(s.cooldown),
			Profile:         p,
		}, nil
	}

	room := catalog.WorkRoomBonus(p.CurrentWorkRoomID)
	healthCost := maxInt(0, workHealthCost+room.WorkHealthExtra)

	previousLevel := p.Level
	updated := p
	updated.Health = clamp(p.Health-healthCost, 0, 100)
	updated.Stress = clamp(p.Stress+workStressGain, 0, 120)
	updated.Coins = maxInt(0, p.Coins+workBaseCoins+room.WorkCoinsExtra)
	updated.Experience = p.Experience + workXP
	updated.Level = catalog.LevelForXP(updated.Experience)

	result := &domain.WorkBonusResult{
		XPEarned:      workXP,
		PreviousLevel: previousLevel,
	}

	if updated.Health == 0 {
		dead, err := s.applyDeathReset(p, nil, now)
		if err != nil {
			return nil, err
		}
		result.Died = true
		result.NewLevel = 1
		result.Profile = dead
		metrics.Deaths.Inc()
		return result, nil
	}

	usedAt := now
	updated.LastWorkBonusAt = &usedAt

	err = s.db.WithTx(func(tx *sqlite.Tx) error {
		return tx.UpdateProfileCAS(updated, p.Version)
	})
	if err != nil {
		return nil, fmt.Errorf("save work bonus: %w", err)
	}
	updated.Version = p.Version + 1

	result.NewLevel = updated.Level
	result.LevelUp = updated.Level > previousLevel
	result.Profile = updated

	metrics.CoinsGranted.Add(float64(workBaseCoins + room.WorkCoinsExtra))
	metrics.XPGranted.Add(workXP)
	if result.LevelUp {
		metrics.LevelUps.Inc()
	}
	return result, nil
}

// ─── Death reset ────────────────────────────────────────────────────────────

// applyDeathReset wipes all progress atomically: starting profile values,
// empty badge set, inventory reduced to the starting house and work room,
// cooldowns cleared. The triggering activity, when present, is still
// recorded in the same transaction — the log is append-only history.
func (s *Service) applyDeathReset(p domain.Profile, activity *domain.Activity, now time.Time) (domain.Profile, error) {
	dead := startingProfile(p.UserID)

	err := s.db.WithTx(func(tx *sqlite.Tx) error {
		if activity != nil {
			if err := tx.InsertActivity(*activity); err != nil {
				return fmt.Errorf("insert activity: %w", err)
			}
		}
		if err := tx.UpdateProfileCAS(dead, p.Version); err != nil {
			return fmt.Errorf("reset profile: %w", err)
		}
		if err := tx.DeleteBadges(p.UserID); err != nil {
			return fmt.Errorf("wipe badges: %w", err)
		}
		if err := tx.ClearInventory(p.UserID); err != nil {
			return fmt.Errorf("wipe inventory: %w", err)
		}
		if err := tx.GrantItem(p.UserID, "house", catalog.DefaultHouseID, now); err != nil {
			return err
		}
		return tx.GrantItem(p.UserID, "work_room", catalog.DefaultWorkRoomID, now)
	})
	if err != nil {
		return domain.Profile{}, err
	}

	dead.Version = p.Version + 1
	return dead, nil
}

// ─── Badge reconciliation ───────────────────────────────────────────────────

// EvaluateAndGrantBadges reconciles the persisted badge set against the
// evaluator's eligibility. Called after non-death completions; also an
// inbound operation in its own right.
func (s *Service) EvaluateAndGrantBadges(userID string) error {
	return s.EvaluateAndGrantBadgesAt(userID, time.Now())
}

// EvaluateAndGrantBadgesAt is EvaluateAndGrantBadges with an explicit
// clock, for tests.
func (s *Service) EvaluateAndGrantBadgesAt(userID string, now time.Time) error {
	p, err := s.Profile(userID)
	if err != nil {
		return err
	}

	fresh, err := s.badges.NewlyEligible(userID, p, now)
	if err != nil {
		return err
	}
	for _, id := range fresh {
		granted, err := s.db.GrantBadge(userID, id, now)
		if err != nil {
			return fmt.Errorf("grant badge %s: %w", id, err)
		}
		if granted {
			metrics.BadgesGranted.Inc()
		}
	}
	return nil
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func sameDay(a, b time.Time, loc *time.Location) bool {
	al, bl := a.In(loc), b.In(loc)
	return al.Year() == bl.Year() && al.YearDay() == bl.YearDay()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
