package badges_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/meu-mundo/meumundo/internal/app/badges"
	"github.com/meu-mundo/meumundo/internal/app/history"
	"github.com/meu-mundo/meumundo/internal/domain"
	"github.com/meu-mundo/meumundo/internal/infra/sqlite"
)

var loc = time.FixedZone("BRT", -3*3600)

func testEvaluator(t *testing.T) (*sqlite.DB, *badges.Evaluator) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, badges.NewEvaluator(db, history.NewAnalyzer(db, loc))
}

func seedActivities(t *testing.T, db *sqlite.DB, userID string, n int, at time.Time, mutate func(i int, act *domain.Activity)) {
	t.Helper()
	err := db.WithTx(func(tx *sqlite.Tx) error {
		for i := 0; i < n; i++ {
			act := domain.Activity{
				ID:            fmt.Sprintf("%s-act-%d-%d", userID, at.Unix(), i),
				UserID:        userID,
				Type:          domain.ActivityTrabalho,
				ScheduledDate: at.In(loc).Format("2006-01-02"),
				Completed:     true,
				CompletedAt:   at,
			}
			if mutate != nil {
				mutate(i, &act)
			}
			if err := tx.InsertActivity(act); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed activities: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Evaluator Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestEvaluate_FreshUserHasNothing(t *testing.T) {
	_, ev := testEvaluator(t)

	eligible, err := ev.Evaluate("u1", domain.Profile{Level: 1}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(eligible) != 0 {
		t.Errorf("fresh user eligible for %v, want none", eligible)
	}
}

func TestEvaluate_FirstTask(t *testing.T) {
	db, ev := testEvaluator(t)
	now := time.Date(2025, 7, 10, 12, 0, 0, 0, loc)
	seedActivities(t, db, "u1", 1, now, nil)

	eligible, err := ev.Evaluate("u1", domain.Profile{Level: 1}, now)
	if err != nil {
		t.Fatal(err)
	}
	if !eligible["primeira_tarefa"] {
		t.Error("primeira_tarefa should be eligible after one completion")
	}
	if eligible["dez_tarefas"] || eligible["aprendiz_1"] {
		t.Errorf("higher thresholds should not be met yet: %v", eligible)
	}
}

func TestEvaluate_Thresholds(t *testing.T) {
	db, ev := testEvaluator(t)
	now := time.Date(2025, 7, 10, 12, 0, 0, 0, loc)

	// 25 trabalho tasks on one day, each linked and in its own folder.
	seedActivities(t, db, "u1", 25, now, func(i int, act *domain.Activity) {
		act.HasLink = true
		act.FolderID = fmt.Sprintf("folder-%d", i)
		act.CoinsEarned = 40
	})

	eligible, err := ev.Evaluate("u1", domain.Profile{Level: 5}, now)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"primeira_tarefa", "dez_tarefas", // 25 total
		"trabalhador",            // 25 trabalho
		"conectado", "arquivista", // 25 linked
		"explorador_de_pastas", // 25 distinct folders
		"dia_produtivo", "maratona", // 25 in one day
		"nivel_5",      // profile level 5
		"rico",         // 25·40 = 1000 coins
		"aprendiz_1",   // ≥3 total
		"explorador_1", // ≥20 total
	} {
		if !eligible[want] {
			t.Errorf("expected %s to be eligible", want)
		}
	}
	for _, not := range []string{
		"cinquenta_tarefas", "estudioso", "magnata", "nivel_10",
		"semana_ativa", "aprendiz_2", "guardiao_1",
	} {
		if eligible[not] {
			t.Errorf("%s should not be eligible", not)
		}
	}
}

func TestEvaluate_StreakBadges(t *testing.T) {
	db, ev := testEvaluator(t)
	now := time.Date(2025, 7, 10, 18, 0, 0, 0, loc)

	// One activity per day for 7 days ending today.
	for d := 0; d < 7; d++ {
		seedActivities(t, db, "u1", 1, now.AddDate(0, 0, -d), nil)
	}

	eligible, err := ev.Evaluate("u1", domain.Profile{Level: 1}, now)
	if err != nil {
		t.Fatal(err)
	}
	if !eligible["semana_ativa"] {
		t.Error("7-day streak should earn semana_ativa")
	}
	if !eligible["explorador_2"] {
		t.Error("7-day streak should satisfy explorador_2 (≥5)")
	}
	if eligible["mes_ativo"] {
		t.Error("mes_ativo needs 30 days")
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	db, ev := testEvaluator(t)
	now := time.Date(2025, 7, 10, 12, 0, 0, 0, loc)
	seedActivities(t, db, "u1", 5, now, nil)

	first, err := ev.Evaluate("u1", domain.Profile{Level: 2}, now)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ev.Evaluate("u1", domain.Profile{Level: 2}, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("evaluation not stable: %v vs %v", first, second)
	}
	for id := range first {
		if !second[id] {
			t.Errorf("%s missing from second evaluation", id)
		}
	}
}

func TestNewlyEligible_ExcludesGranted(t *testing.T) {
	db, ev := testEvaluator(t)
	now := time.Date(2025, 7, 10, 12, 0, 0, 0, loc)
	seedActivities(t, db, "u1", 3, now, nil)

	fresh, err := ev.NewlyEligible("u1", domain.Profile{Level: 1}, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(fresh) == 0 {
		t.Fatal("expected newly eligible badges")
	}

	for _, id := range fresh {
		if _, err := db.GrantBadge("u1", id, now); err != nil {
			t.Fatalf("grant %s: %v", id, err)
		}
	}

	again, err := ev.NewlyEligible("u1", domain.Profile{Level: 1}, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 0 {
		t.Errorf("already-granted badges reported again: %v", again)
	}
}

func TestAllBadges_UniqueIDsAndPredicates(t *testing.T) {
	seen := make(map[string]bool)
	for _, def := range badges.AllBadges() {
		if def.ID == "" {
			t.Error("badge with empty id")
		}
		if seen[def.ID] {
			t.Errorf("duplicate badge id %s", def.ID)
		}
		seen[def.ID] = true
		if def.Predicate == nil {
			t.Errorf("badge %s has no predicate", def.ID)
		}
		if def.Category == domain.CatAvatares && (def.Avatar == "" || def.Chapter == 0) {
			t.Errorf("avatar badge %s missing avatar/chapter metadata", def.ID)
		}
	}
}
