package catalog_test

import (
	"testing"

	"github.com/meu-mundo/meumundo/internal/app/catalog"
	"github.com/meu-mundo/meumundo/internal/domain"
)

// ═══════════════════════════════════════════════════════════════════════════
// Level Curve Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestLevelForXP_Monotonic(t *testing.T) {
	prev := 1
	for xp := 0; xp <= 70000; xp += 7 {
		level := catalog.LevelForXP(xp)
		if level < prev {
			t.Fatalf("level decreased: xp=%d level=%d prev=%d", xp, level, prev)
		}
		if level < 1 || level > 50 {
			t.Fatalf("level out of [1,50]: xp=%d level=%d", xp, level)
		}
		prev = level
	}
}

func TestLevelForXP_Thresholds(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{-5, 1},
		{0, 1},
		{99, 1},
		{100, 2}, // Exactly L2 threshold
		{249, 2},
		{250, 3}, // Exactly L3 threshold
		{449, 3},
		{450, 4},
		{1000000, 50}, // Capped
	}
	for _, tt := range tests {
		if got := catalog.LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestXPForLevel(t *testing.T) {
	if xp := catalog.XPForLevel(1); xp != 0 {
		t.Errorf("level 1 should need 0 XP, got %d", xp)
	}
	if xp := catalog.XPForLevel(2); xp != 100 {
		t.Errorf("level 2 expected 100, got %d", xp)
	}

	// Each level requires more than the last
	prev := catalog.XPForLevel(2)
	for lvl := 3; lvl <= 50; lvl++ {
		xp := catalog.XPForLevel(lvl)
		if xp <= prev {
			t.Errorf("level %d XP (%d) not greater than level %d (%d)", lvl, xp, lvl-1, prev)
		}
		prev = xp
	}
}

func TestXPForLevel_RoundTrip(t *testing.T) {
	// At exactly the threshold for level L, LevelForXP returns L.
	for lvl := 2; lvl <= 50; lvl++ {
		xp := catalog.XPForLevel(lvl)
		if got := catalog.LevelForXP(xp); got != lvl {
			t.Errorf("LevelForXP(XPForLevel(%d)) = %d", lvl, got)
		}
		if got := catalog.LevelForXP(xp - 1); got != lvl-1 {
			t.Errorf("LevelForXP(XPForLevel(%d)-1) = %d, want %d", lvl, got, lvl-1)
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Lookup Fallback Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestRewardForFolderType_Fallback(t *testing.T) {
	trabalho := catalog.RewardForFolderType(domain.ActivityTrabalho)
	if trabalho.Coins != 80 || trabalho.XP != 30 {
		t.Errorf("unexpected trabalho baseline: %+v", trabalho)
	}

	// Unknown and empty types fall back to trabalho — not an error.
	if got := catalog.RewardForFolderType("desconhecido"); got != trabalho {
		t.Errorf("unknown type should fall back to trabalho, got %+v", got)
	}
	if got := catalog.RewardForFolderType(""); got != trabalho {
		t.Errorf("empty type should fall back to trabalho, got %+v", got)
	}
}

func TestImportanceMultiplier_Ordering(t *testing.T) {
	simple := catalog.ImportanceMultiplier(domain.ImportanceSimple)
	medium := catalog.ImportanceMultiplier(domain.ImportanceMedium)
	important := catalog.ImportanceMultiplier(domain.ImportanceImportant)

	if !(simple < medium && medium < important) {
		t.Errorf("expected simple < medium < important, got %.2f %.2f %.2f",
			simple, medium, important)
	}
	if medium != 1.0 {
		t.Errorf("medium should be the 1.0 baseline, got %.2f", medium)
	}
	if got := catalog.ImportanceMultiplier("urgentissimo"); got != 1.0 {
		t.Errorf("unknown importance should fall back to medium, got %.2f", got)
	}
}

func TestBonusLookups_UnknownIDs(t *testing.T) {
	if b := catalog.HouseBonus("mansao_inexistente"); b != (catalog.HouseBonusDef{}) {
		t.Errorf("unknown house should give zero bonus, got %+v", b)
	}
	if b := catalog.WorkRoomBonus(""); b != (catalog.WorkRoomBonusDef{}) {
		t.Errorf("empty room should give zero bonus, got %+v", b)
	}
	if pct := catalog.PetStressReductionPercent("dragao"); pct != 0 {
		t.Errorf("unknown pet should give 0%%, got %d", pct)
	}
	if b := catalog.CoverBonus("capa_falsa"); b != (catalog.ItemBonus{}) {
		t.Errorf("unknown cover should give zero bonus, got %+v", b)
	}
	if b := catalog.GuardianItemBonus(""); b != (catalog.ItemBonus{}) {
		t.Errorf("no guardian item should give zero bonus, got %+v", b)
	}
}

func TestPetStressReduction_Range(t *testing.T) {
	for _, pet := range []string{"gato", "cachorro", "coelho", "papagaio", "capivara"} {
		pct := catalog.PetStressReductionPercent(pet)
		if pct < 0 || pct > 100 {
			t.Errorf("pet %s reduction %d%% out of [0,100]", pet, pct)
		}
	}
}
