package history_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/meu-mundo/meumundo/internal/app/history"
	"github.com/meu-mundo/meumundo/internal/domain"
	"github.com/meu-mundo/meumundo/internal/infra/sqlite"
)

var loc = time.FixedZone("BRT", -3*3600)

func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var seq int

// complete records a completed activity at the given instant.
func complete(t *testing.T, db *sqlite.DB, userID string, at time.Time, opts ...func(*domain.Activity)) {
	t.Helper()
	seq++
	act := domain.Activity{
		ID:            fmt.Sprintf("act-%d", seq),
		UserID:        userID,
		Type:          domain.ActivityTrabalho,
		ScheduledDate: at.In(loc).Format("2006-01-02"),
		Completed:     true,
		CompletedAt:   at,
	}
	for _, opt := range opts {
		opt(&act)
	}
	err := db.WithTx(func(tx *sqlite.Tx) error {
		return tx.InsertActivity(act)
	})
	if err != nil {
		t.Fatalf("insert activity: %v", err)
	}
}

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, loc)
}

// ═══════════════════════════════════════════════════════════════════════════
// Analyzer Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestLastActivityDate(t *testing.T) {
	db := testDB(t)
	a := history.NewAnalyzer(db, loc)

	last, err := a.LastActivityDate("u1")
	if err != nil {
		t.Fatal(err)
	}
	if !last.IsZero() {
		t.Errorf("empty log should give the zero time, got %v", last)
	}

	complete(t, db, "u1", at(2025, 7, 8, 9))
	complete(t, db, "u1", at(2025, 7, 10, 22))
	complete(t, db, "u1", at(2025, 7, 9, 14))
	complete(t, db, "u2", at(2025, 7, 20, 12)) // Another user, must not leak

	last, err = a.LastActivityDate("u1")
	if err != nil {
		t.Fatal(err)
	}
	want := at(2025, 7, 10, 0)
	if !last.Equal(want) {
		t.Errorf("last = %v, want midnight %v", last, want)
	}
}

func TestActivitiesCountToday(t *testing.T) {
	db := testDB(t)
	a := history.NewAnalyzer(db, loc)

	complete(t, db, "u1", at(2025, 7, 10, 8))
	complete(t, db, "u1", at(2025, 7, 10, 19))
	complete(t, db, "u1", at(2025, 7, 9, 23)) // Yesterday

	n, err := a.ActivitiesCountToday("u1", at(2025, 7, 10, 21))
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}

func TestActivitiesCountToday_DayBoundary(t *testing.T) {
	db := testDB(t)
	a := history.NewAnalyzer(db, loc)

	// 23:30 local on the 9th is 02:30 UTC on the 10th. The calendar day
	// must follow the reference timezone, not UTC.
	complete(t, db, "u1", time.Date(2025, 7, 10, 2, 30, 0, 0, time.UTC))

	n, err := a.ActivitiesCountToday("u1", at(2025, 7, 9, 23))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("count on the 9th = %d, want 1", n)
	}
	n, err = a.ActivitiesCountToday("u1", at(2025, 7, 10, 12))
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("count on the 10th = %d, want 0", n)
	}
}

func TestConsecutiveDaysStreak(t *testing.T) {
	db := testDB(t)
	a := history.NewAnalyzer(db, loc)

	// Activity on the 7th, 8th and 9th; today is the 10th.
	complete(t, db, "u1", at(2025, 7, 7, 10))
	complete(t, db, "u1", at(2025, 7, 8, 10))
	complete(t, db, "u1", at(2025, 7, 8, 15)) // Two on one day count once
	complete(t, db, "u1", at(2025, 7, 9, 10))
	complete(t, db, "u1", at(2025, 7, 10, 9)) // Today is excluded

	streak, err := a.ConsecutiveDaysStreak("u1", at(2025, 7, 10, 12))
	if err != nil {
		t.Fatal(err)
	}
	if streak != 3 {
		t.Errorf("streak = %d, want 3", streak)
	}
}

func TestConsecutiveDaysStreak_BrokenByGap(t *testing.T) {
	db := testDB(t)
	a := history.NewAnalyzer(db, loc)

	complete(t, db, "u1", at(2025, 7, 5, 10))
	complete(t, db, "u1", at(2025, 7, 6, 10))
	// Nothing on the 7th
	complete(t, db, "u1", at(2025, 7, 8, 10))
	complete(t, db, "u1", at(2025, 7, 9, 10))

	streak, err := a.ConsecutiveDaysStreak("u1", at(2025, 7, 10, 12))
	if err != nil {
		t.Fatal(err)
	}
	if streak != 2 {
		t.Errorf("streak = %d, want 2 (walk stops at the gap on the 7th)", streak)
	}
}

func TestConsecutiveDaysStreak_NoActivityYesterday(t *testing.T) {
	db := testDB(t)
	a := history.NewAnalyzer(db, loc)

	complete(t, db, "u1", at(2025, 7, 5, 10))
	complete(t, db, "u1", at(2025, 7, 10, 9)) // Only today

	streak, err := a.ConsecutiveDaysStreak("u1", at(2025, 7, 10, 12))
	if err != nil {
		t.Fatal(err)
	}
	if streak != 0 {
		t.Errorf("streak = %d, want 0 when yesterday is empty", streak)
	}
}

func TestStats(t *testing.T) {
	db := testDB(t)
	a := history.NewAnalyzer(db, loc)

	complete(t, db, "u1", at(2025, 7, 9, 9), func(act *domain.Activity) {
		act.Type = domain.ActivityEstudos
		act.FolderID = "f1"
		act.CoinsEarned = 50
	})
	complete(t, db, "u1", at(2025, 7, 10, 9), func(act *domain.Activity) {
		act.FolderID = "f1"
		act.HasLink = true
		act.CoinsEarned = 76
	})
	complete(t, db, "u1", at(2025, 7, 10, 14), func(act *domain.Activity) {
		act.FolderID = "f2"
		act.CoinsEarned = -5 // Negative earnings never add to CoinsEver
	})

	stats, err := a.Stats("u1", domain.Profile{Level: 3}, at(2025, 7, 10, 20))
	if err != nil {
		t.Fatal(err)
	}

	if stats.TotalCompleted != 3 {
		t.Errorf("TotalCompleted = %d, want 3", stats.TotalCompleted)
	}
	if stats.ActiveDays != 2 {
		t.Errorf("ActiveDays = %d, want 2", stats.ActiveDays)
	}
	if stats.Level != 3 {
		t.Errorf("Level = %d, want 3", stats.Level)
	}
	if stats.CoinsEver != 126 {
		t.Errorf("CoinsEver = %d, want 126", stats.CoinsEver)
	}
	if stats.ByType[domain.ActivityTrabalho] != 2 || stats.ByType[domain.ActivityEstudos] != 1 {
		t.Errorf("ByType = %v", stats.ByType)
	}
	if stats.MaxInOneDay != 2 {
		t.Errorf("MaxInOneDay = %d, want 2", stats.MaxInOneDay)
	}
	if stats.DistinctFolders != 2 {
		t.Errorf("DistinctFolders = %d, want 2", stats.DistinctFolders)
	}
	if stats.LinkedEvents != 1 {
		t.Errorf("LinkedEvents = %d, want 1", stats.LinkedEvents)
	}
	// Yesterday plus today-with-activity: 2.
	if stats.StreakDays != 2 {
		t.Errorf("StreakDays = %d, want 2", stats.StreakDays)
	}
}

func TestReferenceLocation(t *testing.T) {
	ref := history.ReferenceLocation()
	// Whether tzdata or the fixed fallback, the offset in July is −3h.
	_, offset := time.Date(2025, 7, 10, 12, 0, 0, 0, ref).Zone()
	if offset != -3*3600 {
		t.Errorf("reference offset = %d, want -10800", offset)
	}
}
