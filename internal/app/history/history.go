// Package history derives streak and catch-up signals from the
// append-only activity log. All calendar-day boundaries use one fixed
// reference timezone (America/Sao_Paulo by default) — never system-local
// time — so streak semantics are deterministic across environments.
package history

import (
	"time"

	"github.com/meu-mundo/meumundo/internal/domain"
	"github.com/meu-mundo/meumundo/internal/infra/sqlite"
)

// ReferenceZone is the default calendar-day timezone.
const ReferenceZone = "America/Sao_Paulo"

// ReferenceLocation loads the reference timezone, falling back to a
// fixed UTC−3 offset when the host has no tzdata.
func ReferenceLocation() *time.Location {
	if loc, err := time.LoadLocation(ReferenceZone); err == nil {
		return loc
	}
	return time.FixedZone("-03", -3*60*60)
}

// Analyzer answers read-only calendar questions about a user's activity.
type Analyzer struct {
	db  *sqlite.DB
	loc *time.Location
}

// NewAnalyzer creates an analyzer. A nil location selects the reference
// timezone.
func NewAnalyzer(db *sqlite.DB, loc *time.Location) *Analyzer {
	if loc == nil {
		loc = ReferenceLocation()
	}
	return &Analyzer{db: db, loc: loc}
}

// Location returns the analyzer's calendar timezone.
func (a *Analyzer) Location() *time.Location { return a.loc }

// LastActivityDate returns the most recent calendar date with a
// completed activity, as midnight in the reference timezone. The zero
// time means no activity at all.
func (a *Analyzer) LastActivityDate(userID string) (time.Time, error) {
	acts, err := a.db.CompletedActivities(userID)
	if err != nil {
		return time.Time{}, err
	}

	var last time.Time
	for _, act := range acts {
		day := a.dayOf(act.CompletedAt)
		if day.After(last) {
			last = day
		}
	}
	return last, nil
}

// ActivitiesCountToday counts activities completed on now's calendar
// date. Callers invoke this before inserting the activity currently
// being processed.
func (a *Analyzer) ActivitiesCountToday(userID string, now time.Time) (int, error) {
	acts, err := a.db.CompletedActivities(userID)
	if err != nil {
		return 0, err
	}

	today := a.dayOf(now)
	count := 0
	for _, act := range acts {
		if a.dayOf(act.CompletedAt).Equal(today) {
			count++
		}
	}
	return count, nil
}

// ConsecutiveDaysStreak walks backward day-by-day from yesterday,
// counting consecutive prior days with at least one completed activity,
// stopping at the first gap. Today is deliberately excluded — the reward
// pipeline adds today's own contribution as +1.
func (a *Analyzer) ConsecutiveDaysStreak(userID string, now time.Time) (int, error) {
	acts, err := a.db.CompletedActivities(userID)
	if err != nil {
		return 0, err
	}

	days := make(map[string]bool, len(acts))
	for _, act := range acts {
		days[a.dayOf(act.CompletedAt).Format("2006-01-02")] = true
	}

	streak := 0
	cursor := a.dayOf(now).AddDate(0, 0, -1)
	for days[cursor.Format("2006-01-02")] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak, nil
}

// Stats aggregates the full activity history into the snapshot consumed
// by badge predicates. level and coins come from the profile; everything
// else is recomputed from scratch.
func (a *Analyzer) Stats(userID string, profile domain.Profile, now time.Time) (domain.UserStats, error) {
	acts, err := a.db.CompletedActivities(userID)
	if err != nil {
		return domain.UserStats{}, err
	}

	stats := domain.UserStats{
		Level:  profile.Level,
		ByType: make(map[domain.ActivityType]int),
	}

	perDay := make(map[string]int)
	folders := make(map[string]bool)
	for _, act := range acts {
		stats.TotalCompleted++
		stats.ByType[act.Type]++
		perDay[a.dayOf(act.CompletedAt).Format("2006-01-02")]++
		if act.FolderID != "" {
			folders[act.FolderID] = true
		}
		if act.HasLink {
			stats.LinkedEvents++
		}
		if act.CoinsEarned > 0 {
			stats.CoinsEver += act.CoinsEarned
		}
	}

	stats.ActiveDays = len(perDay)
	for _, n := range perDay {
		if n > stats.MaxInOneDay {
			stats.MaxInOneDay = n
		}
	}
	stats.DistinctFolders = len(folders)

	streak, err := a.ConsecutiveDaysStreak(userID, now)
	if err != nil {
		return domain.UserStats{}, err
	}
	// The streak badge counts today when today has activity.
	if perDay[a.dayOf(now).Format("2006-01-02")] > 0 {
		streak++
	}
	stats.StreakDays = streak

	return stats, nil
}

// dayOf truncates a timestamp to midnight of its calendar date in the
// reference timezone.
func (a *Analyzer) dayOf(t time.Time) time.Time {
	local := t.In(a.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, a.loc)
}
