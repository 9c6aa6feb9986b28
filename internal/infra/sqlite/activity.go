package sqlite

import (
	"database/sql"
	"time"

	"github.com/meu-mundo/meumundo/internal/domain"
)

const activityColumns = `id, user_id, type, folder_id, scheduled_date,
	scheduled_time, has_link, completed, completed_at,
	coins_earned, xp_earned, health_change, stress_change`

// ─── Activity Log ───────────────────────────────────────────────────────────

// InsertActivity appends one entry to the activity log inside the
// surrounding transaction. Entries are immutable once inserted.
func (t *Tx) InsertActivity(a domain.Activity) error {
	_, err := t.tx.Exec(
		`INSERT INTO activities (`+activityColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, string(a.Type), a.FolderID, a.ScheduledDate,
		nullableString(a.ScheduledTime), a.HasLink, a.Completed,
		nullableCompletedAt(a), a.CoinsEarned, a.XPEarned,
		a.HealthChange, a.StressChange,
	)
	return err
}

// CompletedActivities returns every completed activity for the user,
// oldest first. The streak analyzer and badge evaluator only read this.
func (d *DB) CompletedActivities(userID string) ([]domain.Activity, error) {
	rows, err := d.db.Query(
		`SELECT `+activityColumns+` FROM activities
		 WHERE user_id = ? AND completed = 1 ORDER BY completed_at ASC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var acts []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		acts = append(acts, *a)
	}
	return acts, rows.Err()
}

// CompletedCount returns the number of completed activities.
func (d *DB) CompletedCount(userID string) (int, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM activities WHERE user_id = ? AND completed = 1`, userID,
	).Scan(&count)
	return count, err
}

// ─── Scanners ───────────────────────────────────────────────────────────────

func scanActivity(s scanner) (*domain.Activity, error) {
	var a domain.Activity
	var atype string
	var schedTime sql.NullString
	var completedAt sql.NullInt64

	err := s.Scan(&a.ID, &a.UserID, &atype, &a.FolderID, &a.ScheduledDate,
		&schedTime, &a.HasLink, &a.Completed, &completedAt,
		&a.CoinsEarned, &a.XPEarned, &a.HealthChange, &a.StressChange)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	a.Type = domain.ActivityType(atype)
	a.ScheduledTime = schedTime.String
	if completedAt.Valid {
		a.CompletedAt = time.Unix(completedAt.Int64, 0)
	}
	return &a, nil
}

func nullableCompletedAt(a domain.Activity) sql.NullInt64 {
	if a.CompletedAt.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: a.CompletedAt.Unix(), Valid: true}
}
