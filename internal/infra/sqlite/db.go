// Package sqlite provides SQLite-based persistent storage for Meu Mundo.
// Uses WAL mode for concurrent reads and crash-safe writes. Profile rows
// carry a version column; mutations go through compare-and-swap updates
// inside transactions so racing actions cannot both apply stale rewards.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/mundo.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "mundo.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// One profile per user, mutated only through the progression
		// state machine. version backs the CAS update.
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id              TEXT PRIMARY KEY,
			coins                INTEGER NOT NULL,
			level                INTEGER NOT NULL,
			experience           INTEGER NOT NULL,
			health               INTEGER NOT NULL,
			stress               INTEGER NOT NULL,
			pet_id               TEXT NOT NULL DEFAULT '',
			cover_id             TEXT NOT NULL DEFAULT 'default',
			antistress_item_id   TEXT NOT NULL DEFAULT '',
			current_house_id     TEXT NOT NULL,
			current_work_room_id TEXT NOT NULL,
			avatar_id            TEXT NOT NULL,
			room_layout          TEXT,
			last_relax_at        INTEGER,
			last_work_bonus_at   INTEGER,
			version              INTEGER NOT NULL DEFAULT 1
		)`,

		// Append-only activity log. Reward fields are frozen at
		// completion time.
		`CREATE TABLE IF NOT EXISTS activities (
			id             TEXT PRIMARY KEY,
			user_id        TEXT NOT NULL,
			type           TEXT NOT NULL,
			folder_id      TEXT NOT NULL DEFAULT '',
			scheduled_date TEXT NOT NULL,
			scheduled_time TEXT,
			has_link       BOOLEAN DEFAULT 0,
			completed      BOOLEAN DEFAULT 0,
			completed_at   INTEGER,
			coins_earned   INTEGER NOT NULL DEFAULT 0,
			xp_earned      INTEGER NOT NULL DEFAULT 0,
			health_change  INTEGER NOT NULL DEFAULT 0,
			stress_change  INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_user ON activities(user_id, completed_at)`,

		// Earned badges, append-only except on death reset.
		`CREATE TABLE IF NOT EXISTS profile_badges (
			user_id   TEXT NOT NULL,
			badge_id  TEXT NOT NULL,
			earned_at INTEGER NOT NULL,
			PRIMARY KEY (user_id, badge_id)
		)`,

		// Owned cosmetic/room inventory. Wiped to the starting house and
		// work room on death reset.
		`CREATE TABLE IF NOT EXISTS inventory (
			user_id     TEXT NOT NULL,
			item_kind   TEXT NOT NULL,
			item_id     TEXT NOT NULL,
			acquired_at INTEGER NOT NULL,
			PRIMARY KEY (user_id, item_kind, item_id)
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Transactions ───────────────────────────────────────────────────────────

// Tx scopes write operations to a single transaction so the activity
// insert and the profile update commit or roll back together.
type Tx struct {
	tx *sql.Tx
}

// WithTx runs fn inside an immediate transaction. Any error rolls back.
func (d *DB) WithTx(fn func(*Tx) error) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(&Tx{tx: tx}); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func nullableUnix(t *time.Time) sql.NullInt64 {
	if t == nil || t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func timePtr(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := time.Unix(n.Int64, 0)
	return &t
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
