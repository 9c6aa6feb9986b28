package sqlite

import (
	"database/sql"
	"time"

	"github.com/meu-mundo/meumundo/internal/domain"
)

const profileColumns = `user_id, coins, level, experience, health, stress,
	pet_id, cover_id, antistress_item_id, current_house_id,
	current_work_room_id, avatar_id, room_layout,
	last_relax_at, last_work_bonus_at, version`

// ─── Profiles ───────────────────────────────────────────────────────────────

// GetProfile retrieves a profile by user id. Returns (nil, nil) when the
// user has no profile yet — first access creates one at a higher layer.
func (d *DB) GetProfile(userID string) (*domain.Profile, error) {
	row := d.db.QueryRow(
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = ?`, userID,
	)
	return scanProfile(row)
}

// InsertProfile creates a fresh profile row at version 1.
func (d *DB) InsertProfile(p domain.Profile) error {
	_, err := d.db.Exec(
		`INSERT INTO profiles (`+profileColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		p.UserID, p.Coins, p.Level, p.Experience, p.Health, p.Stress,
		p.PetID, p.CoverID, p.AntistressItemID, p.CurrentHouseID,
		p.CurrentWorkRoomID, p.AvatarID, nullableString(p.RoomLayout),
		nullableUnix(p.LastRelaxAt), nullableUnix(p.LastWorkBonusAt),
	)
	return err
}

// UpdateProfileCAS writes the profile guarded by the expected version.
// The stored version is bumped; a stale expectation yields ErrConflict.
func (t *Tx) UpdateProfileCAS(p domain.Profile, expectedVersion int64) error {
	result, err := t.tx.Exec(
		`UPDATE profiles SET
			coins = ?, level = ?, experience = ?, health = ?, stress = ?,
			pet_id = ?, cover_id = ?, antistress_item_id = ?,
			current_house_id = ?, current_work_room_id = ?, avatar_id = ?,
			room_layout = ?, last_relax_at = ?, last_work_bonus_at = ?,
			version = version + 1
		 WHERE user_id = ? AND version = ?`,
		p.Coins, p.Level, p.Experience, p.Health, p.Stress,
		p.PetID, p.CoverID, p.AntistressItemID,
		p.CurrentHouseID, p.CurrentWorkRoomID, p.AvatarID,
		nullableString(p.RoomLayout),
		nullableUnix(p.LastRelaxAt), nullableUnix(p.LastWorkBonusAt),
		p.UserID, expectedVersion,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrConflict
	}
	return nil
}

// ─── Badges ─────────────────────────────────────────────────────────────────

// BadgeIDs returns the user's earned badge id set.
func (d *DB) BadgeIDs(userID string) (map[string]bool, error) {
	rows, err := d.db.Query(
		`SELECT badge_id FROM profile_badges WHERE user_id = ?`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// ListBadges returns earned badges ordered by grant time, newest first.
func (d *DB) ListBadges(userID string) ([]domain.EarnedBadge, error) {
	rows, err := d.db.Query(
		`SELECT badge_id, earned_at FROM profile_badges
		 WHERE user_id = ? ORDER BY earned_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []domain.EarnedBadge
	for rows.Next() {
		var b domain.EarnedBadge
		var earnedAt int64
		if err := rows.Scan(&b.ID, &earnedAt); err != nil {
			return nil, err
		}
		b.EarnedAt = time.Unix(earnedAt, 0)
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// GrantBadge records a badge as earned. Returns false if it was already
// granted (idempotent).
func (d *DB) GrantBadge(userID, badgeID string, at time.Time) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO profile_badges (user_id, badge_id, earned_at) VALUES (?, ?, ?)`,
		userID, badgeID, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// DeleteBadges wipes the user's badge set. Death reset only.
func (t *Tx) DeleteBadges(userID string) error {
	_, err := t.tx.Exec(`DELETE FROM profile_badges WHERE user_id = ?`, userID)
	return err
}

// ─── Inventory ──────────────────────────────────────────────────────────────

// GrantItem records ownership of a cosmetic/room item.
func (d *DB) GrantItem(userID, kind, itemID string, at time.Time) error {
	_, err := d.db.Exec(
		`INSERT OR IGNORE INTO inventory (user_id, item_kind, item_id, acquired_at) VALUES (?, ?, ?, ?)`,
		userID, kind, itemID, at.Unix(),
	)
	return err
}

// InventoryItems returns owned item ids for one kind.
func (d *DB) InventoryItems(userID, kind string) ([]string, error) {
	rows, err := d.db.Query(
		`SELECT item_id FROM inventory WHERE user_id = ? AND item_kind = ? ORDER BY acquired_at`,
		userID, kind,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	return items, rows.Err()
}

// ClearInventory removes every owned item. Death reset only.
func (t *Tx) ClearInventory(userID string) error {
	_, err := t.tx.Exec(`DELETE FROM inventory WHERE user_id = ?`, userID)
	return err
}

// GrantItem records ownership inside the reset transaction.
func (t *Tx) GrantItem(userID, kind, itemID string, at time.Time) error {
	_, err := t.tx.Exec(
		`INSERT OR IGNORE INTO inventory (user_id, item_kind, item_id, acquired_at) VALUES (?, ?, ?, ?)`,
		userID, kind, itemID, at.Unix(),
	)
	return err
}

// ─── Scanners ───────────────────────────────────────────────────────────────

func scanProfile(s scanner) (*domain.Profile, error) {
	var p domain.Profile
	var roomLayout sql.NullString
	var lastRelax, lastWork sql.NullInt64

	err := s.Scan(&p.UserID, &p.Coins, &p.Level, &p.Experience, &p.Health, &p.Stress,
		&p.PetID, &p.CoverID, &p.AntistressItemID, &p.CurrentHouseID,
		&p.CurrentWorkRoomID, &p.AvatarID, &roomLayout,
		&lastRelax, &lastWork, &p.Version)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	p.RoomLayout = roomLayout.String
	p.LastRelaxAt = timePtr(lastRelax)
	p.LastWorkBonusAt = timePtr(lastWork)
	return &p, nil
}
