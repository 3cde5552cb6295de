package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/skybird/internal/progress"
)

// LoadProfile reads a player's profile. NULL columns take their default
// values; found is false when the player has never been saved.
func (s *Store) LoadProfile(player string) (progress.Profile, bool, error) {
	var (
		coins, highScore, level, experience, days sql.NullInt64
		skin, lastReward                          sql.NullString
	)
	err := s.db.QueryRow(
		`SELECT coins, high_score, level, experience, selected_skin, consecutive_days, last_daily_reward
		 FROM profiles WHERE player = ?`,
		player,
	).Scan(&coins, &highScore, &level, &experience, &skin, &days, &lastReward)
	if errors.Is(err, sql.ErrNoRows) {
		return progress.DefaultProfile(), false, nil
	}
	if err != nil {
		return progress.Profile{}, false, fmt.Errorf("storage: cannot load profile: %w", err)
	}

	p := progress.DefaultProfile()
	if coins.Valid {
		p.Coins = int(coins.Int64)
	}
	if highScore.Valid {
		p.HighScore = int(highScore.Int64)
	}
	if level.Valid {
		p.Level = int(level.Int64)
	}
	if experience.Valid {
		p.Experience = int(experience.Int64)
	}
	if skin.Valid && skin.String != "" {
		p.SelectedSkin = skin.String
	}
	if days.Valid {
		p.ConsecutiveDays = int(days.Int64)
	}
	if lastReward.Valid {
		if t, err := time.Parse(time.RFC3339, lastReward.String); err == nil {
			p.LastDailyReward = t
		}
	}

	p.OwnedSkins, err = s.strings("SELECT skin_id FROM owned_skins WHERE player = ? ORDER BY rowid", player)
	if err != nil {
		return progress.Profile{}, false, err
	}
	p.Achievements, err = s.strings("SELECT name FROM achievements WHERE player = ? ORDER BY unlocked_at, rowid", player)
	if err != nil {
		return progress.Profile{}, false, err
	}

	return p.Normalize(), true, nil
}

func (s *Store) strings(query, player string) ([]string, error) {
	rows, err := s.db.Query(query, player)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profile lists: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// SaveProfile writes the player's profile, owned skins and achievements in
// one transaction. Achievements keep their original unlock time.
func (s *Store) SaveProfile(player string, p progress.Profile) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	var lastReward any
	if !p.LastDailyReward.IsZero() {
		lastReward = p.LastDailyReward.UTC().Format(time.RFC3339)
	}

	_, err = tx.Exec(
		`INSERT INTO profiles
		 (player, coins, high_score, level, experience, selected_skin, consecutive_days, last_daily_reward, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(player) DO UPDATE SET
			coins = excluded.coins,
			high_score = excluded.high_score,
			level = excluded.level,
			experience = excluded.experience,
			selected_skin = excluded.selected_skin,
			consecutive_days = excluded.consecutive_days,
			last_daily_reward = excluded.last_daily_reward,
			updated_at = excluded.updated_at`,
		player, p.Coins, p.HighScore, p.Level, p.Experience, p.SelectedSkin, p.ConsecutiveDays, lastReward,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save profile: %w", err)
	}

	for _, id := range p.OwnedSkins {
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO owned_skins (player, skin_id) VALUES (?, ?)", player, id,
		); err != nil {
			return fmt.Errorf("storage: cannot save owned skin: %w", err)
		}
	}
	for _, name := range p.Achievements {
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO achievements (player, name) VALUES (?, ?)", player, name,
		); err != nil {
			return fmt.Errorf("storage: cannot save achievement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit profile: %w", err)
	}
	return nil
}

// Players returns every player with a saved profile, by name.
func (s *Store) Players() ([]string, error) {
	rows, err := s.db.Query("SELECT player FROM profiles ORDER BY player")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query players: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
