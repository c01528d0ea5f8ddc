package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/verdantworks/growline/internal/progression/domain"
	"github.com/verdantworks/growline/internal/storage"
)

// SkillStore methods

// PutSkillRank inserts or replaces a skill rank for a profile.
func (s *Store) PutSkillRank(ctx context.Context, rank domain.SkillRank) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	const query = `
INSERT INTO skill_ranks (profile_id, node_id, level, unlocked_at_ms)
VALUES (?, ?, ?, ?)
ON CONFLICT(profile_id, node_id) DO UPDATE SET
    level = excluded.level`

	_, err := s.sqlDB.ExecContext(ctx, query,
		rank.ProfileID,
		rank.NodeID,
		rank.Level,
		toMillis(rank.UnlockedAt),
	)
	if err != nil {
		return fmt.Errorf("put skill rank: %w", err)
	}
	return nil
}

// GetSkillRank loads one skill rank.
func (s *Store) GetSkillRank(ctx context.Context, profileID, nodeID string) (domain.SkillRank, error) {
	if err := ctx.Err(); err != nil {
		return domain.SkillRank{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.SkillRank{}, fmt.Errorf("storage is not configured")
	}

	const query = `
SELECT profile_id, node_id, level, unlocked_at_ms
FROM skill_ranks WHERE profile_id = ? AND node_id = ?`

	row := s.sqlDB.QueryRowContext(ctx, query, profileID, nodeID)
	rank, err := scanSkillRank(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SkillRank{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.SkillRank{}, fmt.Errorf("get skill rank: %w", err)
	}
	return rank, nil
}

// ListSkillRanks returns all skill ranks for a profile.
func (s *Store) ListSkillRanks(ctx context.Context, profileID string) ([]domain.SkillRank, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	const query = `
SELECT profile_id, node_id, level, unlocked_at_ms
FROM skill_ranks WHERE profile_id = ? ORDER BY node_id`

	rows, err := s.sqlDB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("list skill ranks: %w", err)
	}
	defer rows.Close()

	var ranks []domain.SkillRank
	for rows.Next() {
		rank, err := scanSkillRank(rows)
		if err != nil {
			return nil, fmt.Errorf("scan skill rank: %w", err)
		}
		ranks = append(ranks, rank)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read skill ranks: %w", err)
	}
	return ranks, nil
}

// PutActiveSynergy records an activated synergy for a profile. Re-activating
// an existing synergy keeps the original activation time.
func (s *Store) PutActiveSynergy(ctx context.Context, profileID, synergyID string, activatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	const query = `
INSERT INTO active_synergies (profile_id, synergy_id, activated_at_ms)
VALUES (?, ?, ?)
ON CONFLICT(profile_id, synergy_id) DO NOTHING`

	_, err := s.sqlDB.ExecContext(ctx, query, profileID, synergyID, toMillis(activatedAt))
	if err != nil {
		return fmt.Errorf("put active synergy: %w", err)
	}
	return nil
}

// ListActiveSynergies returns the synergy IDs active for a profile.
func (s *Store) ListActiveSynergies(ctx context.Context, profileID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	const query = `
SELECT synergy_id FROM active_synergies WHERE profile_id = ? ORDER BY synergy_id`

	rows, err := s.sqlDB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("list active synergies: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan synergy id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read active synergies: %w", err)
	}
	return ids, nil
}

func scanSkillRank(row rowScanner) (domain.SkillRank, error) {
	var rank domain.SkillRank
	var unlockedAt int64
	if err := row.Scan(&rank.ProfileID, &rank.NodeID, &rank.Level, &unlockedAt); err != nil {
		return domain.SkillRank{}, err
	}
	rank.UnlockedAt = fromMillis(unlockedAt)
	return rank, nil
}
