package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verdantworks/growline/internal/progression/domain"
	"github.com/verdantworks/growline/internal/storage"
)

// AchievementStore methods

// PutAchievementProgress inserts or replaces achievement progress for a profile.
func (s *Store) PutAchievementProgress(ctx context.Context, progress domain.AchievementProgress) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	const query = `
INSERT INTO achievement_progress (profile_id, achievement_id, progress, completed_at_ms)
VALUES (?, ?, ?, ?)
ON CONFLICT(profile_id, achievement_id) DO UPDATE SET
    progress = excluded.progress,
    completed_at_ms = excluded.completed_at_ms`

	_, err := s.sqlDB.ExecContext(ctx, query,
		progress.ProfileID,
		progress.AchievementID,
		progress.Progress,
		toNullMillis(progress.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("put achievement progress: %w", err)
	}
	return nil
}

// GetAchievementProgress loads one achievement progress record.
func (s *Store) GetAchievementProgress(ctx context.Context, profileID, achievementID string) (domain.AchievementProgress, error) {
	if err := ctx.Err(); err != nil {
		return domain.AchievementProgress{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.AchievementProgress{}, fmt.Errorf("storage is not configured")
	}

	const query = `
SELECT profile_id, achievement_id, progress, completed_at_ms
FROM achievement_progress WHERE profile_id = ? AND achievement_id = ?`

	row := s.sqlDB.QueryRowContext(ctx, query, profileID, achievementID)
	progress, err := scanAchievementProgress(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.AchievementProgress{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.AchievementProgress{}, fmt.Errorf("get achievement progress: %w", err)
	}
	return progress, nil
}

// ListAchievementProgress returns all achievement progress for a profile.
func (s *Store) ListAchievementProgress(ctx context.Context, profileID string) ([]domain.AchievementProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	const query = `
SELECT profile_id, achievement_id, progress, completed_at_ms
FROM achievement_progress WHERE profile_id = ? ORDER BY achievement_id`

	rows, err := s.sqlDB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("list achievement progress: %w", err)
	}
	defer rows.Close()

	var records []domain.AchievementProgress
	for rows.Next() {
		progress, err := scanAchievementProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan achievement progress: %w", err)
		}
		records = append(records, progress)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read achievement progress: %w", err)
	}
	return records, nil
}

func scanAchievementProgress(row rowScanner) (domain.AchievementProgress, error) {
	var progress domain.AchievementProgress
	var completedAt sql.NullInt64
	if err := row.Scan(
		&progress.ProfileID,
		&progress.AchievementID,
		&progress.Progress,
		&completedAt,
	); err != nil {
		return domain.AchievementProgress{}, err
	}
	progress.CompletedAt = fromNullMillis(completedAt)
	return progress, nil
}
