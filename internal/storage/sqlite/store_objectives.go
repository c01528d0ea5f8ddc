package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verdantworks/growline/internal/progression/domain"
	"github.com/verdantworks/growline/internal/storage"
)

// ObjectiveStore methods

// PutObjective inserts or replaces an assigned objective.
func (s *Store) PutObjective(ctx context.Context, objective domain.Objective) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	const query = `
INSERT INTO objectives (id, profile_id, template_id, stat, progress, target, reward_experience, assigned_at_ms, expires_at_ms, completed_at_ms, expired_at_ms)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    progress = excluded.progress,
    completed_at_ms = excluded.completed_at_ms,
    expired_at_ms = excluded.expired_at_ms`

	_, err := s.sqlDB.ExecContext(ctx, query,
		objective.ID,
		objective.ProfileID,
		objective.TemplateID,
		objective.Stat,
		objective.Progress,
		objective.Target,
		objective.RewardExperience,
		toMillis(objective.AssignedAt),
		toMillis(objective.ExpiresAt),
		toNullMillis(objective.CompletedAt),
		toNullMillis(objective.ExpiredAt),
	)
	if err != nil {
		return fmt.Errorf("put objective: %w", err)
	}
	return nil
}

// GetObjective loads one objective by ID.
func (s *Store) GetObjective(ctx context.Context, id string) (domain.Objective, error) {
	if err := ctx.Err(); err != nil {
		return domain.Objective{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Objective{}, fmt.Errorf("storage is not configured")
	}

	const query = `
SELECT id, profile_id, template_id, stat, progress, target, reward_experience, assigned_at_ms, expires_at_ms, completed_at_ms, expired_at_ms
FROM objectives WHERE id = ?`

	row := s.sqlDB.QueryRowContext(ctx, query, id)
	objective, err := scanObjective(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Objective{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Objective{}, fmt.Errorf("get objective: %w", err)
	}
	return objective, nil
}

// ListObjectives returns all objectives for a profile ordered by deadline.
func (s *Store) ListObjectives(ctx context.Context, profileID string) ([]domain.Objective, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	const query = `
SELECT id, profile_id, template_id, stat, progress, target, reward_experience, assigned_at_ms, expires_at_ms, completed_at_ms, expired_at_ms
FROM objectives WHERE profile_id = ? ORDER BY expires_at_ms, id`

	rows, err := s.sqlDB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("list objectives: %w", err)
	}
	defer rows.Close()

	var objectives []domain.Objective
	for rows.Next() {
		objective, err := scanObjective(rows)
		if err != nil {
			return nil, fmt.Errorf("scan objective: %w", err)
		}
		objectives = append(objectives, objective)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read objectives: %w", err)
	}
	return objectives, nil
}

func scanObjective(row rowScanner) (domain.Objective, error) {
	var objective domain.Objective
	var assignedAt, expiresAt int64
	var completedAt, expiredAt sql.NullInt64
	if err := row.Scan(
		&objective.ID,
		&objective.ProfileID,
		&objective.TemplateID,
		&objective.Stat,
		&objective.Progress,
		&objective.Target,
		&objective.RewardExperience,
		&assignedAt,
		&expiresAt,
		&completedAt,
		&expiredAt,
	); err != nil {
		return domain.Objective{}, err
	}
	objective.AssignedAt = fromMillis(assignedAt)
	objective.ExpiresAt = fromMillis(expiresAt)
	objective.CompletedAt = fromNullMillis(completedAt)
	objective.ExpiredAt = fromNullMillis(expiredAt)
	return objective, nil
}
