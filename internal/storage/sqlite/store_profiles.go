package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verdantworks/growline/internal/progression/domain"
	"github.com/verdantworks/growline/internal/storage"
)

// ProfileStore methods

// PutProfile inserts or replaces a grower profile.
func (s *Store) PutProfile(ctx context.Context, profile domain.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	const query = `
INSERT INTO profiles (id, display_name, level, experience, skill_points, research_points, created_at_ms, updated_at_ms)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    display_name = excluded.display_name,
    level = excluded.level,
    experience = excluded.experience,
    skill_points = excluded.skill_points,
    research_points = excluded.research_points,
    updated_at_ms = excluded.updated_at_ms`

	_, err := s.sqlDB.ExecContext(ctx, query,
		profile.ID,
		profile.DisplayName,
		profile.Level,
		profile.Experience,
		profile.SkillPoints,
		profile.ResearchPoints,
		toMillis(profile.CreatedAt),
		toMillis(profile.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put profile: %w", err)
	}
	return nil
}

// GetProfile loads a profile by ID.
func (s *Store) GetProfile(ctx context.Context, id string) (domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return domain.Profile{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Profile{}, fmt.Errorf("storage is not configured")
	}

	const query = `
SELECT id, display_name, level, experience, skill_points, research_points, created_at_ms, updated_at_ms
FROM profiles WHERE id = ?`

	row := s.sqlDB.QueryRowContext(ctx, query, id)
	profile, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Profile{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// ListProfiles returns all profiles ordered by creation time.
func (s *Store) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	const query = `
SELECT id, display_name, level, experience, skill_points, research_points, created_at_ms, updated_at_ms
FROM profiles ORDER BY created_at_ms, id`

	rows, err := s.sqlDB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	return profiles, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (domain.Profile, error) {
	var profile domain.Profile
	var createdAt, updatedAt int64
	if err := row.Scan(
		&profile.ID,
		&profile.DisplayName,
		&profile.Level,
		&profile.Experience,
		&profile.SkillPoints,
		&profile.ResearchPoints,
		&createdAt,
		&updatedAt,
	); err != nil {
		return domain.Profile{}, err
	}
	profile.CreatedAt = fromMillis(createdAt)
	profile.UpdatedAt = fromMillis(updatedAt)
	return profile, nil
}
