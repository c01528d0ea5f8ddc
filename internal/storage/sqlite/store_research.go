package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verdantworks/growline/internal/progression/domain"
	"github.com/verdantworks/growline/internal/storage"
)

// ResearchStore methods

// PutResearchState inserts or replaces a research state for a profile.
func (s *Store) PutResearchState(ctx context.Context, state domain.ResearchState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	const query = `
INSERT INTO research_states (profile_id, project_id, phase_index, phase_progress, completed, started_at_ms, completed_at_ms)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(profile_id, project_id) DO UPDATE SET
    phase_index = excluded.phase_index,
    phase_progress = excluded.phase_progress,
    completed = excluded.completed,
    completed_at_ms = excluded.completed_at_ms`

	completed := 0
	if state.Completed {
		completed = 1
	}
	_, err := s.sqlDB.ExecContext(ctx, query,
		state.ProfileID,
		state.ProjectID,
		state.PhaseIndex,
		state.PhaseProgress,
		completed,
		toMillis(state.StartedAt),
		toNullMillis(state.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("put research state: %w", err)
	}
	return nil
}

// GetResearchState loads one research state.
func (s *Store) GetResearchState(ctx context.Context, profileID, projectID string) (domain.ResearchState, error) {
	if err := ctx.Err(); err != nil {
		return domain.ResearchState{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.ResearchState{}, fmt.Errorf("storage is not configured")
	}

	const query = `
SELECT profile_id, project_id, phase_index, phase_progress, completed, started_at_ms, completed_at_ms
FROM research_states WHERE profile_id = ? AND project_id = ?`

	row := s.sqlDB.QueryRowContext(ctx, query, profileID, projectID)
	state, err := scanResearchState(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ResearchState{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.ResearchState{}, fmt.Errorf("get research state: %w", err)
	}
	return state, nil
}

// ListResearchStates returns all research states for a profile.
func (s *Store) ListResearchStates(ctx context.Context, profileID string) ([]domain.ResearchState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	const query = `
SELECT profile_id, project_id, phase_index, phase_progress, completed, started_at_ms, completed_at_ms
FROM research_states WHERE profile_id = ? ORDER BY project_id`

	rows, err := s.sqlDB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("list research states: %w", err)
	}
	defer rows.Close()

	var states []domain.ResearchState
	for rows.Next() {
		state, err := scanResearchState(rows)
		if err != nil {
			return nil, fmt.Errorf("scan research state: %w", err)
		}
		states = append(states, state)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read research states: %w", err)
	}
	return states, nil
}

func scanResearchState(row rowScanner) (domain.ResearchState, error) {
	var state domain.ResearchState
	var completed int
	var startedAt int64
	var completedAt sql.NullInt64
	if err := row.Scan(
		&state.ProfileID,
		&state.ProjectID,
		&state.PhaseIndex,
		&state.PhaseProgress,
		&completed,
		&startedAt,
		&completedAt,
	); err != nil {
		return domain.ResearchState{}, err
	}
	state.Completed = completed != 0
	state.StartedAt = fromMillis(startedAt)
	state.CompletedAt = fromNullMillis(completedAt)
	return state, nil
}
