package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verdantworks/growline/internal/progression/domain"
	"github.com/verdantworks/growline/internal/storage"
)

// CampaignStore methods

// PutCampaignState inserts or replaces a profile's campaign position.
func (s *Store) PutCampaignState(ctx context.Context, state domain.CampaignState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	const query = `
INSERT INTO campaign_states (profile_id, phase_index, updated_at_ms)
VALUES (?, ?, ?)
ON CONFLICT(profile_id) DO UPDATE SET
    phase_index = excluded.phase_index,
    updated_at_ms = excluded.updated_at_ms`

	_, err := s.sqlDB.ExecContext(ctx, query,
		state.ProfileID,
		state.PhaseIndex,
		toMillis(state.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put campaign state: %w", err)
	}
	return nil
}

// GetCampaignState loads a profile's campaign position.
func (s *Store) GetCampaignState(ctx context.Context, profileID string) (domain.CampaignState, error) {
	if err := ctx.Err(); err != nil {
		return domain.CampaignState{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.CampaignState{}, fmt.Errorf("storage is not configured")
	}

	const query = `
SELECT profile_id, phase_index, updated_at_ms
FROM campaign_states WHERE profile_id = ?`

	var state domain.CampaignState
	var updatedAt int64
	err := s.sqlDB.QueryRowContext(ctx, query, profileID).Scan(
		&state.ProfileID,
		&state.PhaseIndex,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CampaignState{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.CampaignState{}, fmt.Errorf("get campaign state: %w", err)
	}
	state.UpdatedAt = fromMillis(updatedAt)
	return state, nil
}
