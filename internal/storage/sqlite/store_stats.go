package sqlite

import (
	"context"
	"fmt"

	"github.com/verdantworks/growline/internal/storage"
)

// StatStore methods

// AddStat adds a delta to a profile's lifetime stat total and returns the
// new total.
func (s *Store) AddStat(ctx context.Context, profileID, stat string, delta int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}

	const query = `
INSERT INTO stat_totals (profile_id, stat, total)
VALUES (?, ?, ?)
ON CONFLICT(profile_id, stat) DO UPDATE SET
    total = total + excluded.total
RETURNING total`

	var total int64
	if err := s.sqlDB.QueryRowContext(ctx, query, profileID, stat, delta).Scan(&total); err != nil {
		return 0, fmt.Errorf("add stat: %w", err)
	}
	return total, nil
}

// GetStatTotals returns all lifetime stat totals for a profile.
func (s *Store) GetStatTotals(ctx context.Context, profileID string) (map[string]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT stat, total FROM stat_totals WHERE profile_id = ?`, profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("get stat totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int64)
	for rows.Next() {
		var stat string
		var total int64
		if err := rows.Scan(&stat, &total); err != nil {
			return nil, fmt.Errorf("scan stat total: %w", err)
		}
		totals[stat] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read stat totals: %w", err)
	}
	return totals, nil
}

var _ storage.StatStore = (*Store)(nil)
