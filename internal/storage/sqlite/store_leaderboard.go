package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verdantworks/growline/internal/progression/domain"
	"github.com/verdantworks/growline/internal/storage"
)

// LeaderboardStore methods

// UpsertLeaderboardEntry inserts or replaces a board entry.
func (s *Store) UpsertLeaderboardEntry(ctx context.Context, entry domain.LeaderboardEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	const query = `
INSERT INTO leaderboard_entries (board_id, season, profile_id, score, updated_at_ms)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(board_id, season, profile_id) DO UPDATE SET
    score = excluded.score,
    updated_at_ms = excluded.updated_at_ms`

	_, err := s.sqlDB.ExecContext(ctx, query,
		entry.BoardID,
		entry.Season,
		entry.ProfileID,
		entry.Score,
		toMillis(entry.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert leaderboard entry: %w", err)
	}
	return nil
}

// GetLeaderboardEntry loads one board entry. The returned entry carries no
// rank; ranks are assigned by ListStandings.
func (s *Store) GetLeaderboardEntry(ctx context.Context, boardID, season, profileID string) (domain.LeaderboardEntry, error) {
	if err := ctx.Err(); err != nil {
		return domain.LeaderboardEntry{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.LeaderboardEntry{}, fmt.Errorf("storage is not configured")
	}

	const query = `
SELECT board_id, season, profile_id, score, updated_at_ms
FROM leaderboard_entries WHERE board_id = ? AND season = ? AND profile_id = ?`

	var entry domain.LeaderboardEntry
	var updatedAt int64
	err := s.sqlDB.QueryRowContext(ctx, query, boardID, season, profileID).Scan(
		&entry.BoardID,
		&entry.Season,
		&entry.ProfileID,
		&entry.Score,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.LeaderboardEntry{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.LeaderboardEntry{}, fmt.Errorf("get leaderboard entry: %w", err)
	}
	entry.UpdatedAt = fromMillis(updatedAt)
	return entry, nil
}

// ListStandings returns board entries sorted by score with dense ranks
// assigned. Ties share a rank. Earlier submission wins the tiebreak within
// a shared rank.
func (s *Store) ListStandings(ctx context.Context, boardID, season string, order domain.ScoreOrder, limit, offset int) ([]domain.LeaderboardEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	direction := "DESC"
	if order == domain.ScoreOrderAscending {
		direction = "ASC"
	}
	if limit <= 0 {
		limit = -1
	}
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
SELECT board_id, season, profile_id, score, updated_at_ms
FROM leaderboard_entries
WHERE board_id = ? AND season = ?
ORDER BY score %s, updated_at_ms ASC, profile_id ASC
LIMIT ? OFFSET ?`, direction)

	rows, err := s.sqlDB.QueryContext(ctx, query, boardID, season, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var entry domain.LeaderboardEntry
		var updatedAt int64
		if err := rows.Scan(
			&entry.BoardID,
			&entry.Season,
			&entry.ProfileID,
			&entry.Score,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan standing: %w", err)
		}
		entry.UpdatedAt = fromMillis(updatedAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read standings: %w", err)
	}

	if err := s.assignDenseRanks(ctx, entries, offset > 0, boardID, season, order); err != nil {
		return nil, err
	}
	return entries, nil
}

// assignDenseRanks fills the Rank field on a sorted page. When the page
// starts mid-board the rank baseline comes from counting distinct better
// scores ahead of the first entry.
func (s *Store) assignDenseRanks(ctx context.Context, entries []domain.LeaderboardEntry, offsetPage bool, boardID, season string, order domain.ScoreOrder) error {
	if len(entries) == 0 {
		return nil
	}

	rank := 1
	if offsetPage {
		comparison := ">"
		if order == domain.ScoreOrderAscending {
			comparison = "<"
		}
		query := fmt.Sprintf(`
SELECT COUNT(DISTINCT score) FROM leaderboard_entries
WHERE board_id = ? AND season = ? AND score %s ?`, comparison)
		var better int
		if err := s.sqlDB.QueryRowContext(ctx, query, boardID, season, entries[0].Score).Scan(&better); err != nil {
			return fmt.Errorf("count better scores: %w", err)
		}
		rank = better + 1
	}

	entries[0].Rank = rank
	for i := 1; i < len(entries); i++ {
		if entries[i].Score != entries[i-1].Score {
			rank++
		}
		entries[i].Rank = rank
	}
	return nil
}

var _ storage.LeaderboardStore = (*Store)(nil)
