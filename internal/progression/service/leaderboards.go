package service

import (
	"context"
	"errors"
	"time"

	"github.com/verdantworks/growline/internal/content"
	apperrors "github.com/verdantworks/growline/internal/platform/errors"
	"github.com/verdantworks/growline/internal/progression/domain"
	"github.com/verdantworks/growline/internal/progression/event"
	"github.com/verdantworks/growline/internal/storage"
)

// Leaderboards manages competitive boards and seasonal standings.
type Leaderboards struct {
	stores   Stores
	content  *content.Index
	profiles *Profiles
	journal  *Journal
	clock    func() time.Time
}

// NewLeaderboards creates a Leaderboards facade.
func NewLeaderboards(stores Stores, idx *content.Index, profiles *Profiles, journal *Journal) *Leaderboards {
	return &Leaderboards{
		stores:   stores,
		content:  idx,
		profiles: profiles,
		journal:  journal,
		clock:    time.Now,
	}
}

// SubmitResult describes the outcome of a score submission.
type SubmitResult struct {
	Entry domain.LeaderboardEntry
	// Improved reports whether the submission replaced the standing score.
	Improved bool
}

// SubmitScore records a score on a board for the current season. A score
// that does not improve on the profile's standing entry leaves the entry
// unchanged. Grant verification happens at the transport layer; by the time
// a submission reaches here it is authenticated.
func (l *Leaderboards) SubmitScore(ctx context.Context, profileID, boardID string, score int64) (SubmitResult, error) {
	board, ok := l.content.Board(boardID)
	if !ok {
		return SubmitResult{}, unknownBoard(boardID)
	}
	if _, err := l.profiles.Get(ctx, profileID); err != nil {
		return SubmitResult{}, err
	}

	now := l.clock().UTC()
	entry := domain.LeaderboardEntry{
		BoardID:   board.ID,
		Season:    board.Season,
		ProfileID: profileID,
		Score:     score,
		UpdatedAt: now,
	}

	current, err := l.stores.Leaderboards.GetLeaderboardEntry(ctx, board.ID, board.Season, profileID)
	improved := false
	switch {
	case errors.Is(err, storage.ErrNotFound):
		improved = true
	case err != nil:
		return SubmitResult{}, err
	default:
		improved = board.Improves(score, current.Score)
		if !improved {
			entry = current
		}
	}

	if improved {
		if err := l.stores.Leaderboards.UpsertLeaderboardEntry(ctx, entry); err != nil {
			return SubmitResult{}, err
		}
	}

	l.journal.emitOrLog(ctx, profileID, event.TypeScoreSubmitted, board.ID, event.ScoreSubmittedPayload{
		BoardID:  board.ID,
		Season:   board.Season,
		Score:    score,
		Improved: improved,
	})
	return SubmitResult{Entry: entry, Improved: improved}, nil
}

// Standings returns a page of the board's current-season standings with
// dense ranks.
func (l *Leaderboards) Standings(ctx context.Context, boardID string, limit, offset int) ([]domain.LeaderboardEntry, error) {
	board, ok := l.content.Board(boardID)
	if !ok {
		return nil, unknownBoard(boardID)
	}
	return l.stores.Leaderboards.ListStandings(ctx, board.ID, board.Season, board.Order, limit, offset)
}

// AroundMe returns the standings window centered on a profile's entry:
// up to window entries on each side.
func (l *Leaderboards) AroundMe(ctx context.Context, boardID, profileID string, window int) ([]domain.LeaderboardEntry, error) {
	board, ok := l.content.Board(boardID)
	if !ok {
		return nil, unknownBoard(boardID)
	}
	if window < 0 {
		window = 0
	}

	standings, err := l.stores.Leaderboards.ListStandings(ctx, board.ID, board.Season, board.Order, 0, 0)
	if err != nil {
		return nil, err
	}

	center := -1
	for i, entry := range standings {
		if entry.ProfileID == profileID {
			center = i
			break
		}
	}
	if center < 0 {
		return nil, apperrors.WithMetadata(apperrors.CodeProfileNotFound,
			"profile has no entry on this board", map[string]string{
				"profile_id": profileID,
				"board_id":   boardID,
			})
	}

	start := center - window
	if start < 0 {
		start = 0
	}
	end := center + window + 1
	if end > len(standings) {
		end = len(standings)
	}
	return standings[start:end], nil
}

func unknownBoard(boardID string) error {
	return apperrors.WithMetadata(apperrors.CodeLeaderboardUnknownBoard, "unknown leaderboard",
		map[string]string{"board_id": boardID})
}
