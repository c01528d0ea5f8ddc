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

// Achievements tracks stat-driven achievement progress.
type Achievements struct {
	stores  Stores
	content *content.Index
	journal *Journal
	clock   func() time.Time
}

// NewAchievements creates an Achievements facade.
func NewAchievements(stores Stores, idx *content.Index, journal *Journal) *Achievements {
	return &Achievements{
		stores:  stores,
		content: idx,
		journal: journal,
		clock:   time.Now,
	}
}

// RecordStat fans a stat delta into every achievement driven by that stat.
// Progress clamps to the target and completion fires at most once per
// achievement. The updated progress records are returned.
func (a *Achievements) RecordStat(ctx context.Context, profileID, stat string, delta int64) ([]domain.AchievementProgress, error) {
	definitions := a.content.AchievementsForStat(stat)
	if len(definitions) == 0 {
		return nil, nil
	}

	var updated []domain.AchievementProgress
	for _, definition := range definitions {
		progress, err := a.stores.Achievements.GetAchievementProgress(ctx, profileID, definition.ID)
		if errors.Is(err, storage.ErrNotFound) {
			progress = domain.AchievementProgress{ProfileID: profileID, AchievementID: definition.ID}
		} else if err != nil {
			return nil, err
		}
		if progress.Completed() {
			continue
		}

		next, completed := progress.Apply(definition, delta, a.clock)
		if next.Progress == progress.Progress && !completed {
			continue
		}
		if err := a.stores.Achievements.PutAchievementProgress(ctx, next); err != nil {
			return nil, err
		}
		updated = append(updated, next)

		a.journal.emitOrLog(ctx, profileID, event.TypeAchievementProgressed, definition.ID, event.AchievementProgressedPayload{
			AchievementID: definition.ID,
			Delta:         delta,
			Progress:      next.Progress,
			Target:        definition.Target,
		})
		if completed {
			a.journal.emitOrLog(ctx, profileID, event.TypeAchievementCompleted, definition.ID, event.AchievementCompletedPayload{
				AchievementID: definition.ID,
				Tier:          definition.Tier.String(),
				Points:        definition.Points,
			})
		}
	}
	return updated, nil
}

// AchievementStatus pairs a definition with a profile's progress.
type AchievementStatus struct {
	Achievement domain.Achievement
	Progress    domain.AchievementProgress
}

// List returns achievement statuses for a profile. Hidden achievements are
// omitted until completed unless includeHidden is set.
func (a *Achievements) List(ctx context.Context, profileID string, includeHidden bool) ([]AchievementStatus, error) {
	records, err := a.stores.Achievements.ListAchievementProgress(ctx, profileID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.AchievementProgress, len(records))
	for _, record := range records {
		byID[record.AchievementID] = record
	}

	pack := a.content.Pack()
	statuses := make([]AchievementStatus, 0, len(pack.Achievements))
	for _, definition := range pack.Achievements {
		progress, tracked := byID[definition.ID]
		if !tracked {
			progress = domain.AchievementProgress{ProfileID: profileID, AchievementID: definition.ID}
		}
		if definition.Hidden && !includeHidden && !progress.Completed() {
			continue
		}
		statuses = append(statuses, AchievementStatus{Achievement: definition, Progress: progress})
	}
	return statuses, nil
}

// Get returns one achievement status.
func (a *Achievements) Get(ctx context.Context, profileID, achievementID string) (AchievementStatus, error) {
	definition, ok := a.content.Achievement(achievementID)
	if !ok {
		return AchievementStatus{}, apperrors.WithMetadata(apperrors.CodeAchievementUnknown,
			"unknown achievement", map[string]string{"achievement_id": achievementID})
	}

	progress, err := a.stores.Achievements.GetAchievementProgress(ctx, profileID, achievementID)
	if errors.Is(err, storage.ErrNotFound) {
		progress = domain.AchievementProgress{ProfileID: profileID, AchievementID: achievementID}
	} else if err != nil {
		return AchievementStatus{}, err
	}
	return AchievementStatus{Achievement: definition, Progress: progress}, nil
}

// Score sums the points of every completed achievement.
func (a *Achievements) Score(ctx context.Context, profileID string) (int, error) {
	records, err := a.stores.Achievements.ListAchievementProgress(ctx, profileID)
	if err != nil {
		return 0, err
	}
	score := 0
	for _, record := range records {
		if !record.Completed() {
			continue
		}
		if definition, ok := a.content.Achievement(record.AchievementID); ok {
			score += definition.Points
		}
	}
	return score, nil
}

// completedAchievements returns the set of earned achievement IDs.
func (a *Achievements) completedAchievements(ctx context.Context, profileID string) (map[string]bool, error) {
	records, err := a.stores.Achievements.ListAchievementProgress(ctx, profileID)
	if err != nil {
		return nil, err
	}
	completed := make(map[string]bool, len(records))
	for _, record := range records {
		if record.Completed() {
			completed[record.AchievementID] = true
		}
	}
	return completed, nil
}
