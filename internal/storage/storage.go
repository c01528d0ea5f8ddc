package storage

import (
	"context"
	"time"

	apperrors "github.com/verdantworks/growline/internal/platform/errors"
	"github.com/verdantworks/growline/internal/progression/domain"
	"github.com/verdantworks/growline/internal/progression/event"
)

// ErrNotFound indicates a requested persistence record is missing.
// Callers use this to differentiate between legitimate "no such entity"
// states and transport or data corruption failures.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// ProfileStore persists grower profiles.
type ProfileStore interface {
	PutProfile(ctx context.Context, profile domain.Profile) error
	GetProfile(ctx context.Context, id string) (domain.Profile, error)
	ListProfiles(ctx context.Context) ([]domain.Profile, error)
}

// SkillStore persists per-profile skill ranks and active synergies.
type SkillStore interface {
	PutSkillRank(ctx context.Context, rank domain.SkillRank) error
	GetSkillRank(ctx context.Context, profileID, nodeID string) (domain.SkillRank, error)
	ListSkillRanks(ctx context.Context, profileID string) ([]domain.SkillRank, error)
	PutActiveSynergy(ctx context.Context, profileID, synergyID string, activatedAt time.Time) error
	ListActiveSynergies(ctx context.Context, profileID string) ([]string, error)
}

// ResearchStore persists per-profile research states.
type ResearchStore interface {
	PutResearchState(ctx context.Context, state domain.ResearchState) error
	GetResearchState(ctx context.Context, profileID, projectID string) (domain.ResearchState, error)
	ListResearchStates(ctx context.Context, profileID string) ([]domain.ResearchState, error)
}

// AchievementStore persists per-profile achievement progress.
type AchievementStore interface {
	PutAchievementProgress(ctx context.Context, progress domain.AchievementProgress) error
	GetAchievementProgress(ctx context.Context, profileID, achievementID string) (domain.AchievementProgress, error)
	ListAchievementProgress(ctx context.Context, profileID string) ([]domain.AchievementProgress, error)
}

// StatStore persists lifetime gameplay stat totals per profile.
type StatStore interface {
	// AddStat adds a delta to a stat total and returns the new total.
	AddStat(ctx context.Context, profileID, stat string, delta int64) (int64, error)
	GetStatTotals(ctx context.Context, profileID string) (map[string]int64, error)
}

// ObjectiveStore persists assigned objectives.
type ObjectiveStore interface {
	PutObjective(ctx context.Context, objective domain.Objective) error
	GetObjective(ctx context.Context, id string) (domain.Objective, error)
	ListObjectives(ctx context.Context, profileID string) ([]domain.Objective, error)
}

// CampaignStore persists per-profile campaign positions.
type CampaignStore interface {
	PutCampaignState(ctx context.Context, state domain.CampaignState) error
	GetCampaignState(ctx context.Context, profileID string) (domain.CampaignState, error)
}

// LeaderboardStore persists board entries keyed by board, season, and profile.
type LeaderboardStore interface {
	UpsertLeaderboardEntry(ctx context.Context, entry domain.LeaderboardEntry) error
	GetLeaderboardEntry(ctx context.Context, boardID, season, profileID string) (domain.LeaderboardEntry, error)
	// ListStandings returns entries sorted by the board order with dense
	// ranks assigned. A non-positive limit returns everything.
	ListStandings(ctx context.Context, boardID, season string, order domain.ScoreOrder, limit, offset int) ([]domain.LeaderboardEntry, error)
}

// ListEventsRequest bounds an event journal read.
type ListEventsRequest struct {
	ProfileID string
	// Filter is an AIP-160 filter expression over journal fields.
	Filter string
	// PageSize bounds the page; non-positive uses the store default.
	PageSize int
	// PageToken is an opaque cursor from a previous response.
	PageToken string
}

// ListEventsResult is one page of journal events.
type ListEventsResult struct {
	Events        []event.Event
	NextPageToken string
}

// EventStore persists the append-only progression journal.
type EventStore interface {
	// AppendEvent assigns the per-profile sequence and content hash, then
	// persists the event. The stored event is returned.
	AppendEvent(ctx context.Context, evt event.Event) (event.Event, error)
	ListEvents(ctx context.Context, req ListEventsRequest) (ListEventsResult, error)
}

// TelemetryEvent captures one operational telemetry record.
type TelemetryEvent struct {
	Timestamp time.Time
	Severity  string
	Name      string
	ProfileID string
	Detail    string
}

// TelemetryStore persists operational telemetry events.
type TelemetryStore interface {
	AppendTelemetryEvent(ctx context.Context, evt TelemetryEvent) error
}

// ContentStore persists uploaded content pack documents.
type ContentStore interface {
	PutContentPack(ctx context.Context, name string, raw []byte, updatedAt time.Time) error
	GetContentPack(ctx context.Context, name string) ([]byte, error)
}
