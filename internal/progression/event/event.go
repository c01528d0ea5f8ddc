package event

import "time"

// Type identifies the type of a progression event.
type Type string

// Profile lifecycle events.
const (
	// TypeProfileCreated records the creation of a grower profile.
	TypeProfileCreated Type = "profile.created"
	// TypeExperienceGained records an experience grant.
	TypeExperienceGained Type = "profile.experience_gained"
	// TypeLevelUp records a level increase.
	TypeLevelUp Type = "profile.level_up"
)

// Skill events.
const (
	// TypeSkillUnlocked records a skill node's first rank.
	TypeSkillUnlocked Type = "skill.unlocked"
	// TypeSkillRankRaised records a rank increase on an unlocked node.
	TypeSkillRankRaised Type = "skill.rank_raised"
	// TypeSynergyActivated records a synergy crossing its thresholds.
	TypeSynergyActivated Type = "skill.synergy_activated"
)

// Research events.
const (
	// TypeResearchStarted records a research project starting.
	TypeResearchStarted Type = "research.started"
	// TypeResearchPhaseCompleted records one phase finishing.
	TypeResearchPhaseCompleted Type = "research.phase_completed"
	// TypeResearchCompleted records the final phase finishing.
	TypeResearchCompleted Type = "research.completed"
)

// Achievement events.
const (
	// TypeAchievementProgressed records an achievement progress delta.
	TypeAchievementProgressed Type = "achievement.progressed"
	// TypeAchievementCompleted records an achievement being earned.
	TypeAchievementCompleted Type = "achievement.completed"
)

// Objective events.
const (
	// TypeObjectiveAssigned records an objective being assigned.
	TypeObjectiveAssigned Type = "objective.assigned"
	// TypeObjectiveCompleted records an objective finishing.
	TypeObjectiveCompleted Type = "objective.completed"
	// TypeObjectiveExpired records an objective passing its deadline unfinished.
	TypeObjectiveExpired Type = "objective.expired"
)

// Campaign events.
const (
	// TypeCampaignPhaseAdvanced records entry into the next campaign phase.
	TypeCampaignPhaseAdvanced Type = "campaign.phase_advanced"
)

// Leaderboard events.
const (
	// TypeScoreSubmitted records an accepted leaderboard score.
	TypeScoreSubmitted Type = "leaderboard.score_submitted"
)

// Event represents an immutable entry in the progression journal.
type Event struct {
	// ProfileID is the profile this event belongs to.
	ProfileID string
	// Seq is the event sequence number within the profile (starts at 1).
	// Assigned by storage on append.
	Seq uint64
	// Hash is the content-addressed identity (SHA-256 truncated to 128-bit).
	// Assigned by storage on append.
	Hash string
	// Timestamp is when the event occurred.
	Timestamp time.Time
	// Type identifies the kind of event.
	Type Type
	// EntityType is the type of entity affected (skill, achievement, etc.).
	EntityType string
	// EntityID is the ID of the entity affected.
	EntityID string
	// PayloadJSON holds event-specific data as JSON.
	PayloadJSON []byte
}

// knownTypes is the closed set of journal event types.
var knownTypes = map[Type]struct{}{
	TypeProfileCreated:         {},
	TypeExperienceGained:       {},
	TypeLevelUp:                {},
	TypeSkillUnlocked:          {},
	TypeSkillRankRaised:        {},
	TypeSynergyActivated:       {},
	TypeResearchStarted:        {},
	TypeResearchPhaseCompleted: {},
	TypeResearchCompleted:      {},
	TypeAchievementProgressed:  {},
	TypeAchievementCompleted:   {},
	TypeObjectiveAssigned:      {},
	TypeObjectiveCompleted:     {},
	TypeObjectiveExpired:       {},
	TypeCampaignPhaseAdvanced:  {},
	TypeScoreSubmitted:         {},
}

// IsValid reports whether the event type is one of the declared journal
// types.
func (t Type) IsValid() bool {
	_, ok := knownTypes[t]
	return ok
}

// Domain returns the domain prefix of the event type (e.g., "skill", "research").
func (t Type) Domain() string {
	for i, c := range t {
		if c == '.' {
			return string(t[:i])
		}
	}
	return string(t)
}
