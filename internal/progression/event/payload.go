package event

// ProfileCreatedPayload captures the payload for profile.created events.
type ProfileCreatedPayload struct {
	DisplayName string `json:"display_name"`
}

// ExperienceGainedPayload captures the payload for profile.experience_gained events.
type ExperienceGainedPayload struct {
	Amount int64  `json:"amount"`
	Total  int64  `json:"total"`
	Source string `json:"source,omitempty"`
}

// LevelUpPayload captures the payload for profile.level_up events.
type LevelUpPayload struct {
	FromLevel          int `json:"from_level"`
	ToLevel            int `json:"to_level"`
	SkillPointsAwarded int `json:"skill_points_awarded"`
}

// SkillUnlockedPayload captures the payload for skill.unlocked events.
type SkillUnlockedPayload struct {
	NodeID string `json:"node_id"`
	Branch string `json:"branch"`
	Cost   int    `json:"cost"`
}

// SkillRankRaisedPayload captures the payload for skill.rank_raised events.
type SkillRankRaisedPayload struct {
	NodeID   string `json:"node_id"`
	FromRank int    `json:"from_rank"`
	ToRank   int    `json:"to_rank"`
	Cost     int    `json:"cost"`
}

// SynergyActivatedPayload captures the payload for skill.synergy_activated events.
type SynergyActivatedPayload struct {
	SynergyID string `json:"synergy_id"`
}

// ResearchStartedPayload captures the payload for research.started events.
type ResearchStartedPayload struct {
	ProjectID string `json:"project_id"`
	Cost      int    `json:"cost"`
}

// ResearchPhaseCompletedPayload captures the payload for research.phase_completed events.
type ResearchPhaseCompletedPayload struct {
	ProjectID  string `json:"project_id"`
	PhaseIndex int    `json:"phase_index"`
	PhaseName  string `json:"phase_name"`
}

// ResearchCompletedPayload captures the payload for research.completed events.
type ResearchCompletedPayload struct {
	ProjectID string `json:"project_id"`
}

// AchievementProgressedPayload captures the payload for achievement.progressed events.
type AchievementProgressedPayload struct {
	AchievementID string `json:"achievement_id"`
	Delta         int64  `json:"delta"`
	Progress      int64  `json:"progress"`
	Target        int64  `json:"target"`
}

// AchievementCompletedPayload captures the payload for achievement.completed events.
type AchievementCompletedPayload struct {
	AchievementID string `json:"achievement_id"`
	Tier          string `json:"tier"`
	Points        int    `json:"points"`
}

// ObjectiveAssignedPayload captures the payload for objective.assigned events.
type ObjectiveAssignedPayload struct {
	ObjectiveID string `json:"objective_id"`
	TemplateID  string `json:"template_id"`
	ExpiresAt   int64  `json:"expires_at"`
}

// ObjectiveCompletedPayload captures the payload for objective.completed events.
type ObjectiveCompletedPayload struct {
	ObjectiveID      string `json:"objective_id"`
	TemplateID       string `json:"template_id"`
	RewardExperience int64  `json:"reward_experience"`
}

// ObjectiveExpiredPayload captures the payload for objective.expired events.
type ObjectiveExpiredPayload struct {
	ObjectiveID string `json:"objective_id"`
	TemplateID  string `json:"template_id"`
	Progress    int64  `json:"progress"`
	Target      int64  `json:"target"`
}

// CampaignPhaseAdvancedPayload captures the payload for campaign.phase_advanced events.
type CampaignPhaseAdvancedPayload struct {
	FromPhase string `json:"from_phase"`
	ToPhase   string `json:"to_phase"`
}

// ScoreSubmittedPayload captures the payload for leaderboard.score_submitted events.
type ScoreSubmittedPayload struct {
	BoardID  string `json:"board_id"`
	Season   string `json:"season"`
	Score    int64  `json:"score"`
	Improved bool   `json:"improved"`
}
