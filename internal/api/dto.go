package api

import (
	"encoding/json"
	"time"

	"github.com/verdantworks/growline/internal/progression/domain"
	"github.com/verdantworks/growline/internal/progression/engine"
	"github.com/verdantworks/growline/internal/progression/event"
	"github.com/verdantworks/growline/internal/progression/service"
)

type profileResponse struct {
	ID             string    `json:"id"`
	DisplayName    string    `json:"display_name"`
	Level          int       `json:"level"`
	Experience     int64     `json:"experience"`
	SkillPoints    int       `json:"skill_points"`
	ResearchPoints int       `json:"research_points"`
	// ExperienceIntoLevel and ExperienceToNext describe progress toward
	// the next level on the curve.
	ExperienceIntoLevel int64     `json:"experience_into_level"`
	ExperienceToNext    int64     `json:"experience_to_next"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (s *Server) toProfileResponse(profile domain.Profile) profileResponse {
	into, required := s.services.Profiles.ProgressToNext(profile)
	return profileResponse{
		ID:                  profile.ID,
		DisplayName:         profile.DisplayName,
		Level:               profile.Level,
		Experience:          profile.Experience,
		SkillPoints:         profile.SkillPoints,
		ResearchPoints:      profile.ResearchPoints,
		ExperienceIntoLevel: into,
		ExperienceToNext:    required,
		CreatedAt:           profile.CreatedAt,
		UpdatedAt:           profile.UpdatedAt,
	}
}

type grantResponse struct {
	Profile               profileResponse `json:"profile"`
	FromLevel             int             `json:"from_level"`
	ToLevel               int             `json:"to_level"`
	SkillPointsAwarded    int             `json:"skill_points_awarded"`
	ResearchPointsAwarded int             `json:"research_points_awarded"`
}

type effectResponse struct {
	Stat    string  `json:"stat"`
	Flat    float64 `json:"flat,omitempty"`
	Percent float64 `json:"percent,omitempty"`
}

func toEffectResponses(effects []domain.Effect) []effectResponse {
	out := make([]effectResponse, len(effects))
	for i, effect := range effects {
		out[i] = effectResponse{Stat: effect.Stat, Flat: effect.Flat, Percent: effect.Percent}
	}
	return out
}

type skillNodeResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Branch          string           `json:"branch"`
	Prerequisites   []string         `json:"prerequisites,omitempty"`
	Cost            int              `json:"cost"`
	MaxLevel        int              `json:"max_level"`
	EffectsPerLevel []effectResponse `json:"effects_per_level,omitempty"`
}

type nodeStatusResponse struct {
	Node               skillNodeResponse `json:"node"`
	Rank               int               `json:"rank"`
	Available          bool              `json:"available"`
	UnmetPrerequisites []string          `json:"unmet_prerequisites,omitempty"`
}

func toNodeStatusResponse(status service.NodeStatus) nodeStatusResponse {
	return nodeStatusResponse{
		Node: skillNodeResponse{
			ID:              status.Node.ID,
			Name:            status.Node.Name,
			Branch:          status.Node.Branch.String(),
			Prerequisites:   status.Node.Prerequisites,
			Cost:            status.Node.Cost,
			MaxLevel:        status.Node.MaxLevel,
			EffectsPerLevel: toEffectResponses(status.Node.EffectsPerLevel),
		},
		Rank:               status.Rank,
		Available:          status.Available,
		UnmetPrerequisites: status.UnmetPrerequisites,
	}
}

type skillRankResponse struct {
	NodeID     string    `json:"node_id"`
	Level      int       `json:"level"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

func toSkillRankResponse(rank domain.SkillRank) skillRankResponse {
	return skillRankResponse{NodeID: rank.NodeID, Level: rank.Level, UnlockedAt: rank.UnlockedAt}
}

type synergyResponse struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Bonus []effectResponse `json:"bonus,omitempty"`
}

type researchStateResponse struct {
	ProjectID     string     `json:"project_id"`
	PhaseIndex    int        `json:"phase_index"`
	PhaseProgress int        `json:"phase_progress"`
	Completed     bool       `json:"completed"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

func toResearchStateResponse(state domain.ResearchState) researchStateResponse {
	return researchStateResponse{
		ProjectID:     state.ProjectID,
		PhaseIndex:    state.PhaseIndex,
		PhaseProgress: state.PhaseProgress,
		Completed:     state.Completed,
		StartedAt:     state.StartedAt,
		CompletedAt:   state.CompletedAt,
	}
}

type advanceResearchResponse struct {
	State            researchStateResponse `json:"state"`
	PhasesCompleted  []int                 `json:"phases_completed,omitempty"`
	ProjectCompleted bool                  `json:"project_completed"`
}

type achievementStatusResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Stat        string     `json:"stat"`
	Target      int64      `json:"target"`
	Tier        string     `json:"tier"`
	Points      int        `json:"points"`
	Hidden      bool       `json:"hidden"`
	Progress    int64      `json:"progress"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func toAchievementStatusResponse(status service.AchievementStatus) achievementStatusResponse {
	return achievementStatusResponse{
		ID:          status.Achievement.ID,
		Name:        status.Achievement.Name,
		Stat:        status.Achievement.Stat,
		Target:      status.Achievement.Target,
		Tier:        status.Achievement.Tier.String(),
		Points:      status.Achievement.Points,
		Hidden:      status.Achievement.Hidden,
		Progress:    status.Progress.Progress,
		CompletedAt: status.Progress.CompletedAt,
	}
}

type objectiveResponse struct {
	ID               string     `json:"id"`
	TemplateID       string     `json:"template_id"`
	Stat             string     `json:"stat"`
	Progress         int64      `json:"progress"`
	Target           int64      `json:"target"`
	RewardExperience int64      `json:"reward_experience"`
	AssignedAt       time.Time  `json:"assigned_at"`
	ExpiresAt        time.Time  `json:"expires_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

func toObjectiveResponse(objective domain.Objective) objectiveResponse {
	return objectiveResponse{
		ID:               objective.ID,
		TemplateID:       objective.TemplateID,
		Stat:             objective.Stat,
		Progress:         objective.Progress,
		Target:           objective.Target,
		RewardExperience: objective.RewardExperience,
		AssignedAt:       objective.AssignedAt,
		ExpiresAt:        objective.ExpiresAt,
		CompletedAt:      objective.CompletedAt,
	}
}

func toObjectiveResponses(objectives []domain.Objective) []objectiveResponse {
	out := make([]objectiveResponse, len(objectives))
	for i, objective := range objectives {
		out[i] = toObjectiveResponse(objective)
	}
	return out
}

type campaignResponse struct {
	PhaseIndex int    `json:"phase_index"`
	PhaseID    string `json:"phase_id"`
	PhaseName  string `json:"phase_name"`
	FinalPhase bool   `json:"final_phase"`
}

type statBonusResponse struct {
	Stat       string  `json:"stat"`
	Flat       float64 `json:"flat"`
	Multiplier float64 `json:"multiplier"`
}

func toStatBonusResponses(bonuses []engine.StatBonus) []statBonusResponse {
	out := make([]statBonusResponse, len(bonuses))
	for i, bonus := range bonuses {
		out[i] = statBonusResponse{Stat: bonus.Stat, Flat: bonus.Flat, Multiplier: bonus.Multiplier}
	}
	return out
}

type boardResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Stat   string `json:"stat"`
	Order  string `json:"order"`
	Season string `json:"season"`
}

type leaderboardEntryResponse struct {
	BoardID   string    `json:"board_id"`
	Season    string    `json:"season"`
	ProfileID string    `json:"profile_id"`
	Score     int64     `json:"score"`
	Rank      int       `json:"rank"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toLeaderboardEntryResponses(entries []domain.LeaderboardEntry) []leaderboardEntryResponse {
	out := make([]leaderboardEntryResponse, len(entries))
	for i, entry := range entries {
		out[i] = leaderboardEntryResponse{
			BoardID:   entry.BoardID,
			Season:    entry.Season,
			ProfileID: entry.ProfileID,
			Score:     entry.Score,
			Rank:      entry.Rank,
			UpdatedAt: entry.UpdatedAt,
		}
	}
	return out
}

type eventResponse struct {
	Seq        uint64          `json:"seq"`
	Hash       string          `json:"hash"`
	Timestamp  time.Time       `json:"timestamp"`
	Type       string          `json:"type"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

func toEventResponses(events []event.Event) []eventResponse {
	out := make([]eventResponse, len(events))
	for i, evt := range events {
		out[i] = eventResponse{
			Seq:        evt.Seq,
			Hash:       evt.Hash,
			Timestamp:  evt.Timestamp,
			Type:       string(evt.Type),
			EntityType: evt.EntityType,
			EntityID:   evt.EntityID,
			Payload:    json.RawMessage(evt.PayloadJSON),
		}
	}
	return out
}
