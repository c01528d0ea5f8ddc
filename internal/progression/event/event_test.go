package event

import "testing"

func TestType_IsValid(t *testing.T) {
	tests := []struct {
		eventType Type
		want      bool
	}{
		{TypeProfileCreated, true},
		{TypeExperienceGained, true},
		{TypeLevelUp, true},
		{TypeSkillUnlocked, true},
		{TypeSkillRankRaised, true},
		{TypeSynergyActivated, true},
		{TypeResearchStarted, true},
		{TypeResearchPhaseCompleted, true},
		{TypeResearchCompleted, true},
		{TypeAchievementProgressed, true},
		{TypeAchievementCompleted, true},
		{TypeObjectiveAssigned, true},
		{TypeObjectiveCompleted, true},
		{TypeObjectiveExpired, true},
		{TypeCampaignPhaseAdvanced, true},
		{TypeScoreSubmitted, true},
		// Only declared types are valid
		{"", false},
		{"custom.event", false},
		{"profile.created ", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.eventType), func(t *testing.T) {
			if got := tt.eventType.IsValid(); got != tt.want {
				t.Errorf("Type(%q).IsValid() = %v, want %v", tt.eventType, got, tt.want)
			}
		})
	}
}

func TestType_Domain(t *testing.T) {
	tests := []struct {
		eventType Type
		want      string
	}{
		{TypeProfileCreated, "profile"},
		{TypeSkillUnlocked, "skill"},
		{TypeSynergyActivated, "skill"},
		{TypeResearchPhaseCompleted, "research"},
		{TypeAchievementCompleted, "achievement"},
		{TypeObjectiveExpired, "objective"},
		{TypeCampaignPhaseAdvanced, "campaign"},
		{TypeScoreSubmitted, "leaderboard"},
		{"bare", "bare"},
	}

	for _, tt := range tests {
		t.Run(string(tt.eventType), func(t *testing.T) {
			if got := tt.eventType.Domain(); got != tt.want {
				t.Errorf("Type(%q).Domain() = %q, want %q", tt.eventType, got, tt.want)
			}
		})
	}
}
