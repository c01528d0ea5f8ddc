package domain

import (
	"errors"
	"time"
)

var (
	// ErrNoCampaignPhases indicates an empty campaign definition.
	ErrNoCampaignPhases = errors.New("campaign requires at least one phase")
	// ErrFinalPhase indicates an advance past the last phase.
	ErrFinalPhase = errors.New("campaign is at its final phase")
)

// PhaseGate lists the requirements to enter a campaign phase.
type PhaseGate struct {
	// RequiredLevel is the minimum profile level.
	RequiredLevel int
	// RequiredAchievements lists achievement IDs that must be completed.
	RequiredAchievements []string
	// RequiredResearch lists research project IDs that must be completed.
	RequiredResearch []string
}

// CampaignPhase is one ordered stage of the campaign.
type CampaignPhase struct {
	ID   string
	Name string
	Gate PhaseGate
	// Grants applies once when the phase is entered.
	Grants []Effect
	// SkillPointGrant is awarded once when the phase is entered.
	SkillPointGrant int
}

// Campaign is the ordered phase list a profile advances through.
type Campaign struct {
	Phases []CampaignPhase
}

// Validate checks campaign definition invariants.
func (c Campaign) Validate() error {
	if len(c.Phases) == 0 {
		return ErrNoCampaignPhases
	}
	return nil
}

// PhaseAt returns the phase at index, guarding bounds.
func (c Campaign) PhaseAt(index int) (CampaignPhase, bool) {
	if index < 0 || index >= len(c.Phases) {
		return CampaignPhase{}, false
	}
	return c.Phases[index], true
}

// NextPhase returns the phase after index, or ErrFinalPhase.
func (c Campaign) NextPhase(index int) (CampaignPhase, error) {
	next, ok := c.PhaseAt(index + 1)
	if !ok {
		return CampaignPhase{}, ErrFinalPhase
	}
	return next, nil
}

// CampaignState is a profile's position in the campaign.
type CampaignState struct {
	ProfileID  string
	PhaseIndex int
	UpdatedAt  time.Time
}

// GateCheck lists which gate requirements a profile snapshot fails.
type GateCheck struct {
	MissingLevel        int // 0 when the level requirement is met
	MissingAchievements []string
	MissingResearch     []string
}

// Met reports whether every gate requirement passed.
func (g GateCheck) Met() bool {
	return g.MissingLevel == 0 && len(g.MissingAchievements) == 0 && len(g.MissingResearch) == 0
}

// CheckGate evaluates a phase gate against a profile snapshot.
func CheckGate(gate PhaseGate, level int, completedAchievements, completedResearch map[string]bool) GateCheck {
	check := GateCheck{}
	if level < gate.RequiredLevel {
		check.MissingLevel = gate.RequiredLevel
	}
	for _, achievementID := range gate.RequiredAchievements {
		if !completedAchievements[achievementID] {
			check.MissingAchievements = append(check.MissingAchievements, achievementID)
		}
	}
	for _, projectID := range gate.RequiredResearch {
		if !completedResearch[projectID] {
			check.MissingResearch = append(check.MissingResearch, projectID)
		}
	}
	return check
}
