package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/verdantworks/growline/internal/content"
	apperrors "github.com/verdantworks/growline/internal/platform/errors"
	"github.com/verdantworks/growline/internal/progression/domain"
	"github.com/verdantworks/growline/internal/progression/event"
	"github.com/verdantworks/growline/internal/storage"
)

// Campaign manages a profile's position in the phased campaign.
type Campaign struct {
	stores       Stores
	content      *content.Index
	profiles     *Profiles
	achievements *Achievements
	journal      *Journal
	clock        func() time.Time
}

// NewCampaign creates a Campaign facade.
func NewCampaign(stores Stores, idx *content.Index, profiles *Profiles, achievements *Achievements, journal *Journal) *Campaign {
	return &Campaign{
		stores:       stores,
		content:      idx,
		profiles:     profiles,
		achievements: achievements,
		journal:      journal,
		clock:        time.Now,
	}
}

// Current returns a profile's campaign state and the phase it is in.
// Profiles with no recorded state are in the first phase.
func (c *Campaign) Current(ctx context.Context, profileID string) (domain.CampaignState, domain.CampaignPhase, error) {
	if _, err := c.profiles.Get(ctx, profileID); err != nil {
		return domain.CampaignState{}, domain.CampaignPhase{}, err
	}

	state, err := c.stores.Campaign.GetCampaignState(ctx, profileID)
	if errors.Is(err, storage.ErrNotFound) {
		state = domain.CampaignState{ProfileID: profileID}
	} else if err != nil {
		return domain.CampaignState{}, domain.CampaignPhase{}, err
	}

	phase, ok := c.content.Campaign().PhaseAt(state.PhaseIndex)
	if !ok {
		return domain.CampaignState{}, domain.CampaignPhase{}, apperrors.New(apperrors.CodeContentInvalid,
			"campaign state points past the phase list")
	}
	return state, phase, nil
}

// Advance moves a profile into the next campaign phase when its gate is
// met, applying the phase's skill point grant.
func (c *Campaign) Advance(ctx context.Context, profileID string) (domain.CampaignState, domain.CampaignPhase, error) {
	state, _, err := c.Current(ctx, profileID)
	if err != nil {
		return domain.CampaignState{}, domain.CampaignPhase{}, err
	}

	campaign := c.content.Campaign()
	next, err := campaign.NextPhase(state.PhaseIndex)
	if errors.Is(err, domain.ErrFinalPhase) {
		return domain.CampaignState{}, domain.CampaignPhase{}, apperrors.New(apperrors.CodeCampaignFinalPhase,
			"campaign is at its final phase")
	}
	if err != nil {
		return domain.CampaignState{}, domain.CampaignPhase{}, err
	}

	profile, err := c.profiles.Get(ctx, profileID)
	if err != nil {
		return domain.CampaignState{}, domain.CampaignPhase{}, err
	}
	completedAchievements, err := c.achievements.completedAchievements(ctx, profileID)
	if err != nil {
		return domain.CampaignState{}, domain.CampaignPhase{}, err
	}
	completedResearch, err := c.completedResearch(ctx, profileID)
	if err != nil {
		return domain.CampaignState{}, domain.CampaignPhase{}, err
	}

	check := domain.CheckGate(next.Gate, profile.Level, completedAchievements, completedResearch)
	if !check.Met() {
		metadata := map[string]string{"phase_id": next.ID}
		if check.MissingLevel > 0 {
			metadata["required_level"] = strconv.Itoa(check.MissingLevel)
		}
		if len(check.MissingAchievements) > 0 {
			metadata["missing_achievements"] = strings.Join(check.MissingAchievements, ", ")
		}
		if len(check.MissingResearch) > 0 {
			metadata["missing_research"] = strings.Join(check.MissingResearch, ", ")
		}
		return domain.CampaignState{}, domain.CampaignPhase{}, apperrors.WithMetadata(
			apperrors.CodeCampaignGateUnmet, "campaign gate requirements are not met", metadata)
	}

	fromPhase, _ := campaign.PhaseAt(state.PhaseIndex)

	if next.SkillPointGrant > 0 {
		profile.SkillPoints += next.SkillPointGrant
		profile.UpdatedAt = c.clock().UTC()
		if err := c.stores.Profiles.PutProfile(ctx, profile); err != nil {
			return domain.CampaignState{}, domain.CampaignPhase{}, err
		}
	}

	state.PhaseIndex++
	state.UpdatedAt = c.clock().UTC()
	if err := c.stores.Campaign.PutCampaignState(ctx, state); err != nil {
		return domain.CampaignState{}, domain.CampaignPhase{}, err
	}

	c.journal.emitOrLog(ctx, profileID, event.TypeCampaignPhaseAdvanced, next.ID, event.CampaignPhaseAdvancedPayload{
		FromPhase: fromPhase.ID,
		ToPhase:   next.ID,
	})
	return state, next, nil
}

func (c *Campaign) completedResearch(ctx context.Context, profileID string) (map[string]bool, error) {
	states, err := c.stores.Research.ListResearchStates(ctx, profileID)
	if err != nil {
		return nil, err
	}
	completed := make(map[string]bool, len(states))
	for _, state := range states {
		if state.Completed {
			completed[state.ProjectID] = true
		}
	}
	return completed, nil
}
