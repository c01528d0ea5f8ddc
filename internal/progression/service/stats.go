package service

import (
	"context"
	"errors"

	"github.com/verdantworks/growline/internal/content"
	"github.com/verdantworks/growline/internal/progression/engine"
	"github.com/verdantworks/growline/internal/storage"
)

// Stats computes cross-system stat bonuses and tracks lifetime stat totals.
type Stats struct {
	stores  Stores
	content *content.Index
}

// NewStats creates a Stats facade.
func NewStats(stores Stores, idx *content.Index) *Stats {
	return &Stats{stores: stores, content: idx}
}

// Totals returns a profile's lifetime stat totals.
func (s *Stats) Totals(ctx context.Context, profileID string) (map[string]int64, error) {
	return s.stores.Stats.GetStatTotals(ctx, profileID)
}

// Record adds a delta to a lifetime stat total and returns the new total.
func (s *Stats) Record(ctx context.Context, profileID, stat string, delta int64) (int64, error) {
	return s.stores.Stats.AddStat(ctx, profileID, stat, delta)
}

// Bonuses folds every active modifier source for a profile into per-stat
// bonuses: skill effects scale with rank, synergy bonuses apply while
// active, research grants apply once completed, and campaign grants apply
// for every phase entered.
func (s *Stats) Bonuses(ctx context.Context, profileID string) ([]engine.StatBonus, error) {
	stack, err := s.bonusStack(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return stack.Fold(), nil
}

// StatBonus folds the active modifiers for a single stat.
func (s *Stats) StatBonus(ctx context.Context, profileID, stat string) (engine.StatBonus, error) {
	stack, err := s.bonusStack(ctx, profileID)
	if err != nil {
		return engine.StatBonus{}, err
	}
	return stack.FoldStat(stat), nil
}

func (s *Stats) bonusStack(ctx context.Context, profileID string) (*engine.BonusStack, error) {
	stack := engine.NewBonusStack()

	ranks, err := s.stores.Skills.ListSkillRanks(ctx, profileID)
	if err != nil {
		return nil, err
	}
	for _, rank := range ranks {
		node, ok := s.content.SkillNode(rank.NodeID)
		if !ok {
			continue // definition removed in a newer pack
		}
		for _, effect := range node.EffectsPerLevel {
			stack.Add(engine.BonusSourceSkill, effect, rank.Level)
		}
	}

	activeSynergies, err := s.stores.Skills.ListActiveSynergies(ctx, profileID)
	if err != nil {
		return nil, err
	}
	for _, synergyID := range activeSynergies {
		synergy, ok := s.content.Synergy(synergyID)
		if !ok {
			continue
		}
		stack.AddAll(engine.BonusSourceSynergy, synergy.Bonus)
	}

	states, err := s.stores.Research.ListResearchStates(ctx, profileID)
	if err != nil {
		return nil, err
	}
	for _, state := range states {
		if !state.Completed {
			continue
		}
		project, ok := s.content.ResearchProject(state.ProjectID)
		if !ok {
			continue
		}
		stack.AddAll(engine.BonusSourceResearch, project.Grants)
	}

	campaignState, err := s.stores.Campaign.GetCampaignState(ctx, profileID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	if err == nil {
		campaign := s.content.Campaign()
		for index := 0; index <= campaignState.PhaseIndex; index++ {
			phase, ok := campaign.PhaseAt(index)
			if !ok {
				break
			}
			stack.AddAll(engine.BonusSourceCampaign, phase.Grants)
		}
	}

	return stack, nil
}
