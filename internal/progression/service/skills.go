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
	"github.com/verdantworks/growline/internal/progression/engine"
	"github.com/verdantworks/growline/internal/progression/event"
	"github.com/verdantworks/growline/internal/storage"
)

// Skills manages skill tree unlocks, rank raises, and synergy activation.
type Skills struct {
	stores   Stores
	content  *content.Index
	profiles *Profiles
	stats    *Stats
	journal  *Journal
	clock    func() time.Time
}

// NewSkills creates a Skills facade.
func NewSkills(stores Stores, idx *content.Index, profiles *Profiles, stats *Stats, journal *Journal) *Skills {
	return &Skills{
		stores:   stores,
		content:  idx,
		profiles: profiles,
		stats:    stats,
		journal:  journal,
		clock:    time.Now,
	}
}

// Unlock buys the first rank of a skill node: prerequisites, the optional
// unlock script, and the point cost are all checked before anything persists.
func (s *Skills) Unlock(ctx context.Context, profileID, nodeID string) (domain.SkillRank, error) {
	node, ok := s.content.SkillNode(nodeID)
	if !ok {
		return domain.SkillRank{}, unknownNode(nodeID)
	}

	profile, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		return domain.SkillRank{}, err
	}

	if _, err := s.stores.Skills.GetSkillRank(ctx, profileID, nodeID); err == nil {
		return domain.SkillRank{}, apperrors.WithMetadata(apperrors.CodeSkillPrereqUnmet,
			"skill node is already unlocked", map[string]string{"node_id": nodeID})
	} else if !errors.Is(err, storage.ErrNotFound) {
		return domain.SkillRank{}, err
	}

	ranks, err := s.rankLevels(ctx, profileID)
	if err != nil {
		return domain.SkillRank{}, err
	}
	unlocked := make(map[string]bool, len(ranks))
	for id := range ranks {
		unlocked[id] = true
	}
	if missing := s.content.SkillPrereqs().Unmet(nodeID, unlocked); len(missing) > 0 {
		return domain.SkillRank{}, apperrors.WithMetadata(apperrors.CodeSkillPrereqUnmet,
			"skill prerequisites are not met", map[string]string{
				"node_id": nodeID,
				"missing": strings.Join(missing, ", "),
			})
	}

	if node.UnlockScript != "" {
		totals, err := s.stats.Totals(ctx, profileID)
		if err != nil {
			return domain.SkillRank{}, err
		}
		allowed, err := engine.EvalUnlockScript(node.UnlockScript, engine.ScriptView{
			Level:          profile.Level,
			SkillPoints:    profile.SkillPoints,
			ResearchPoints: profile.ResearchPoints,
			Ranks:          ranks,
			Stats:          totals,
		})
		if err != nil {
			return domain.SkillRank{}, apperrors.Wrap(apperrors.CodeSkillConditionFailed,
				"unlock condition errored", err)
		}
		if !allowed {
			return domain.SkillRank{}, apperrors.WithMetadata(apperrors.CodeSkillConditionFailed,
				"unlock condition not met", map[string]string{"node_id": nodeID})
		}
	}

	spent, err := profile.SpendSkillPoints(node.Cost)
	if errors.Is(err, domain.ErrInsufficientPoints) {
		return domain.SkillRank{}, insufficientSkillPoints(node.Cost, profile.SkillPoints)
	}
	if err != nil {
		return domain.SkillRank{}, err
	}
	spent.UpdatedAt = s.clock().UTC()

	rank := domain.SkillRank{
		ProfileID:  profileID,
		NodeID:     nodeID,
		Level:      1,
		UnlockedAt: s.clock().UTC(),
	}
	if err := s.stores.Skills.PutSkillRank(ctx, rank); err != nil {
		return domain.SkillRank{}, err
	}
	if err := s.stores.Profiles.PutProfile(ctx, spent); err != nil {
		return domain.SkillRank{}, err
	}

	s.journal.emitOrLog(ctx, profileID, event.TypeSkillUnlocked, nodeID, event.SkillUnlockedPayload{
		NodeID: nodeID,
		Branch: node.Branch.String(),
		Cost:   node.Cost,
	})

	ranks[nodeID] = 1
	if err := s.activateSynergies(ctx, profileID, ranks); err != nil {
		return domain.SkillRank{}, err
	}
	return rank, nil
}

// RaiseRank buys the next rank of an unlocked node.
func (s *Skills) RaiseRank(ctx context.Context, profileID, nodeID string) (domain.SkillRank, error) {
	node, ok := s.content.SkillNode(nodeID)
	if !ok {
		return domain.SkillRank{}, unknownNode(nodeID)
	}

	current, err := s.stores.Skills.GetSkillRank(ctx, profileID, nodeID)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.SkillRank{}, apperrors.WithMetadata(apperrors.CodeSkillPrereqUnmet,
			"skill node is not unlocked", map[string]string{"node_id": nodeID})
	}
	if err != nil {
		return domain.SkillRank{}, err
	}

	raised, err := current.Raise(node)
	if errors.Is(err, domain.ErrMaxRankReached) {
		return domain.SkillRank{}, apperrors.WithMetadata(apperrors.CodeSkillMaxLevelReached,
			"skill rank is at maximum", map[string]string{
				"node_id":   nodeID,
				"max_level": strconv.Itoa(node.MaxLevel),
			})
	}
	if err != nil {
		return domain.SkillRank{}, err
	}

	profile, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		return domain.SkillRank{}, err
	}
	spent, err := profile.SpendSkillPoints(node.Cost)
	if errors.Is(err, domain.ErrInsufficientPoints) {
		return domain.SkillRank{}, insufficientSkillPoints(node.Cost, profile.SkillPoints)
	}
	if err != nil {
		return domain.SkillRank{}, err
	}
	spent.UpdatedAt = s.clock().UTC()

	if err := s.stores.Skills.PutSkillRank(ctx, raised); err != nil {
		return domain.SkillRank{}, err
	}
	if err := s.stores.Profiles.PutProfile(ctx, spent); err != nil {
		return domain.SkillRank{}, err
	}

	s.journal.emitOrLog(ctx, profileID, event.TypeSkillRankRaised, nodeID, event.SkillRankRaisedPayload{
		NodeID:   nodeID,
		FromRank: current.Level,
		ToRank:   raised.Level,
		Cost:     node.Cost,
	})

	ranks, err := s.rankLevels(ctx, profileID)
	if err != nil {
		return domain.SkillRank{}, err
	}
	if err := s.activateSynergies(ctx, profileID, ranks); err != nil {
		return domain.SkillRank{}, err
	}
	return raised, nil
}

// NodeStatus describes one skill node from a profile's point of view.
type NodeStatus struct {
	Node domain.SkillNode
	// Rank is the profile's current rank (0 when locked).
	Rank int
	// Available reports whether the next rank can be bought right now,
	// ignoring the unlock script.
	Available bool
	// UnmetPrerequisites lists locked prerequisite node IDs.
	UnmetPrerequisites []string
}

// Tree returns every skill node with per-profile availability.
func (s *Skills) Tree(ctx context.Context, profileID string) ([]NodeStatus, error) {
	profile, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}

	ranks, err := s.rankLevels(ctx, profileID)
	if err != nil {
		return nil, err
	}
	unlocked := make(map[string]bool, len(ranks))
	for id := range ranks {
		unlocked[id] = true
	}

	pack := s.content.Pack()
	statuses := make([]NodeStatus, 0, len(pack.SkillNodes))
	for _, node := range pack.SkillNodes {
		status := NodeStatus{
			Node:               node,
			Rank:               ranks[node.ID],
			UnmetPrerequisites: s.content.SkillPrereqs().Unmet(node.ID, unlocked),
		}
		status.Available = len(status.UnmetPrerequisites) == 0 &&
			status.Rank < node.MaxLevel &&
			profile.SkillPoints >= node.Cost
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// ActiveSynergies returns the synergy definitions active for a profile.
func (s *Skills) ActiveSynergies(ctx context.Context, profileID string) ([]domain.Synergy, error) {
	ids, err := s.stores.Skills.ListActiveSynergies(ctx, profileID)
	if err != nil {
		return nil, err
	}
	synergies := make([]domain.Synergy, 0, len(ids))
	for _, id := range ids {
		if synergy, ok := s.content.Synergy(id); ok {
			synergies = append(synergies, synergy)
		}
	}
	return synergies, nil
}

// rankLevels returns node ID to rank level for a profile.
func (s *Skills) rankLevels(ctx context.Context, profileID string) (map[string]int, error) {
	ranks, err := s.stores.Skills.ListSkillRanks(ctx, profileID)
	if err != nil {
		return nil, err
	}
	levels := make(map[string]int, len(ranks))
	for _, rank := range ranks {
		levels[rank.NodeID] = rank.Level
	}
	return levels, nil
}

// activateSynergies records any synergy whose thresholds the rank map now
// meets, journaling each first activation.
func (s *Skills) activateSynergies(ctx context.Context, profileID string, ranks map[string]int) error {
	active, err := s.stores.Skills.ListActiveSynergies(ctx, profileID)
	if err != nil {
		return err
	}
	alreadyActive := make(map[string]bool, len(active))
	for _, id := range active {
		alreadyActive[id] = true
	}

	for _, synergy := range s.content.Synergies() {
		if alreadyActive[synergy.ID] || !synergy.Active(ranks) {
			continue
		}
		if err := s.stores.Skills.PutActiveSynergy(ctx, profileID, synergy.ID, s.clock().UTC()); err != nil {
			return err
		}
		s.journal.emitOrLog(ctx, profileID, event.TypeSynergyActivated, synergy.ID, event.SynergyActivatedPayload{
			SynergyID: synergy.ID,
		})
	}
	return nil
}

func unknownNode(nodeID string) error {
	return apperrors.WithMetadata(apperrors.CodeSkillUnknownNode, "unknown skill node",
		map[string]string{"node_id": nodeID})
}

func insufficientSkillPoints(need, have int) error {
	return apperrors.WithMetadata(apperrors.CodeSkillInsufficientPoints, "not enough skill points",
		map[string]string{
			"need": strconv.Itoa(need),
			"have": strconv.Itoa(have),
		})
}
