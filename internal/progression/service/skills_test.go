package service

import (
	"context"
	"testing"

	apperrors "github.com/verdantworks/growline/internal/platform/errors"
	"github.com/verdantworks/growline/internal/progression/event"
)

func TestSkillsUnlock(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	profile := e.createProfile(t, "Grower", 1, 3, 0)

	rank, err := e.skills.Unlock(ctx, profile.ID, "soil-basics")
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if rank.Level != 1 {
		t.Fatalf("expected rank level 1, got %d", rank.Level)
	}

	updated, err := e.profiles.Get(ctx, profile.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if updated.SkillPoints != 2 {
		t.Fatalf("expected 2 skill points after a cost-1 unlock, got %d", updated.SkillPoints)
	}

	types := e.journalTypes(t, profile.ID)
	if !containsType(types, event.TypeSkillUnlocked) {
		t.Fatalf("expected %s in journal, got %v", event.TypeSkillUnlocked, types)
	}
}

func TestSkillsUnlockUnknownNode(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	profile := e.createProfile(t, "Grower", 1, 5, 0)
	_, err := e.skills.Unlock(context.Background(), profile.ID, "time-travel")
	if apperrors.CodeOf(err) != apperrors.CodeSkillUnknownNode {
		t.Fatalf("expected %s, got %v", apperrors.CodeSkillUnknownNode, err)
	}
}

func TestSkillsUnlockPrereqUnmet(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	profile := e.createProfile(t, "Grower", 1, 5, 0)
	// hydro-basics requires soil-basics.
	_, err := e.skills.Unlock(context.Background(), profile.ID, "hydro-basics")
	if apperrors.CodeOf(err) != apperrors.CodeSkillPrereqUnmet {
		t.Fatalf("expected %s, got %v", apperrors.CodeSkillPrereqUnmet, err)
	}
}

func TestSkillsUnlockTwice(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	profile := e.createProfile(t, "Grower", 1, 5, 0)
	if _, err := e.skills.Unlock(ctx, profile.ID, "soil-basics"); err != nil {
		t.Fatalf("first unlock: %v", err)
	}
	_, err := e.skills.Unlock(ctx, profile.ID, "soil-basics")
	if apperrors.CodeOf(err) != apperrors.CodeSkillPrereqUnmet {
		t.Fatalf("expected %s for repeat unlock, got %v", apperrors.CodeSkillPrereqUnmet, err)
	}
}

func TestSkillsUnlockInsufficientPoints(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	profile := e.createProfile(t, "Broke", 1, 0, 0)
	_, err := e.skills.Unlock(context.Background(), profile.ID, "soil-basics")
	if apperrors.CodeOf(err) != apperrors.CodeSkillInsufficientPoints {
		t.Fatalf("expected %s, got %v", apperrors.CodeSkillInsufficientPoints, err)
	}
}

func TestSkillsUnlockScriptCondition(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	// genetics gates on "return player.level >= 10" beyond its prerequisite.
	low := e.createProfile(t, "Novice", 1, 10, 0)
	if _, err := e.skills.Unlock(ctx, low.ID, "lab-methods"); err != nil {
		t.Fatalf("unlock prerequisite: %v", err)
	}
	_, err := e.skills.Unlock(ctx, low.ID, "genetics")
	if apperrors.CodeOf(err) != apperrors.CodeSkillConditionFailed {
		t.Fatalf("expected %s at level 1, got %v", apperrors.CodeSkillConditionFailed, err)
	}

	high := e.createProfile(t, "Scientist", 10, 10, 0)
	if _, err := e.skills.Unlock(ctx, high.ID, "lab-methods"); err != nil {
		t.Fatalf("unlock prerequisite: %v", err)
	}
	if _, err := e.skills.Unlock(ctx, high.ID, "genetics"); err != nil {
		t.Fatalf("unlock at level 10: %v", err)
	}
}

func TestSkillsRaiseRank(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	profile := e.createProfile(t, "Grower", 1, 10, 0)
	if _, err := e.skills.Unlock(ctx, profile.ID, "soil-basics"); err != nil {
		t.Fatalf("unlock: %v", err)
	}

	rank, err := e.skills.RaiseRank(ctx, profile.ID, "soil-basics")
	if err != nil {
		t.Fatalf("raise rank: %v", err)
	}
	if rank.Level != 2 {
		t.Fatalf("expected level 2, got %d", rank.Level)
	}

	types := e.journalTypes(t, profile.ID)
	if !containsType(types, event.TypeSkillRankRaised) {
		t.Fatalf("expected %s in journal, got %v", event.TypeSkillRankRaised, types)
	}
}

func TestSkillsRaiseRankNotUnlocked(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	profile := e.createProfile(t, "Grower", 1, 10, 0)
	_, err := e.skills.RaiseRank(context.Background(), profile.ID, "soil-basics")
	if apperrors.CodeOf(err) != apperrors.CodeSkillPrereqUnmet {
		t.Fatalf("expected %s, got %v", apperrors.CodeSkillPrereqUnmet, err)
	}
}

func TestSkillsRaiseRankMaxLevel(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	profile := e.createProfile(t, "Grower", 1, 30, 0)
	// hydro-basics caps at level 3.
	if _, err := e.skills.Unlock(ctx, profile.ID, "soil-basics"); err != nil {
		t.Fatalf("unlock soil-basics: %v", err)
	}
	if _, err := e.skills.Unlock(ctx, profile.ID, "hydro-basics"); err != nil {
		t.Fatalf("unlock hydro-basics: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := e.skills.RaiseRank(ctx, profile.ID, "hydro-basics"); err != nil {
			t.Fatalf("raise rank %d: %v", i+2, err)
		}
	}

	_, err := e.skills.RaiseRank(ctx, profile.ID, "hydro-basics")
	if apperrors.CodeOf(err) != apperrors.CodeSkillMaxLevelReached {
		t.Fatalf("expected %s, got %v", apperrors.CodeSkillMaxLevelReached, err)
	}
}

func TestSkillsSynergyActivation(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	profile := e.createProfile(t, "Grower", 1, 30, 0)

	// green-thumb needs soil-basics rank 3 and climate-control rank 2.
	if _, err := e.skills.Unlock(ctx, profile.ID, "soil-basics"); err != nil {
		t.Fatalf("unlock soil-basics: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := e.skills.RaiseRank(ctx, profile.ID, "soil-basics"); err != nil {
			t.Fatalf("raise soil-basics: %v", err)
		}
	}
	if _, err := e.skills.Unlock(ctx, profile.ID, "climate-control"); err != nil {
		t.Fatalf("unlock climate-control: %v", err)
	}

	active, err := e.skills.ActiveSynergies(ctx, profile.ID)
	if err != nil {
		t.Fatalf("active synergies: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no synergies at climate-control rank 1, got %d", len(active))
	}

	if _, err := e.skills.RaiseRank(ctx, profile.ID, "climate-control"); err != nil {
		t.Fatalf("raise climate-control: %v", err)
	}

	active, err = e.skills.ActiveSynergies(ctx, profile.ID)
	if err != nil {
		t.Fatalf("active synergies: %v", err)
	}
	if len(active) != 1 || active[0].ID != "green-thumb" {
		t.Fatalf("expected green-thumb active, got %+v", active)
	}

	types := e.journalTypes(t, profile.ID)
	if !containsType(types, event.TypeSynergyActivated) {
		t.Fatalf("expected %s in journal, got %v", event.TypeSynergyActivated, types)
	}
}

func TestSkillsTree(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	profile := e.createProfile(t, "Grower", 1, 5, 0)
	if _, err := e.skills.Unlock(ctx, profile.ID, "soil-basics"); err != nil {
		t.Fatalf("unlock: %v", err)
	}

	tree, err := e.skills.Tree(ctx, profile.ID)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}

	statuses := make(map[string]NodeStatus, len(tree))
	for _, status := range tree {
		statuses[status.Node.ID] = status
	}

	if statuses["soil-basics"].Rank != 1 {
		t.Fatalf("expected soil-basics at rank 1, got %d", statuses["soil-basics"].Rank)
	}
	if !statuses["hydro-basics"].Available {
		t.Fatalf("expected hydro-basics available after soil-basics, got %+v", statuses["hydro-basics"])
	}
	if statuses["genetics"].Available {
		t.Fatalf("expected genetics unavailable without lab-methods, got %+v", statuses["genetics"])
	}
	if len(statuses["genetics"].UnmetPrerequisites) != 1 || statuses["genetics"].UnmetPrerequisites[0] != "lab-methods" {
		t.Fatalf("expected lab-methods unmet for genetics, got %v", statuses["genetics"].UnmetPrerequisites)
	}
}
