package domain

import (
	"errors"
	"testing"
	"time"
)

func testProject() ResearchProject {
	return ResearchProject{
		ID:   "hydroponics",
		Name: "Hydroponics",
		Phases: []ResearchPhase{
			{Name: "feasibility", Target: 10},
			{Name: "prototype", Target: 20},
			{Name: "rollout", Target: 5},
		},
	}
}

func TestAdvanceWithinPhase(t *testing.T) {
	state := ResearchState{ProjectID: "hydroponics"}

	result, err := state.Advance(testProject(), 4, nil)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if result.State.PhaseIndex != 0 || result.State.PhaseProgress != 4 {
		t.Fatalf("expected phase 0 progress 4, got phase %d progress %d", result.State.PhaseIndex, result.State.PhaseProgress)
	}
	if len(result.PhasesCompleted) != 0 || result.ProjectCompleted {
		t.Fatal("expected no phases completed")
	}
}

func TestAdvanceRollsOverflowIntoNextPhase(t *testing.T) {
	state := ResearchState{ProjectID: "hydroponics", PhaseProgress: 8}

	result, err := state.Advance(testProject(), 7, nil)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if result.State.PhaseIndex != 1 {
		t.Fatalf("expected phase 1, got %d", result.State.PhaseIndex)
	}
	if result.State.PhaseProgress != 5 {
		t.Fatalf("expected carried progress 5, got %d", result.State.PhaseProgress)
	}
	if len(result.PhasesCompleted) != 1 || result.PhasesCompleted[0] != 0 {
		t.Fatalf("expected phase 0 completed, got %v", result.PhasesCompleted)
	}
}

func TestAdvanceCompletesProject(t *testing.T) {
	fixedTime := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	state := ResearchState{ProjectID: "hydroponics"}

	result, err := state.Advance(testProject(), 100, func() time.Time { return fixedTime })
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !result.ProjectCompleted {
		t.Fatal("expected project completion")
	}
	if !result.State.Completed {
		t.Fatal("expected completed state")
	}
	if result.State.CompletedAt == nil || !result.State.CompletedAt.Equal(fixedTime) {
		t.Fatal("expected completion timestamp")
	}
	if len(result.PhasesCompleted) != 3 {
		t.Fatalf("expected all 3 phases completed, got %v", result.PhasesCompleted)
	}
	// Final phase progress clamps at its target.
	if result.State.PhaseProgress != 5 {
		t.Fatalf("expected final phase progress clamped to 5, got %d", result.State.PhaseProgress)
	}
}

func TestAdvanceRejectsCompletedProject(t *testing.T) {
	state := ResearchState{ProjectID: "hydroponics", Completed: true}
	if _, err := state.Advance(testProject(), 1, nil); !errors.Is(err, ErrResearchCompleted) {
		t.Fatalf("expected ErrResearchCompleted, got %v", err)
	}
}

func TestAdvanceRejectsPhaseOutOfRange(t *testing.T) {
	// Stored state can outlive its definition when a re-seeded pack
	// shortens a project's phase list.
	state := ResearchState{ProjectID: "hydroponics", PhaseIndex: 3}
	if _, err := state.Advance(testProject(), 1, nil); !errors.Is(err, ErrPhaseOutOfRange) {
		t.Fatalf("expected ErrPhaseOutOfRange, got %v", err)
	}

	state = ResearchState{ProjectID: "hydroponics", PhaseIndex: -1}
	if _, err := state.Advance(testProject(), 1, nil); !errors.Is(err, ErrPhaseOutOfRange) {
		t.Fatalf("expected ErrPhaseOutOfRange, got %v", err)
	}
}

func TestAdvanceRejectsNegativeDelta(t *testing.T) {
	state := ResearchState{ProjectID: "hydroponics"}
	if _, err := state.Advance(testProject(), -1, nil); !errors.Is(err, ErrNegativeProgress) {
		t.Fatalf("expected ErrNegativeProgress, got %v", err)
	}
}

func TestResearchProjectValidate(t *testing.T) {
	if err := (ResearchProject{ID: "empty"}).Validate(); !errors.Is(err, ErrNoPhases) {
		t.Fatalf("expected ErrNoPhases, got %v", err)
	}
	bad := ResearchProject{ID: "bad", Phases: []ResearchPhase{{Name: "p", Target: 0}}}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for non-positive phase target")
	}
}
