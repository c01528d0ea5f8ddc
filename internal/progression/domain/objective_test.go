package domain

import (
	"errors"
	"testing"
	"time"
)

func testTemplate() ObjectiveTemplate {
	return ObjectiveTemplate{
		ID:               "daily_watering",
		Name:             "Water 5 plants",
		Stat:             "plants_watered",
		Target:           5,
		Cadence:          ObjectiveCadenceDaily,
		RewardExperience: 50,
	}
}

func TestAssignObjective(t *testing.T) {
	fixedTime := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	expiry := fixedTime.Add(24 * time.Hour)

	objective, err := AssignObjective("prof1", testTemplate(), expiry, func() time.Time { return fixedTime }, func() (string, error) {
		return "obj1", nil
	})
	if err != nil {
		t.Fatalf("assign objective: %v", err)
	}

	if objective.ID != "obj1" || objective.ProfileID != "prof1" {
		t.Fatalf("unexpected identity: %+v", objective)
	}
	if objective.TemplateID != "daily_watering" {
		t.Fatalf("expected template id, got %q", objective.TemplateID)
	}
	if !objective.ExpiresAt.Equal(expiry) {
		t.Fatal("expected expiry preserved")
	}
	if objective.Completed() {
		t.Fatal("expected fresh objective to be incomplete")
	}
}

func TestAssignObjectiveValidatesTemplate(t *testing.T) {
	bad := testTemplate()
	bad.Cadence = ObjectiveCadenceUnspecified

	if _, err := AssignObjective("prof1", bad, time.Now(), nil, nil); !errors.Is(err, ErrInvalidCadence) {
		t.Fatalf("expected ErrInvalidCadence, got %v", err)
	}
}

func TestObjectiveApplyCompletesOnce(t *testing.T) {
	assignedAt := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	objective := Objective{
		ID:        "obj1",
		Target:    5,
		ExpiresAt: assignedAt.Add(24 * time.Hour),
	}

	objective, completed, err := objective.Apply(3, assignedAt.Add(time.Hour))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if completed {
		t.Fatal("expected no completion at 3/5")
	}

	objective, completed, err = objective.Apply(10, assignedAt.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !completed {
		t.Fatal("expected completion")
	}
	if objective.Progress != 5 {
		t.Fatalf("expected progress clamped to 5, got %d", objective.Progress)
	}

	if _, _, err := objective.Apply(1, assignedAt.Add(3*time.Hour)); !errors.Is(err, ErrObjectiveCompleted) {
		t.Fatalf("expected ErrObjectiveCompleted, got %v", err)
	}
}

func TestObjectiveApplyRejectsExpired(t *testing.T) {
	assignedAt := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	objective := Objective{
		ID:        "obj1",
		Target:    5,
		ExpiresAt: assignedAt.Add(time.Hour),
	}

	if _, _, err := objective.Apply(1, assignedAt.Add(2*time.Hour)); !errors.Is(err, ErrObjectiveExpired) {
		t.Fatalf("expected ErrObjectiveExpired, got %v", err)
	}
}
