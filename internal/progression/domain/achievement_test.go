package domain

import (
	"errors"
	"testing"
	"time"
)

func TestAchievementProgressClampsAndCompletesOnce(t *testing.T) {
	fixedTime := time.Date(2026, 4, 20, 16, 20, 0, 0, time.UTC)
	definition := Achievement{
		ID:     "first_harvest",
		Stat:   "plants_harvested",
		Target: 10,
		Tier:   AchievementTierBronze,
		Points: 5,
	}
	progress := AchievementProgress{AchievementID: "first_harvest"}

	progress, completed := progress.Apply(definition, 4, func() time.Time { return fixedTime })
	if completed {
		t.Fatal("expected no completion at 4/10")
	}
	if progress.Progress != 4 {
		t.Fatalf("expected progress 4, got %d", progress.Progress)
	}

	// Overshoot clamps to the target and completes exactly once.
	progress, completed = progress.Apply(definition, 100, func() time.Time { return fixedTime })
	if !completed {
		t.Fatal("expected completion")
	}
	if progress.Progress != 10 {
		t.Fatalf("expected progress clamped to 10, got %d", progress.Progress)
	}
	if progress.CompletedAt == nil || !progress.CompletedAt.Equal(fixedTime) {
		t.Fatal("expected completion timestamp")
	}

	// Further deltas are ignored after completion.
	again, completed := progress.Apply(definition, 5, nil)
	if completed {
		t.Fatal("expected completion to fire at most once")
	}
	if again.Progress != 10 {
		t.Fatalf("expected progress to stay at target, got %d", again.Progress)
	}
}

func TestAchievementProgressClampsBelowZero(t *testing.T) {
	definition := Achievement{ID: "a", Stat: "s", Target: 10, Tier: AchievementTierSilver}
	progress := AchievementProgress{Progress: 3}

	progress, completed := progress.Apply(definition, -5, nil)
	if completed {
		t.Fatal("expected no completion")
	}
	if progress.Progress != 0 {
		t.Fatalf("expected progress clamped to 0, got %d", progress.Progress)
	}
}

func TestAchievementValidate(t *testing.T) {
	tests := []struct {
		name       string
		definition Achievement
		wantErr    error
	}{
		{
			name:       "valid",
			definition: Achievement{ID: "a", Target: 1, Tier: AchievementTierGold},
		},
		{
			name:       "zero target",
			definition: Achievement{ID: "a", Target: 0, Tier: AchievementTierGold},
			wantErr:    ErrInvalidTarget,
		},
		{
			name:       "missing tier",
			definition: Achievement{ID: "a", Target: 1},
			wantErr:    ErrInvalidTier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.definition.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseAchievementTierRoundTrip(t *testing.T) {
	for _, name := range []string{"bronze", "silver", "gold", "platinum"} {
		tier, err := ParseAchievementTier(name)
		if err != nil {
			t.Fatalf("parse tier %s: %v", name, err)
		}
		if tier.String() != name {
			t.Fatalf("expected round-trip %q, got %q", name, tier.String())
		}
	}
	if _, err := ParseAchievementTier("diamond"); !errors.Is(err, ErrInvalidTier) {
		t.Fatalf("expected ErrInvalidTier, got %v", err)
	}
}
