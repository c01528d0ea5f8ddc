package domain

import (
	"errors"
	"testing"
	"time"
)

func TestCreateProfileNormalizesInput(t *testing.T) {
	fixedTime := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	input := CreateProfileInput{DisplayName: "  Terp Farmer  "}

	profile, err := CreateProfile(input, func() time.Time { return fixedTime }, func() (string, error) {
		return "prof123", nil
	})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}

	if profile.ID != "prof123" {
		t.Fatalf("expected id prof123, got %q", profile.ID)
	}
	if profile.DisplayName != "Terp Farmer" {
		t.Fatalf("expected trimmed name, got %q", profile.DisplayName)
	}
	if profile.Level != 1 {
		t.Fatalf("expected new profiles to start at level 1, got %d", profile.Level)
	}
	if profile.Experience != 0 || profile.SkillPoints != 0 || profile.ResearchPoints != 0 {
		t.Fatal("expected empty balances on a new profile")
	}
	if !profile.CreatedAt.Equal(fixedTime) || !profile.UpdatedAt.Equal(fixedTime) {
		t.Fatal("expected timestamps to match fixed time")
	}
}

func TestCreateProfileRequiresName(t *testing.T) {
	_, err := CreateProfile(CreateProfileInput{DisplayName: "   "}, nil, nil)
	if !errors.Is(err, ErrEmptyDisplayName) {
		t.Fatalf("expected ErrEmptyDisplayName, got %v", err)
	}
}

func TestAddExperienceRejectsNegative(t *testing.T) {
	profile := Profile{Experience: 50}

	if _, err := profile.AddExperience(-1); !errors.Is(err, ErrNegativeExperience) {
		t.Fatalf("expected ErrNegativeExperience, got %v", err)
	}

	updated, err := profile.AddExperience(25)
	if err != nil {
		t.Fatalf("add experience: %v", err)
	}
	if updated.Experience != 75 {
		t.Fatalf("expected 75 experience, got %d", updated.Experience)
	}
}

func TestSpendSkillPoints(t *testing.T) {
	tests := []struct {
		name    string
		balance int
		spend   int
		wantErr bool
		want    int
	}{
		{name: "exact balance", balance: 3, spend: 3, want: 0},
		{name: "partial spend", balance: 5, spend: 2, want: 3},
		{name: "overspend", balance: 1, spend: 2, wantErr: true},
		{name: "negative spend", balance: 5, spend: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := Profile{SkillPoints: tt.balance}
			updated, err := profile.SpendSkillPoints(tt.spend)
			if tt.wantErr {
				if !errors.Is(err, ErrInsufficientPoints) {
					t.Fatalf("expected ErrInsufficientPoints, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("spend skill points: %v", err)
			}
			if updated.SkillPoints != tt.want {
				t.Fatalf("expected %d points, got %d", tt.want, updated.SkillPoints)
			}
		})
	}
}

func TestSpendResearchPointsGuardsBalance(t *testing.T) {
	profile := Profile{ResearchPoints: 2}
	if _, err := profile.SpendResearchPoints(3); !errors.Is(err, ErrInsufficientPoints) {
		t.Fatalf("expected ErrInsufficientPoints, got %v", err)
	}
}
