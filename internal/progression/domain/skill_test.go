package domain

import (
	"errors"
	"testing"
)

func TestParseSkillBranch(t *testing.T) {
	tests := []struct {
		name    string
		want    SkillBranch
		wantErr bool
	}{
		{name: "cultivation", want: SkillBranchCultivation},
		{name: "science", want: SkillBranchScience},
		{name: "business", want: SkillBranchBusiness},
		{name: "alchemy", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			branch, err := ParseSkillBranch(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSkillBranch) {
					t.Fatalf("expected ErrInvalidSkillBranch, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse branch: %v", err)
			}
			if branch != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, branch)
			}
			if branch.String() != tt.name {
				t.Fatalf("expected round-trip name %q, got %q", tt.name, branch.String())
			}
		})
	}
}

func TestSkillNodeValidateRejectsZeroMaxLevel(t *testing.T) {
	node := SkillNode{ID: "germination", MaxLevel: 0}
	if err := node.Validate(); !errors.Is(err, ErrInvalidMaxLevel) {
		t.Fatalf("expected ErrInvalidMaxLevel, got %v", err)
	}
}

func TestSkillRankRaiseStopsAtMaxLevel(t *testing.T) {
	node := SkillNode{ID: "germination", MaxLevel: 2}
	rank := SkillRank{NodeID: "germination", Level: 1}

	raised, err := rank.Raise(node)
	if err != nil {
		t.Fatalf("raise rank: %v", err)
	}
	if raised.Level != 2 {
		t.Fatalf("expected level 2, got %d", raised.Level)
	}

	if _, err := raised.Raise(node); !errors.Is(err, ErrMaxRankReached) {
		t.Fatalf("expected ErrMaxRankReached, got %v", err)
	}
}
