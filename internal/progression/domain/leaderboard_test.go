package domain

import (
	"errors"
	"testing"
)

func TestBoardImproves(t *testing.T) {
	descending := Board{ID: "total_yield", Order: ScoreOrderDescending}
	ascending := Board{ID: "fastest_harvest", Order: ScoreOrderAscending}

	if !descending.Improves(100, 50) {
		t.Fatal("expected higher score to improve a descending board")
	}
	if descending.Improves(50, 100) {
		t.Fatal("expected lower score not to improve a descending board")
	}
	if !ascending.Improves(50, 100) {
		t.Fatal("expected lower score to improve an ascending board")
	}
	if ascending.Improves(100, 50) {
		t.Fatal("expected higher score not to improve an ascending board")
	}
	if descending.Improves(50, 50) {
		t.Fatal("expected ties not to improve")
	}
}

func TestBoardValidate(t *testing.T) {
	if err := (Board{ID: "  ", Order: ScoreOrderDescending}).Validate(); !errors.Is(err, ErrEmptyBoardID) {
		t.Fatalf("expected ErrEmptyBoardID, got %v", err)
	}
	if err := (Board{ID: "total_yield"}).Validate(); !errors.Is(err, ErrInvalidScoreOrder) {
		t.Fatalf("expected ErrInvalidScoreOrder, got %v", err)
	}
	if err := (Board{ID: "total_yield", Order: ScoreOrderDescending}).Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestSynergyActive(t *testing.T) {
	synergy := Synergy{
		ID: "master_grower",
		Members: []SynergyMember{
			{NodeID: "germination", MinRank: 3},
			{NodeID: "nutrient_mix", MinRank: 2},
		},
	}

	if synergy.Active(map[string]int{"germination": 3, "nutrient_mix": 1}) {
		t.Fatal("expected inactive synergy when a member is below threshold")
	}
	if !synergy.Active(map[string]int{"germination": 3, "nutrient_mix": 2}) {
		t.Fatal("expected active synergy when all thresholds met")
	}
	if synergy.Active(nil) {
		t.Fatal("expected inactive synergy with no ranks")
	}
}
