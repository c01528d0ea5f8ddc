package engine

import (
	"math"
	"testing"

	"github.com/verdantworks/growline/internal/progression/domain"
)

func TestBonusStackAdditiveWithinClass(t *testing.T) {
	stack := NewBonusStack()
	stack.Add(BonusSourceSkill, domain.Effect{Stat: "yield_rate", Percent: 0.10}, 1)
	stack.Add(BonusSourceSkill, domain.Effect{Stat: "yield_rate", Percent: 0.05}, 1)

	bonus := stack.FoldStat("yield_rate")
	if !closeTo(bonus.Multiplier, 1.15) {
		t.Fatalf("expected additive 1.15 within a class, got %f", bonus.Multiplier)
	}
}

func TestBonusStackMultiplicativeAcrossClasses(t *testing.T) {
	stack := NewBonusStack()
	stack.Add(BonusSourceSkill, domain.Effect{Stat: "yield_rate", Percent: 0.10}, 1)
	stack.Add(BonusSourceSynergy, domain.Effect{Stat: "yield_rate", Percent: 0.20}, 1)
	stack.Add(BonusSourceResearch, domain.Effect{Stat: "yield_rate", Percent: 0.50}, 1)

	bonus := stack.FoldStat("yield_rate")
	want := 1.10 * 1.20 * 1.50
	if !closeTo(bonus.Multiplier, want) {
		t.Fatalf("expected %f across classes, got %f", want, bonus.Multiplier)
	}
}

func TestBonusStackScalesByRank(t *testing.T) {
	stack := NewBonusStack()
	stack.Add(BonusSourceSkill, domain.Effect{Stat: "potency", Flat: 2, Percent: 0.01}, 3)

	bonus := stack.FoldStat("potency")
	if bonus.Flat != 6 {
		t.Fatalf("expected flat 6 at rank 3, got %f", bonus.Flat)
	}
	if !closeTo(bonus.Multiplier, 1.03) {
		t.Fatalf("expected 1.03 at rank 3, got %f", bonus.Multiplier)
	}
}

func TestBonusStackIgnoresNonPositiveCount(t *testing.T) {
	stack := NewBonusStack()
	stack.Add(BonusSourceSkill, domain.Effect{Stat: "potency", Flat: 5}, 0)
	stack.Add(BonusSourceSkill, domain.Effect{Stat: "potency", Flat: 5}, -1)

	if bonus := stack.FoldStat("potency"); bonus.Flat != 0 {
		t.Fatalf("expected no accumulation, got %f", bonus.Flat)
	}
}

func TestFoldReturnsSortedStats(t *testing.T) {
	stack := NewBonusStack()
	stack.AddAll(BonusSourceCampaign, []domain.Effect{
		{Stat: "yield_rate", Flat: 1},
		{Stat: "growth_speed", Flat: 1},
		{Stat: "potency", Flat: 1},
	})

	bonuses := stack.Fold()
	if len(bonuses) != 3 {
		t.Fatalf("expected 3 stats, got %d", len(bonuses))
	}
	for i := 1; i < len(bonuses); i++ {
		if bonuses[i-1].Stat >= bonuses[i].Stat {
			t.Fatalf("expected sorted stats, got %v before %v", bonuses[i-1].Stat, bonuses[i].Stat)
		}
	}
}

func TestStatBonusApply(t *testing.T) {
	bonus := StatBonus{Flat: 10, Multiplier: 1.5}
	if got := bonus.Apply(90); !closeTo(got, 150) {
		t.Fatalf("expected (90+10)*1.5 = 150, got %f", got)
	}
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
