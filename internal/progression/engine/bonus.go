package engine

import (
	"sort"

	"github.com/verdantworks/growline/internal/progression/domain"
)

// BonusSource classifies where a stat modifier came from. Flat and percent
// parts are additive within a source class and the percent parts compound
// multiplicatively across classes.
type BonusSource int

const (
	// BonusSourceSkill covers per-rank skill node effects.
	BonusSourceSkill BonusSource = iota
	// BonusSourceSynergy covers active synergy bonuses.
	BonusSourceSynergy
	// BonusSourceResearch covers completed research grants.
	BonusSourceResearch
	// BonusSourceCampaign covers campaign phase grants.
	BonusSourceCampaign
)

// StatBonus is the folded modifier for one stat.
type StatBonus struct {
	Stat string
	// Flat is the total flat addition across all sources.
	Flat float64
	// Multiplier is the compounded percentage factor (1.0 = unchanged).
	Multiplier float64
}

// Apply returns the stat value with the bonus applied.
func (b StatBonus) Apply(base float64) float64 {
	return (base + b.Flat) * b.Multiplier
}

// BonusStack accumulates effects from every source class and folds them
// into per-stat bonuses.
type BonusStack struct {
	// flat and percent accumulate per source class, keyed by stat.
	flat    map[BonusSource]map[string]float64
	percent map[BonusSource]map[string]float64
}

// NewBonusStack creates an empty stack.
func NewBonusStack() *BonusStack {
	return &BonusStack{
		flat:    make(map[BonusSource]map[string]float64),
		percent: make(map[BonusSource]map[string]float64),
	}
}

// Add accumulates one effect, scaled by count (e.g. skill rank).
func (s *BonusStack) Add(source BonusSource, effect domain.Effect, count int) {
	if count <= 0 || effect.Stat == "" {
		return
	}
	if s.flat[source] == nil {
		s.flat[source] = make(map[string]float64)
		s.percent[source] = make(map[string]float64)
	}
	s.flat[source][effect.Stat] += effect.Flat * float64(count)
	s.percent[source][effect.Stat] += effect.Percent * float64(count)
}

// AddAll accumulates a slice of effects at count 1.
func (s *BonusStack) AddAll(source BonusSource, effects []domain.Effect) {
	for _, effect := range effects {
		s.Add(source, effect, 1)
	}
}

// Fold returns the per-stat bonuses, sorted by stat name.
// Flat parts sum across all classes. Percent parts sum within a class and
// the class factors multiply together.
func (s *BonusStack) Fold() []StatBonus {
	stats := make(map[string]bool)
	for _, byStat := range s.flat {
		for stat := range byStat {
			stats[stat] = true
		}
	}
	for _, byStat := range s.percent {
		for stat := range byStat {
			stats[stat] = true
		}
	}

	sources := []BonusSource{BonusSourceSkill, BonusSourceSynergy, BonusSourceResearch, BonusSourceCampaign}
	bonuses := make([]StatBonus, 0, len(stats))
	for stat := range stats {
		bonus := StatBonus{Stat: stat, Multiplier: 1}
		for _, source := range sources {
			bonus.Flat += s.flat[source][stat]
			bonus.Multiplier *= 1 + s.percent[source][stat]
		}
		bonuses = append(bonuses, bonus)
	}
	sort.Slice(bonuses, func(i, j int) bool { return bonuses[i].Stat < bonuses[j].Stat })
	return bonuses
}

// FoldStat returns the folded bonus for a single stat.
func (s *BonusStack) FoldStat(stat string) StatBonus {
	bonus := StatBonus{Stat: stat, Multiplier: 1}
	for _, source := range []BonusSource{BonusSourceSkill, BonusSourceSynergy, BonusSourceResearch, BonusSourceCampaign} {
		bonus.Flat += s.flat[source][stat]
		bonus.Multiplier *= 1 + s.percent[source][stat]
	}
	return bonus
}
