package domain

import (
	"errors"
	"time"
)

// SkillBranch identifies the tree branch a skill node belongs to.
type SkillBranch int

const (
	// SkillBranchUnspecified represents an invalid branch value.
	SkillBranchUnspecified SkillBranch = iota
	// SkillBranchCultivation covers growing, environment, and harvest skills.
	SkillBranchCultivation
	// SkillBranchScience covers genetics, processing, and analysis skills.
	SkillBranchScience
	// SkillBranchBusiness covers economics, facilities, and trade skills.
	SkillBranchBusiness
)

var skillBranchNames = map[SkillBranch]string{
	SkillBranchCultivation: "cultivation",
	SkillBranchScience:     "science",
	SkillBranchBusiness:    "business",
}

// String returns the lowercase branch name, or "unspecified".
func (b SkillBranch) String() string {
	if name, ok := skillBranchNames[b]; ok {
		return name
	}
	return "unspecified"
}

// ParseSkillBranch maps a branch name to its enum value.
func ParseSkillBranch(name string) (SkillBranch, error) {
	for branch, branchName := range skillBranchNames {
		if branchName == name {
			return branch, nil
		}
	}
	return SkillBranchUnspecified, ErrInvalidSkillBranch
}

var (
	// ErrInvalidSkillBranch indicates an unknown branch name.
	ErrInvalidSkillBranch = errors.New("invalid skill branch")
	// ErrMaxRankReached indicates the rank is already at the node maximum.
	ErrMaxRankReached = errors.New("skill rank is at maximum level")
	// ErrInvalidMaxLevel indicates a node definition with a non-positive max level.
	ErrInvalidMaxLevel = errors.New("skill max level must be positive")
)

// Effect is a stat modifier granted by a skill rank, synergy, research
// project, or campaign phase.
type Effect struct {
	// Stat is the gameplay stat the effect modifies (e.g. "yield_rate").
	Stat string
	// Flat is added to the stat before multipliers.
	Flat float64
	// Percent is a percentage modifier (0.1 = +10%).
	Percent float64
}

// SkillNode is an unlockable upgrade definition in the skill tree.
type SkillNode struct {
	ID            string
	Name          string
	Branch        SkillBranch
	Prerequisites []string // node IDs, all required
	Cost          int      // skill points per rank
	MaxLevel      int
	// EffectsPerLevel applies once per rank held.
	EffectsPerLevel []Effect
	// UnlockScript is an optional Lua condition evaluated before unlock.
	UnlockScript string
}

// Validate checks node definition invariants.
func (n SkillNode) Validate() error {
	if n.MaxLevel <= 0 {
		return ErrInvalidMaxLevel
	}
	return nil
}

// SkillRank is a player's state for one skill node.
type SkillRank struct {
	ProfileID  string
	NodeID     string
	Level      int
	UnlockedAt time.Time
}

// Raise returns the rank with its level increased by one, guarding the
// node's max level.
func (r SkillRank) Raise(node SkillNode) (SkillRank, error) {
	if r.Level >= node.MaxLevel {
		return SkillRank{}, ErrMaxRankReached
	}
	r.Level++
	return r, nil
}
