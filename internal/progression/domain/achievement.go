package domain

import (
	"errors"
	"time"
)

// AchievementTier describes the rarity tier of an achievement.
type AchievementTier int

const (
	// AchievementTierUnspecified represents an invalid tier value.
	AchievementTierUnspecified AchievementTier = iota
	// AchievementTierBronze is the common tier.
	AchievementTierBronze
	// AchievementTierSilver is the uncommon tier.
	AchievementTierSilver
	// AchievementTierGold is the rare tier.
	AchievementTierGold
	// AchievementTierPlatinum is the top tier.
	AchievementTierPlatinum
)

var achievementTierNames = map[AchievementTier]string{
	AchievementTierBronze:   "bronze",
	AchievementTierSilver:   "silver",
	AchievementTierGold:     "gold",
	AchievementTierPlatinum: "platinum",
}

// String returns the lowercase tier name, or "unspecified".
func (t AchievementTier) String() string {
	if name, ok := achievementTierNames[t]; ok {
		return name
	}
	return "unspecified"
}

// ParseAchievementTier maps a tier name to its enum value.
func ParseAchievementTier(name string) (AchievementTier, error) {
	for tier, tierName := range achievementTierNames {
		if tierName == name {
			return tier, nil
		}
	}
	return AchievementTierUnspecified, ErrInvalidTier
}

var (
	// ErrInvalidTier indicates an unknown achievement tier name.
	ErrInvalidTier = errors.New("invalid achievement tier")
	// ErrInvalidTarget indicates a non-positive achievement target.
	ErrInvalidTarget = errors.New("achievement target must be positive")
)

// Achievement is a tracked milestone definition.
type Achievement struct {
	ID string
	// Name is the display name. Hidden achievements keep it server-side
	// until completion.
	Name string
	// Stat is the gameplay stat whose deltas drive progress.
	Stat string
	// Target is the stat total that completes the achievement.
	Target int64
	Tier   AchievementTier
	// Points contribute to the profile's achievement score.
	Points int
	Hidden bool
}

// Validate checks achievement definition invariants.
func (a Achievement) Validate() error {
	if a.Target <= 0 {
		return ErrInvalidTarget
	}
	if a.Tier == AchievementTierUnspecified {
		return ErrInvalidTier
	}
	return nil
}

// AchievementProgress is a player's state for one achievement.
type AchievementProgress struct {
	ProfileID     string
	AchievementID string
	// Progress is clamped to [0, definition target].
	Progress    int64
	CompletedAt *time.Time
}

// Completed reports whether the achievement has been earned.
func (p AchievementProgress) Completed() bool {
	return p.CompletedAt != nil
}

// Apply adds a stat delta to the progress, clamping to [0, target].
// Completion fires at most once: the returned flag is true only on the
// transition that first reaches the target.
func (p AchievementProgress) Apply(definition Achievement, delta int64, now func() time.Time) (AchievementProgress, bool) {
	if p.Completed() {
		return p, false
	}
	if now == nil {
		now = time.Now
	}

	p.Progress += delta
	if p.Progress < 0 {
		p.Progress = 0
	}
	if p.Progress >= definition.Target {
		p.Progress = definition.Target
		completedAt := now().UTC()
		p.CompletedAt = &completedAt
		return p, true
	}
	return p, false
}
