// Package engine implements the progression rules: the experience curve,
// prerequisite resolution, synergy activation, and cross-system bonus
// stacking.
package engine

import "errors"

// Default curve tuning. Content packs may override these via NewCurve.
const (
	// DefaultBaseExperience is the experience needed to reach level 2.
	DefaultBaseExperience = 100
	// DefaultGrowth is the per-level multiplier on the level-up requirement.
	DefaultGrowth = 1.15
	// DefaultLevelCap is the maximum reachable level.
	DefaultLevelCap = 100
)

var (
	// ErrInvalidCurve indicates curve parameters that cannot produce
	// monotonic thresholds.
	ErrInvalidCurve = errors.New("curve requires positive base, growth >= 1, and a positive cap")
	// ErrLevelOutOfRange indicates a level outside [1, cap].
	ErrLevelOutOfRange = errors.New("level is out of range")
)

// Curve maps total experience to levels via precomputed cumulative
// thresholds. thresholds[i] is the total experience required to reach
// level i+1, so thresholds[0] is always 0.
type Curve struct {
	cap        int
	thresholds []int64
}

// NewCurve precomputes a threshold curve.
func NewCurve(base int64, growth float64, levelCap int) (*Curve, error) {
	if base <= 0 || growth < 1 || levelCap <= 0 {
		return nil, ErrInvalidCurve
	}

	thresholds := make([]int64, levelCap)
	step := float64(base)
	var total int64
	for level := 1; level < levelCap; level++ {
		total += int64(step)
		thresholds[level] = total
		step *= growth
	}
	return &Curve{cap: levelCap, thresholds: thresholds}, nil
}

// DefaultCurve returns the curve with default tuning.
func DefaultCurve() *Curve {
	curve, err := NewCurve(DefaultBaseExperience, DefaultGrowth, DefaultLevelCap)
	if err != nil {
		// Defaults are compile-time constants; they always validate.
		panic(err)
	}
	return curve
}

// Cap returns the maximum reachable level.
func (c *Curve) Cap() int {
	return c.cap
}

// LevelForExperience returns the level reached at the given total experience.
// Experience past the cap threshold stays at the cap.
func (c *Curve) LevelForExperience(experience int64) int {
	if experience < 0 {
		return 1
	}
	// Binary search over the sorted thresholds.
	lo, hi := 0, len(c.thresholds)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if c.thresholds[mid] <= experience {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1
}

// ExperienceForLevel returns the total experience required to reach level.
func (c *Curve) ExperienceForLevel(level int) (int64, error) {
	if level < 1 || level > c.cap {
		return 0, ErrLevelOutOfRange
	}
	return c.thresholds[level-1], nil
}

// ProgressToNext reports the experience into the current level and the
// requirement for the next one. At the cap, remaining is 0.
func (c *Curve) ProgressToNext(experience int64) (into int64, required int64) {
	level := c.LevelForExperience(experience)
	if level >= c.cap {
		return 0, 0
	}
	current := c.thresholds[level-1]
	next := c.thresholds[level]
	return experience - current, next - current
}
