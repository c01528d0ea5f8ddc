package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/verdantworks/growline/internal/platform/id"
)

var (
	// ErrEmptyDisplayName indicates a missing profile display name.
	ErrEmptyDisplayName = errors.New("profile display name is required")
	// ErrNegativeExperience indicates a negative experience grant.
	ErrNegativeExperience = errors.New("experience grant must not be negative")
	// ErrInsufficientPoints indicates a spend larger than the balance.
	ErrInsufficientPoints = errors.New("insufficient points")
)

// Profile represents one player's progression root.
type Profile struct {
	ID             string
	DisplayName    string
	Level          int
	Experience     int64
	SkillPoints    int
	ResearchPoints int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreateProfileInput describes the metadata needed to create a profile.
type CreateProfileInput struct {
	DisplayName string
}

// CreateProfile creates a new profile with a generated ID and timestamps.
// New profiles start at level 1 with empty balances.
func CreateProfile(input CreateProfileInput, now func() time.Time, idGenerator func() (string, error)) (Profile, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.New
	}

	normalized, err := NormalizeCreateProfileInput(input)
	if err != nil {
		return Profile{}, err
	}

	profileID, err := idGenerator()
	if err != nil {
		return Profile{}, fmt.Errorf("generate profile id: %w", err)
	}

	createdAt := now().UTC()
	return Profile{
		ID:          profileID,
		DisplayName: normalized.DisplayName,
		Level:       1,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}, nil
}

// NormalizeCreateProfileInput trims and validates profile input metadata.
func NormalizeCreateProfileInput(input CreateProfileInput) (CreateProfileInput, error) {
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	if input.DisplayName == "" {
		return CreateProfileInput{}, ErrEmptyDisplayName
	}
	return input, nil
}

// AddExperience returns the profile with experience increased by amount.
// Level recalculation is the caller's concern; the profile only guards the
// non-negative grant invariant.
func (p Profile) AddExperience(amount int64) (Profile, error) {
	if amount < 0 {
		return Profile{}, ErrNegativeExperience
	}
	p.Experience += amount
	return p, nil
}

// SpendSkillPoints returns the profile with the skill point balance reduced.
func (p Profile) SpendSkillPoints(amount int) (Profile, error) {
	if amount < 0 || amount > p.SkillPoints {
		return Profile{}, fmt.Errorf("%w: need %d skill points, have %d", ErrInsufficientPoints, amount, p.SkillPoints)
	}
	p.SkillPoints -= amount
	return p, nil
}

// SpendResearchPoints returns the profile with the research point balance reduced.
func (p Profile) SpendResearchPoints(amount int) (Profile, error) {
	if amount < 0 || amount > p.ResearchPoints {
		return Profile{}, fmt.Errorf("%w: need %d research points, have %d", ErrInsufficientPoints, amount, p.ResearchPoints)
	}
	p.ResearchPoints -= amount
	return p, nil
}
