package service

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/verdantworks/growline/internal/platform/errors"
	"github.com/verdantworks/growline/internal/platform/id"
	"github.com/verdantworks/growline/internal/progression/domain"
	"github.com/verdantworks/growline/internal/progression/engine"
	"github.com/verdantworks/growline/internal/progression/event"
	"github.com/verdantworks/growline/internal/storage"
)

// Profiles manages grower profiles and experience.
type Profiles struct {
	stores      Stores
	curve       *engine.Curve
	journal     *Journal
	clock       func() time.Time
	idGenerator func() (string, error)
}

// NewProfiles creates a Profiles facade with default clock and ID generator.
func NewProfiles(stores Stores, curve *engine.Curve, journal *Journal) *Profiles {
	if curve == nil {
		curve = engine.DefaultCurve()
	}
	return &Profiles{
		stores:      stores,
		curve:       curve,
		journal:     journal,
		clock:       time.Now,
		idGenerator: id.New,
	}
}

// Create creates a profile and journals its creation.
func (p *Profiles) Create(ctx context.Context, input domain.CreateProfileInput) (domain.Profile, error) {
	profile, err := domain.CreateProfile(input, p.clock, p.idGenerator)
	if errors.Is(err, domain.ErrEmptyDisplayName) {
		return domain.Profile{}, apperrors.Wrap(apperrors.CodeProfileNameEmpty, "create profile", err)
	}
	if err != nil {
		return domain.Profile{}, err
	}

	if err := p.stores.Profiles.PutProfile(ctx, profile); err != nil {
		return domain.Profile{}, err
	}

	if err := p.journal.Emit(ctx, profile.ID, event.TypeProfileCreated, profile.ID, event.ProfileCreatedPayload{
		DisplayName: profile.DisplayName,
	}); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

// Get loads a profile by ID.
func (p *Profiles) Get(ctx context.Context, profileID string) (domain.Profile, error) {
	profile, err := p.stores.Profiles.GetProfile(ctx, profileID)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.Profile{}, apperrors.WithMetadata(apperrors.CodeProfileNotFound, "profile not found",
			map[string]string{"profile_id": profileID})
	}
	if err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

// List returns all profiles.
func (p *Profiles) List(ctx context.Context) ([]domain.Profile, error) {
	return p.stores.Profiles.ListProfiles(ctx)
}

// GrantResult describes the outcome of an experience grant.
type GrantResult struct {
	Profile   domain.Profile
	FromLevel int
	ToLevel   int
	// SkillPointsAwarded and ResearchPointsAwarded are the level-up awards
	// included in the returned profile's balances.
	SkillPointsAwarded    int
	ResearchPointsAwarded int
}

// LeveledUp reports whether the grant crossed at least one level threshold.
func (r GrantResult) LeveledUp() bool {
	return r.ToLevel > r.FromLevel
}

// GrantExperience adds experience to a profile, recalculates its level on
// the curve, and awards level-up points. Source labels the grant origin in
// the journal ("objective", "harvest", ...).
func (p *Profiles) GrantExperience(ctx context.Context, profileID string, amount int64, source string) (GrantResult, error) {
	profile, err := p.Get(ctx, profileID)
	if err != nil {
		return GrantResult{}, err
	}

	updated, err := profile.AddExperience(amount)
	if err != nil {
		return GrantResult{}, err
	}

	result := GrantResult{
		FromLevel: profile.Level,
		ToLevel:   p.curve.LevelForExperience(updated.Experience),
	}
	if result.ToLevel > result.FromLevel {
		levels := result.ToLevel - result.FromLevel
		result.SkillPointsAwarded = levels * skillPointsPerLevel
		result.ResearchPointsAwarded = levels * researchPointsPerLevel
		updated.SkillPoints += result.SkillPointsAwarded
		updated.ResearchPoints += result.ResearchPointsAwarded
	}
	updated.Level = result.ToLevel
	updated.UpdatedAt = p.clock().UTC()

	if err := p.stores.Profiles.PutProfile(ctx, updated); err != nil {
		return GrantResult{}, err
	}
	result.Profile = updated

	p.journal.emitOrLog(ctx, profileID, event.TypeExperienceGained, profileID, event.ExperienceGainedPayload{
		Amount: amount,
		Total:  updated.Experience,
		Source: source,
	})
	if result.LeveledUp() {
		p.journal.emitOrLog(ctx, profileID, event.TypeLevelUp, profileID, event.LevelUpPayload{
			FromLevel:          result.FromLevel,
			ToLevel:            result.ToLevel,
			SkillPointsAwarded: result.SkillPointsAwarded,
		})
	}
	return result, nil
}

// ProgressToNext reports how far a profile's experience sits inside its
// current level.
func (p *Profiles) ProgressToNext(profile domain.Profile) (into int64, required int64) {
	return p.curve.ProgressToNext(profile.Experience)
}
