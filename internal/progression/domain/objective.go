package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/verdantworks/growline/internal/platform/id"
)

// ObjectiveCadence describes how often an objective pool resets.
type ObjectiveCadence int

const (
	// ObjectiveCadenceUnspecified represents an invalid cadence value.
	ObjectiveCadenceUnspecified ObjectiveCadence = iota
	// ObjectiveCadenceDaily resets on the daily schedule.
	ObjectiveCadenceDaily
	// ObjectiveCadenceWeekly resets on the weekly schedule.
	ObjectiveCadenceWeekly
)

var objectiveCadenceNames = map[ObjectiveCadence]string{
	ObjectiveCadenceDaily:  "daily",
	ObjectiveCadenceWeekly: "weekly",
}

// String returns the lowercase cadence name, or "unspecified".
func (c ObjectiveCadence) String() string {
	if name, ok := objectiveCadenceNames[c]; ok {
		return name
	}
	return "unspecified"
}

// ParseObjectiveCadence maps a cadence name to its enum value.
func ParseObjectiveCadence(name string) (ObjectiveCadence, error) {
	for cadence, cadenceName := range objectiveCadenceNames {
		if cadenceName == name {
			return cadence, nil
		}
	}
	return ObjectiveCadenceUnspecified, ErrInvalidCadence
}

var (
	// ErrInvalidCadence indicates an unknown objective cadence name.
	ErrInvalidCadence = errors.New("invalid objective cadence")
	// ErrObjectiveExpired indicates progress applied past the deadline.
	ErrObjectiveExpired = errors.New("objective has expired")
	// ErrObjectiveCompleted indicates progress applied to a finished objective.
	ErrObjectiveCompleted = errors.New("objective is already completed")
)

// ObjectiveTemplate is a definition an objective is assigned from.
type ObjectiveTemplate struct {
	ID      string
	Name    string
	Stat    string
	Target  int64
	Cadence ObjectiveCadence
	// RewardExperience is granted once on completion.
	RewardExperience int64
}

// Validate checks template definition invariants.
func (t ObjectiveTemplate) Validate() error {
	if t.Target <= 0 {
		return errors.New("objective target must be positive")
	}
	if t.Cadence == ObjectiveCadenceUnspecified {
		return ErrInvalidCadence
	}
	return nil
}

// Objective is an assigned task tracked for one profile.
type Objective struct {
	ID         string
	ProfileID  string
	TemplateID string
	Stat       string
	// Progress is clamped to [0, Target].
	Progress         int64
	Target           int64
	RewardExperience int64
	AssignedAt       time.Time
	ExpiresAt        time.Time
	CompletedAt      *time.Time
	// ExpiredAt records when an expiry sweep retired the objective.
	ExpiredAt *time.Time
}

// AssignObjective instantiates an objective from a template with a deadline.
func AssignObjective(profileID string, template ObjectiveTemplate, expiresAt time.Time, now func() time.Time, idGenerator func() (string, error)) (Objective, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.New
	}
	if err := template.Validate(); err != nil {
		return Objective{}, err
	}

	objectiveID, err := idGenerator()
	if err != nil {
		return Objective{}, fmt.Errorf("generate objective id: %w", err)
	}

	return Objective{
		ID:               objectiveID,
		ProfileID:        profileID,
		TemplateID:       template.ID,
		Stat:             template.Stat,
		Target:           template.Target,
		RewardExperience: template.RewardExperience,
		AssignedAt:       now().UTC(),
		ExpiresAt:        expiresAt.UTC(),
	}, nil
}

// Completed reports whether the objective has been finished.
func (o Objective) Completed() bool {
	return o.CompletedAt != nil
}

// Expired reports whether the deadline has passed at the given time.
func (o Objective) Expired(at time.Time) bool {
	return at.After(o.ExpiresAt)
}

// Swept reports whether an expiry sweep has already retired the objective.
func (o Objective) Swept() bool {
	return o.ExpiredAt != nil
}

// MarkExpired returns a copy with the sweep time recorded.
func (o Objective) MarkExpired(at time.Time) Objective {
	expiredAt := at.UTC()
	o.ExpiredAt = &expiredAt
	return o
}

// Apply adds a stat delta to the progress, clamping to [0, Target].
// The returned flag is true only on the transition that first reaches the
// target.
func (o Objective) Apply(delta int64, at time.Time) (Objective, bool, error) {
	if o.Completed() {
		return Objective{}, false, ErrObjectiveCompleted
	}
	if o.Expired(at) {
		return Objective{}, false, ErrObjectiveExpired
	}

	o.Progress += delta
	if o.Progress < 0 {
		o.Progress = 0
	}
	if o.Progress >= o.Target {
		o.Progress = o.Target
		completedAt := at.UTC()
		o.CompletedAt = &completedAt
		return o, true, nil
	}
	return o, false, nil
}
