package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/verdantworks/growline/internal/content"
	apperrors "github.com/verdantworks/growline/internal/platform/errors"
	"github.com/verdantworks/growline/internal/platform/id"
	"github.com/verdantworks/growline/internal/progression/domain"
	"github.com/verdantworks/growline/internal/progression/event"
)

// experienceSourceObjective labels objective rewards in the journal.
const experienceSourceObjective = "objective"

// Objectives manages daily and weekly objective assignment and progress.
type Objectives struct {
	stores      Stores
	content     *content.Index
	profiles    *Profiles
	journal     *Journal
	clock       func() time.Time
	idGenerator func() (string, error)

	dailySchedule  cron.Schedule
	weeklySchedule cron.Schedule
}

// NewObjectives creates an Objectives facade. The pack's reset schedules
// must have passed content validation.
func NewObjectives(stores Stores, idx *content.Index, profiles *Profiles, journal *Journal) (*Objectives, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedules := idx.Pack().Schedules

	daily, err := parser.Parse(schedules.Daily)
	if err != nil {
		return nil, fmt.Errorf("parse daily schedule: %w", err)
	}
	weekly, err := parser.Parse(schedules.Weekly)
	if err != nil {
		return nil, fmt.Errorf("parse weekly schedule: %w", err)
	}

	return &Objectives{
		stores:         stores,
		content:        idx,
		profiles:       profiles,
		journal:        journal,
		clock:          time.Now,
		idGenerator:    id.New,
		dailySchedule:  daily,
		weeklySchedule: weekly,
	}, nil
}

// Assign instantiates one objective from a template. The deadline is the
// next reset fire for the template's cadence.
func (o *Objectives) Assign(ctx context.Context, profileID, templateID string) (domain.Objective, error) {
	template, ok := o.content.ObjectiveTemplate(templateID)
	if !ok {
		return domain.Objective{}, apperrors.WithMetadata(apperrors.CodeObjectiveUnknown,
			"unknown objective template", map[string]string{"template_id": templateID})
	}

	if _, err := o.profiles.Get(ctx, profileID); err != nil {
		return domain.Objective{}, err
	}

	objective, err := domain.AssignObjective(profileID, template, o.nextReset(template.Cadence), o.clock, o.idGenerator)
	if err != nil {
		return domain.Objective{}, err
	}
	if err := o.stores.Objectives.PutObjective(ctx, objective); err != nil {
		return domain.Objective{}, err
	}

	o.journal.emitOrLog(ctx, profileID, event.TypeObjectiveAssigned, objective.ID, event.ObjectiveAssignedPayload{
		ObjectiveID: objective.ID,
		TemplateID:  template.ID,
		ExpiresAt:   objective.ExpiresAt.UnixMilli(),
	})
	return objective, nil
}

// AssignCadence assigns every template of a cadence that the profile does
// not already hold an open objective for.
func (o *Objectives) AssignCadence(ctx context.Context, profileID string, cadence domain.ObjectiveCadence) ([]domain.Objective, error) {
	existing, err := o.stores.Objectives.ListObjectives(ctx, profileID)
	if err != nil {
		return nil, err
	}
	now := o.clock().UTC()
	open := make(map[string]bool)
	for _, objective := range existing {
		if !objective.Completed() && !objective.Expired(now) {
			open[objective.TemplateID] = true
		}
	}

	var assigned []domain.Objective
	for _, template := range o.content.ObjectiveTemplates() {
		if template.Cadence != cadence || open[template.ID] {
			continue
		}
		objective, err := o.Assign(ctx, profileID, template.ID)
		if err != nil {
			return nil, err
		}
		assigned = append(assigned, objective)
	}
	return assigned, nil
}

// RecordStat applies a stat delta to every open objective tracking that
// stat. Completed objectives pay their experience reward.
func (o *Objectives) RecordStat(ctx context.Context, profileID, stat string, delta int64) ([]domain.Objective, error) {
	objectives, err := o.stores.Objectives.ListObjectives(ctx, profileID)
	if err != nil {
		return nil, err
	}

	now := o.clock().UTC()
	var updated []domain.Objective
	for _, objective := range objectives {
		if objective.Stat != stat || objective.Completed() || objective.Expired(now) {
			continue
		}

		next, completed, err := objective.Apply(delta, now)
		if err != nil {
			return nil, err
		}
		if next.Progress == objective.Progress && !completed {
			continue
		}
		if err := o.stores.Objectives.PutObjective(ctx, next); err != nil {
			return nil, err
		}
		updated = append(updated, next)

		if completed {
			o.journal.emitOrLog(ctx, profileID, event.TypeObjectiveCompleted, next.ID, event.ObjectiveCompletedPayload{
				ObjectiveID:      next.ID,
				TemplateID:       next.TemplateID,
				RewardExperience: next.RewardExperience,
			})
			if next.RewardExperience > 0 {
				if _, err := o.profiles.GrantExperience(ctx, profileID, next.RewardExperience, experienceSourceObjective); err != nil {
					return nil, err
				}
			}
		}
	}
	return updated, nil
}

// List returns a profile's objectives ordered by deadline.
func (o *Objectives) List(ctx context.Context, profileID string) ([]domain.Objective, error) {
	return o.stores.Objectives.ListObjectives(ctx, profileID)
}

// SweepExpired retires every open objective past its deadline and journals
// one expiry per objective. Already-swept objectives are skipped, so the
// sweep is safe to run on every rotation.
func (o *Objectives) SweepExpired(ctx context.Context, profileID string) ([]domain.Objective, error) {
	objectives, err := o.stores.Objectives.ListObjectives(ctx, profileID)
	if err != nil {
		return nil, err
	}

	now := o.clock().UTC()
	var expired []domain.Objective
	for _, objective := range objectives {
		if objective.Completed() || objective.Swept() || !objective.Expired(now) {
			continue
		}
		swept := objective.MarkExpired(now)
		if err := o.stores.Objectives.PutObjective(ctx, swept); err != nil {
			return nil, err
		}
		expired = append(expired, swept)
		o.journal.emitOrLog(ctx, profileID, event.TypeObjectiveExpired, swept.ID, event.ObjectiveExpiredPayload{
			ObjectiveID: swept.ID,
			TemplateID:  swept.TemplateID,
			Progress:    swept.Progress,
			Target:      swept.Target,
		})
	}
	return expired, nil
}

// Rotate sweeps expired objectives and assigns the cadence's templates for
// every profile. The reset scheduler calls this on each cron fire.
func (o *Objectives) Rotate(ctx context.Context, cadence domain.ObjectiveCadence) error {
	profiles, err := o.stores.Profiles.ListProfiles(ctx)
	if err != nil {
		return err
	}
	for _, profile := range profiles {
		if _, err := o.SweepExpired(ctx, profile.ID); err != nil {
			return err
		}
		if _, err := o.AssignCadence(ctx, profile.ID, cadence); err != nil {
			return err
		}
	}
	return nil
}

// nextReset returns the next cron fire for a cadence.
func (o *Objectives) nextReset(cadence domain.ObjectiveCadence) time.Time {
	now := o.clock().UTC()
	if cadence == domain.ObjectiveCadenceWeekly {
		return o.weeklySchedule.Next(now)
	}
	return o.dailySchedule.Next(now)
}
