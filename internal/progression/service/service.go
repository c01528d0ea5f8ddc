// Package service implements the progression facades: profiles, skills,
// research, achievements, objectives, campaign, and leaderboards. Each
// facade operates on the storage interfaces, the loaded content pack, and
// the shared event journal.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/verdantworks/growline/internal/progression/bus"
	"github.com/verdantworks/growline/internal/progression/event"
	"github.com/verdantworks/growline/internal/storage"
)

// skillPointsPerLevel is awarded for each level gained.
const skillPointsPerLevel = 1

// researchPointsPerLevel is awarded for each level gained.
const researchPointsPerLevel = 1

// Stores aggregates the storage interfaces the facades depend on.
type Stores struct {
	Profiles     storage.ProfileStore
	Skills       storage.SkillStore
	Research     storage.ResearchStore
	Achievements storage.AchievementStore
	Stats        storage.StatStore
	Objectives   storage.ObjectiveStore
	Campaign     storage.CampaignStore
	Leaderboards storage.LeaderboardStore
	Events       storage.EventStore
}

// Journal appends progression events to durable storage and fans them out
// on the in-process bus.
type Journal struct {
	events storage.EventStore
	bus    *bus.Bus
}

// NewJournal creates a journal over an event store and an optional bus.
func NewJournal(events storage.EventStore, eventBus *bus.Bus) *Journal {
	return &Journal{events: events, bus: eventBus}
}

// Emit appends one event and publishes the stored copy. Append failures are
// returned; publishing is fire-and-forget.
func (j *Journal) Emit(ctx context.Context, profileID string, eventType event.Type, entityID string, payload any) error {
	if j == nil || j.events == nil {
		return nil
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", eventType, err)
	}

	stored, err := j.events.AppendEvent(ctx, event.Event{
		ProfileID:   profileID,
		Type:        eventType,
		EntityType:  eventType.Domain(),
		EntityID:    entityID,
		PayloadJSON: encoded,
	})
	if err != nil {
		return fmt.Errorf("append %s event: %w", eventType, err)
	}

	if j.bus != nil {
		j.bus.Publish(stored)
	}
	return nil
}

// emitOrLog is for events recorded after the primary state change already
// persisted: the operation has succeeded, so a journal failure is logged
// instead of surfaced.
func (j *Journal) emitOrLog(ctx context.Context, profileID string, eventType event.Type, entityID string, payload any) {
	if err := j.Emit(ctx, profileID, eventType, entityID, payload); err != nil {
		log.Printf("journal %s for profile %s: %v", eventType, profileID, err)
	}
}
