// Package telemetry records operational telemetry for the progression
// service: milestone events worth keeping outside the player journal, such
// as level-ups, campaign advances, and score submissions.
package telemetry

import (
	"context"
	"log"
	"time"

	"github.com/verdantworks/growline/internal/progression/bus"
	"github.com/verdantworks/growline/internal/progression/event"
	"github.com/verdantworks/growline/internal/storage"
)

// Severity levels for telemetry records.
const (
	SeverityInfo  = "INFO"
	SeverityWarn  = "WARN"
	SeverityError = "ERROR"
)

// Emitter records operational telemetry events.
type Emitter struct {
	store storage.TelemetryStore
	clock func() time.Time
}

// NewEmitter creates a new telemetry emitter.
func NewEmitter(store storage.TelemetryStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records a telemetry event. It is a no-op when the store is nil.
func (e *Emitter) Emit(ctx context.Context, evt storage.TelemetryEvent) error {
	if e == nil || e.store == nil {
		return nil
	}
	if evt.Timestamp.IsZero() {
		if e.clock == nil {
			evt.Timestamp = time.Now().UTC()
		} else {
			evt.Timestamp = e.clock().UTC()
		}
	}
	return e.store.AppendTelemetryEvent(ctx, evt)
}

// milestoneTypes lists the journal events mirrored into telemetry.
var milestoneTypes = []event.Type{
	event.TypeLevelUp,
	event.TypeAchievementCompleted,
	event.TypeResearchCompleted,
	event.TypeCampaignPhaseAdvanced,
	event.TypeScoreSubmitted,
}

// Observe mirrors progression milestones from the bus into the telemetry
// store. Recording failures are logged, never propagated to the publisher.
func (e *Emitter) Observe(eventBus *bus.Bus) {
	if e == nil || eventBus == nil {
		return
	}
	for _, eventType := range milestoneTypes {
		eventBus.Subscribe(eventType, func(evt event.Event) {
			record := storage.TelemetryEvent{
				Timestamp: evt.Timestamp,
				Severity:  SeverityInfo,
				Name:      string(evt.Type),
				ProfileID: evt.ProfileID,
				Detail:    string(evt.PayloadJSON),
			}
			if err := e.Emit(context.Background(), record); err != nil {
				log.Printf("[TELEMETRY] record %s: %v", evt.Type, err)
			}
		})
	}
}
