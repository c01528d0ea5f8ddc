package service

import (
	"context"

	"github.com/verdantworks/growline/internal/storage"
)

// Events reads the progression journal.
type Events struct {
	stores   Stores
	profiles *Profiles
}

// NewEvents creates an Events facade.
func NewEvents(stores Stores, profiles *Profiles) *Events {
	return &Events{stores: stores, profiles: profiles}
}

// List returns a page of a profile's journal, oldest first. Filter accepts
// the journal filter grammar; an empty filter lists everything.
func (e *Events) List(ctx context.Context, req storage.ListEventsRequest) (storage.ListEventsResult, error) {
	if _, err := e.profiles.Get(ctx, req.ProfileID); err != nil {
		return storage.ListEventsResult{}, err
	}
	return e.stores.Events.ListEvents(ctx, req)
}
