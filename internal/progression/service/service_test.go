package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verdantworks/growline/internal/content"
	"github.com/verdantworks/growline/internal/progression/bus"
	"github.com/verdantworks/growline/internal/progression/domain"
	"github.com/verdantworks/growline/internal/progression/engine"
	"github.com/verdantworks/growline/internal/progression/event"
	"github.com/verdantworks/growline/internal/storage"
	"github.com/verdantworks/growline/internal/storage/sqlite"
)

// env wires every facade over a real SQLite store and the default pack.
type env struct {
	store        *sqlite.Store
	stores       Stores
	bus          *bus.Bus
	journal      *Journal
	profiles     *Profiles
	stats        *Stats
	skills       *Skills
	research     *Research
	achievements *Achievements
	objectives   *Objectives
	campaign     *Campaign
	leaderboards *Leaderboards
	progress     *Progress

	now time.Time
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "progression.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	pack, err := content.Default()
	if err != nil {
		t.Fatalf("parse default pack: %v", err)
	}
	idx := content.NewIndex(pack)

	stores := Stores{
		Profiles:     store,
		Skills:       store,
		Research:     store,
		Achievements: store,
		Stats:        store,
		Objectives:   store,
		Campaign:     store,
		Leaderboards: store,
		Events:       store,
	}

	eventBus := bus.New()
	journal := NewJournal(store, eventBus)

	e := &env{
		store:   store,
		stores:  stores,
		bus:     eventBus,
		journal: journal,
		now:     time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC),
	}

	e.profiles = NewProfiles(stores, engine.DefaultCurve(), journal)
	e.profiles.clock = e.clock
	e.stats = NewStats(stores, idx)
	e.skills = NewSkills(stores, idx, e.profiles, e.stats, journal)
	e.skills.clock = e.clock
	e.research = NewResearch(stores, idx, e.profiles, journal)
	e.research.clock = e.clock
	e.achievements = NewAchievements(stores, idx, journal)
	e.achievements.clock = e.clock
	e.objectives, err = NewObjectives(stores, idx, e.profiles, journal)
	if err != nil {
		t.Fatalf("new objectives: %v", err)
	}
	e.objectives.clock = e.clock
	e.campaign = NewCampaign(stores, idx, e.profiles, e.achievements, journal)
	e.campaign.clock = e.clock
	e.leaderboards = NewLeaderboards(stores, idx, e.profiles, journal)
	e.leaderboards.clock = e.clock
	e.progress = NewProgress(e.stats, e.achievements, e.objectives)

	return e
}

func (e *env) clock() time.Time { return e.now }

// createProfile creates a profile with the given balances preloaded.
func (e *env) createProfile(t *testing.T, name string, level int, skillPoints, researchPoints int) domain.Profile {
	t.Helper()
	profile, err := e.profiles.Create(context.Background(), domain.CreateProfileInput{DisplayName: name})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if level > 1 || skillPoints > 0 || researchPoints > 0 {
		if level > 1 {
			profile.Level = level
			experience, err := engine.DefaultCurve().ExperienceForLevel(level)
			if err != nil {
				t.Fatalf("experience for level: %v", err)
			}
			profile.Experience = experience
		}
		profile.SkillPoints = skillPoints
		profile.ResearchPoints = researchPoints
		if err := e.stores.Profiles.PutProfile(context.Background(), profile); err != nil {
			t.Fatalf("seed profile balances: %v", err)
		}
	}
	return profile
}

// journalTypes returns the event types recorded for a profile, in order.
func (e *env) journalTypes(t *testing.T, profileID string) []event.Type {
	t.Helper()
	result, err := e.store.ListEvents(context.Background(), storage.ListEventsRequest{
		ProfileID: profileID,
		PageSize:  500,
	})
	if err != nil {
		t.Fatalf("list journal: %v", err)
	}
	types := make([]event.Type, len(result.Events))
	for i, evt := range result.Events {
		types[i] = evt.Type
	}
	return types
}

func containsType(types []event.Type, want event.Type) bool {
	for _, typ := range types {
		if typ == want {
			return true
		}
	}
	return false
}
