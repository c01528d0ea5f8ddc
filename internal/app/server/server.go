// Package server assembles the progression runtime: storage, content,
// the event bus and journal, the facades, the websocket hub, the
// objective scheduler, telemetry, and the HTTP API surface.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/verdantworks/growline/internal/api"
	"github.com/verdantworks/growline/internal/content"
	"github.com/verdantworks/growline/internal/progression/bus"
	"github.com/verdantworks/growline/internal/progression/engine"
	"github.com/verdantworks/growline/internal/progression/service"
	"github.com/verdantworks/growline/internal/storage/sqlite"
	"github.com/verdantworks/growline/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

// Server hosts the progression HTTP server and its background workers.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
	store      *sqlite.Store
	hub        *api.Hub
	scheduler  *service.Scheduler
}

// New opens storage, loads the active content pack, and wires the full
// runtime listening on the provided address.
func New(ctx context.Context, addr, dbPath string) (*Server, error) {
	store, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	idx, seeded, err := content.LoadActive(ctx, store)
	if err != nil {
		store.Close()
		return nil, err
	}
	if !seeded {
		log.Printf("no %q content pack in storage; using embedded default", content.ActivePackName)
	}

	curve, err := engine.NewCurve(engine.DefaultBaseExperience, engine.DefaultGrowth, engine.DefaultLevelCap)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("build experience curve: %w", err)
	}

	stores := service.Stores{
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
	journal := service.NewJournal(store, eventBus)

	profiles := service.NewProfiles(stores, curve, journal)
	stats := service.NewStats(stores, idx)
	skills := service.NewSkills(stores, idx, profiles, stats, journal)
	research := service.NewResearch(stores, idx, profiles, journal)
	achievements := service.NewAchievements(stores, idx, journal)
	objectives, err := service.NewObjectives(stores, idx, profiles, journal)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("build objectives: %w", err)
	}
	campaign := service.NewCampaign(stores, idx, profiles, achievements, journal)
	leaderboards := service.NewLeaderboards(stores, idx, profiles, journal)
	progress := service.NewProgress(stats, achievements, objectives)
	events := service.NewEvents(stores, profiles)

	scheduler, err := service.NewScheduler(objectives, idx.Pack().Schedules)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("build scheduler: %w", err)
	}

	telemetry.NewEmitter(store).Observe(eventBus)

	grants, err := api.LoadSubmissionGrantConfigFromEnv(time.Now)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("load submission grant config: %w", err)
	}
	if !grants.Enabled() {
		log.Printf("submission grant verification disabled; scores are accepted without grants")
	}

	hub := api.NewHub(eventBus)

	apiServer := api.NewServer(api.Services{
		Profiles:     profiles,
		Skills:       skills,
		Research:     research,
		Achievements: achievements,
		Objectives:   objectives,
		Campaign:     campaign,
		Leaderboards: leaderboards,
		Stats:        stats,
		Progress:     progress,
		Events:       events,
	}, idx, hub, grants)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	return &Server{
		listener:   listener,
		httpServer: &http.Server{Handler: apiServer.Handler()},
		store:      store,
		hub:        hub,
		scheduler:  scheduler,
	}, nil
}

// Run creates and serves a progression server until the context ends.
func Run(ctx context.Context, port int, dbPath string) error {
	return RunWithAddr(ctx, fmt.Sprintf(":%d", port), dbPath)
}

// RunWithAddr creates and serves a progression server on an explicit address.
func RunWithAddr(ctx context.Context, addr, dbPath string) error {
	server, err := New(ctx, addr, dbPath)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the HTTP server and background workers and blocks until
// the server stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	go s.hub.Run()
	s.scheduler.Start()
	defer func() {
		s.scheduler.Stop()
		s.hub.Stop()
		if err := s.store.Close(); err != nil {
			log.Printf("close storage: %v", err)
		}
	}()

	log.Printf("server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	handleErr := func(err error) error {
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("http shutdown: %v", err)
		}
		return handleErr(<-serveErr)
	case err := <-serveErr:
		return handleErr(err)
	}
}

// Addr reports the bound listen address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}
