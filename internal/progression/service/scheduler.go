package service

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/verdantworks/growline/internal/content"
	"github.com/verdantworks/growline/internal/progression/domain"
)

// Scheduler drives objective rotation on the pack's cron schedules.
type Scheduler struct {
	cron       *cron.Cron
	objectives *Objectives
}

// NewScheduler wires the daily and weekly rotation jobs. Start must be
// called before any job fires.
func NewScheduler(objectives *Objectives, schedules content.Schedules) (*Scheduler, error) {
	c := cron.New()

	if _, err := c.AddFunc(schedules.Daily, func() {
		if err := objectives.Rotate(context.Background(), domain.ObjectiveCadenceDaily); err != nil {
			log.Printf("daily objective rotation: %v", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule daily rotation: %w", err)
	}

	if _, err := c.AddFunc(schedules.Weekly, func() {
		if err := objectives.Rotate(context.Background(), domain.ObjectiveCadenceWeekly); err != nil {
			log.Printf("weekly objective rotation: %v", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule weekly rotation: %w", err)
	}

	return &Scheduler{cron: c, objectives: objectives}, nil
}

// Start begins firing rotation jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	if s == nil || s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}
