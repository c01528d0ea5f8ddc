package service

import (
	"context"

	"github.com/verdantworks/growline/internal/progression/domain"
)

// Progress coordinates a gameplay stat delta across every system that
// consumes it: lifetime totals, achievements, and open objectives.
type Progress struct {
	stats        *Stats
	achievements *Achievements
	objectives   *Objectives
}

// NewProgress creates the stat fan-out coordinator.
func NewProgress(stats *Stats, achievements *Achievements, objectives *Objectives) *Progress {
	return &Progress{stats: stats, achievements: achievements, objectives: objectives}
}

// RecordResult describes everything a stat delta touched.
type RecordResult struct {
	Stat  string
	Total int64
	// Achievements lists the achievement progress records that moved.
	Achievements []domain.AchievementProgress
	// Objectives lists the objectives that moved.
	Objectives []domain.Objective
}

// RecordStat applies one stat delta everywhere it matters.
func (p *Progress) RecordStat(ctx context.Context, profileID, stat string, delta int64) (RecordResult, error) {
	total, err := p.stats.Record(ctx, profileID, stat, delta)
	if err != nil {
		return RecordResult{}, err
	}

	achievements, err := p.achievements.RecordStat(ctx, profileID, stat, delta)
	if err != nil {
		return RecordResult{}, err
	}

	objectives, err := p.objectives.RecordStat(ctx, profileID, stat, delta)
	if err != nil {
		return RecordResult{}, err
	}

	return RecordResult{
		Stat:         stat,
		Total:        total,
		Achievements: achievements,
		Objectives:   objectives,
	}, nil
}
