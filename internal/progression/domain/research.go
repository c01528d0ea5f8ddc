package domain

import (
	"errors"
	"time"
)

var (
	// ErrNoPhases indicates a project definition without phases.
	ErrNoPhases = errors.New("research project requires at least one phase")
	// ErrResearchCompleted indicates progress applied to a finished project.
	ErrResearchCompleted = errors.New("research project is already completed")
	// ErrNegativeProgress indicates a negative progress delta.
	ErrNegativeProgress = errors.New("progress delta must not be negative")
	// ErrPhaseOutOfRange indicates stored state pointing past the project's
	// phase list, e.g. after a re-seeded pack shortened the project.
	ErrPhaseOutOfRange = errors.New("research phase index is out of range")
)

// ResearchPhase is one ordered stage of a research project.
type ResearchPhase struct {
	Name string
	// Target is the amount of phase progress required to complete the phase.
	Target int
}

// ResearchProject is a research definition with ordered phases.
type ResearchProject struct {
	ID       string
	Name     string
	Category string
	// Prerequisites lists project IDs that must be completed first.
	Prerequisites []string
	// Cost is the research point cost to start the project.
	Cost   int
	Phases []ResearchPhase
	// Grants applies once when the final phase completes.
	Grants []Effect
}

// Validate checks project definition invariants.
func (p ResearchProject) Validate() error {
	if len(p.Phases) == 0 {
		return ErrNoPhases
	}
	for _, phase := range p.Phases {
		if phase.Target <= 0 {
			return errors.New("research phase target must be positive")
		}
	}
	return nil
}

// ResearchState is a player's state for one research project.
type ResearchState struct {
	ProfileID     string
	ProjectID     string
	PhaseIndex    int
	PhaseProgress int
	Completed     bool
	StartedAt     time.Time
	CompletedAt   *time.Time
}

// AdvanceResult describes the outcome of applying progress to a project.
type AdvanceResult struct {
	State ResearchState
	// PhasesCompleted lists the indexes of phases completed by this advance.
	PhasesCompleted []int
	// ProjectCompleted reports whether the final phase finished.
	ProjectCompleted bool
}

// Advance applies a progress delta to the active phase, rolling overflow into
// subsequent phases. Progress clamps at each phase target; completing the
// last phase marks the project done.
func (s ResearchState) Advance(project ResearchProject, delta int, now func() time.Time) (AdvanceResult, error) {
	if delta < 0 {
		return AdvanceResult{}, ErrNegativeProgress
	}
	if s.Completed {
		return AdvanceResult{}, ErrResearchCompleted
	}
	if s.PhaseIndex < 0 || s.PhaseIndex >= len(project.Phases) {
		return AdvanceResult{}, ErrPhaseOutOfRange
	}
	if now == nil {
		now = time.Now
	}

	result := AdvanceResult{}
	for delta > 0 && !s.Completed {
		phase := project.Phases[s.PhaseIndex]
		remaining := phase.Target - s.PhaseProgress
		if delta < remaining {
			s.PhaseProgress += delta
			delta = 0
			break
		}

		delta -= remaining
		result.PhasesCompleted = append(result.PhasesCompleted, s.PhaseIndex)
		if s.PhaseIndex == len(project.Phases)-1 {
			s.Completed = true
			s.PhaseProgress = phase.Target
			completedAt := now().UTC()
			s.CompletedAt = &completedAt
			result.ProjectCompleted = true
			break
		}
		s.PhaseIndex++
		s.PhaseProgress = 0
	}

	result.State = s
	return result, nil
}
