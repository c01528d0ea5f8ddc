package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/verdantworks/growline/internal/content"
	apperrors "github.com/verdantworks/growline/internal/platform/errors"
	"github.com/verdantworks/growline/internal/progression/domain"
	"github.com/verdantworks/growline/internal/progression/event"
	"github.com/verdantworks/growline/internal/storage"
)

// Research manages research project lifecycles.
type Research struct {
	stores   Stores
	content  *content.Index
	profiles *Profiles
	journal  *Journal
	clock    func() time.Time
}

// NewResearch creates a Research facade.
func NewResearch(stores Stores, idx *content.Index, profiles *Profiles, journal *Journal) *Research {
	return &Research{
		stores:   stores,
		content:  idx,
		profiles: profiles,
		journal:  journal,
		clock:    time.Now,
	}
}

// Start begins a research project: prerequisites must be completed and the
// research point cost is spent up front.
func (r *Research) Start(ctx context.Context, profileID, projectID string) (domain.ResearchState, error) {
	project, ok := r.content.ResearchProject(projectID)
	if !ok {
		return domain.ResearchState{}, apperrors.WithMetadata(apperrors.CodeResearchUnknownProject,
			"unknown research project", map[string]string{"project_id": projectID})
	}

	if _, err := r.stores.Research.GetResearchState(ctx, profileID, projectID); err == nil {
		return domain.ResearchState{}, apperrors.WithMetadata(apperrors.CodeResearchAlreadyActive,
			"research project is already started", map[string]string{"project_id": projectID})
	} else if !errors.Is(err, storage.ErrNotFound) {
		return domain.ResearchState{}, err
	}

	completed, err := r.completedProjects(ctx, profileID)
	if err != nil {
		return domain.ResearchState{}, err
	}
	if missing := r.content.ResearchPrereqs().Unmet(projectID, completed); len(missing) > 0 {
		return domain.ResearchState{}, apperrors.WithMetadata(apperrors.CodeResearchPrereqUnmet,
			"research prerequisites are not met", map[string]string{
				"project_id": projectID,
				"missing":    strings.Join(missing, ", "),
			})
	}

	profile, err := r.profiles.Get(ctx, profileID)
	if err != nil {
		return domain.ResearchState{}, err
	}
	spent, err := profile.SpendResearchPoints(project.Cost)
	if errors.Is(err, domain.ErrInsufficientPoints) {
		return domain.ResearchState{}, apperrors.WithMetadata(apperrors.CodeResearchInsufficientPoints,
			"not enough research points", map[string]string{
				"need": strconv.Itoa(project.Cost),
				"have": strconv.Itoa(profile.ResearchPoints),
			})
	}
	if err != nil {
		return domain.ResearchState{}, err
	}
	spent.UpdatedAt = r.clock().UTC()

	state := domain.ResearchState{
		ProfileID: profileID,
		ProjectID: projectID,
		StartedAt: r.clock().UTC(),
	}
	if err := r.stores.Research.PutResearchState(ctx, state); err != nil {
		return domain.ResearchState{}, err
	}
	if err := r.stores.Profiles.PutProfile(ctx, spent); err != nil {
		return domain.ResearchState{}, err
	}

	r.journal.emitOrLog(ctx, profileID, event.TypeResearchStarted, projectID, event.ResearchStartedPayload{
		ProjectID: projectID,
		Cost:      project.Cost,
	})
	return state, nil
}

// Advance applies progress to an active project, journaling each completed
// phase and the project completion.
func (r *Research) Advance(ctx context.Context, profileID, projectID string, delta int) (domain.AdvanceResult, error) {
	project, ok := r.content.ResearchProject(projectID)
	if !ok {
		return domain.AdvanceResult{}, apperrors.WithMetadata(apperrors.CodeResearchUnknownProject,
			"unknown research project", map[string]string{"project_id": projectID})
	}

	state, err := r.stores.Research.GetResearchState(ctx, profileID, projectID)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.AdvanceResult{}, apperrors.WithMetadata(apperrors.CodeResearchNotActive,
			"research project is not started", map[string]string{"project_id": projectID})
	}
	if err != nil {
		return domain.AdvanceResult{}, err
	}
	if state.Completed {
		return domain.AdvanceResult{}, apperrors.WithMetadata(apperrors.CodeResearchAlreadyCompleted,
			"research project is already completed", map[string]string{"project_id": projectID})
	}

	result, err := state.Advance(project, delta, r.clock)
	if err != nil {
		return domain.AdvanceResult{}, err
	}

	if err := r.stores.Research.PutResearchState(ctx, result.State); err != nil {
		return domain.AdvanceResult{}, err
	}

	for _, phaseIndex := range result.PhasesCompleted {
		phase := project.Phases[phaseIndex]
		r.journal.emitOrLog(ctx, profileID, event.TypeResearchPhaseCompleted, projectID, event.ResearchPhaseCompletedPayload{
			ProjectID:  projectID,
			PhaseIndex: phaseIndex,
			PhaseName:  phase.Name,
		})
	}
	if result.ProjectCompleted {
		r.journal.emitOrLog(ctx, profileID, event.TypeResearchCompleted, projectID, event.ResearchCompletedPayload{
			ProjectID: projectID,
		})
	}
	return result, nil
}

// List returns all research states for a profile.
func (r *Research) List(ctx context.Context, profileID string) ([]domain.ResearchState, error) {
	return r.stores.Research.ListResearchStates(ctx, profileID)
}

// completedProjects returns the set of finished project IDs for a profile.
func (r *Research) completedProjects(ctx context.Context, profileID string) (map[string]bool, error) {
	states, err := r.stores.Research.ListResearchStates(ctx, profileID)
	if err != nil {
		return nil, err
	}
	completed := make(map[string]bool, len(states))
	for _, state := range states {
		if state.Completed {
			completed[state.ProjectID] = true
		}
	}
	return completed, nil
}
