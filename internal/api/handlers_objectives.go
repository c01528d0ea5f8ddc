package api

import "net/http"

func (s *Server) handleListObjectives(w http.ResponseWriter, r *http.Request) {
	objectives, err := s.services.Objectives.List(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toObjectiveResponses(objectives))
}

type assignObjectiveRequest struct {
	TemplateID string `json:"template_id"`
}

func (s *Server) handleAssignObjective(w http.ResponseWriter, r *http.Request) {
	var req assignObjectiveRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.TemplateID == "" {
		badRequest(w, "template_id is required")
		return
	}

	objective, err := s.services.Objectives.Assign(r.Context(), r.PathValue("id"), req.TemplateID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toObjectiveResponse(objective))
}

type recordStatRequest struct {
	Stat  string `json:"stat"`
	Delta int64  `json:"delta"`
}

type recordStatResponse struct {
	Stat         string                      `json:"stat"`
	Total        int64                       `json:"total"`
	Achievements []achievementProgressChange `json:"achievements,omitempty"`
	Objectives   []objectiveResponse         `json:"objectives,omitempty"`
}

type achievementProgressChange struct {
	AchievementID string `json:"achievement_id"`
	Progress      int64  `json:"progress"`
	Completed     bool   `json:"completed"`
}

// handleRecordStat fans one gameplay stat delta into lifetime totals,
// achievements, and open objectives.
func (s *Server) handleRecordStat(w http.ResponseWriter, r *http.Request) {
	var req recordStatRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Stat == "" {
		badRequest(w, "stat is required")
		return
	}
	if req.Delta <= 0 {
		badRequest(w, "delta must be positive")
		return
	}

	if _, err := s.services.Profiles.Get(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := s.services.Progress.RecordStat(r.Context(), r.PathValue("id"), req.Stat, req.Delta)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := recordStatResponse{
		Stat:       result.Stat,
		Total:      result.Total,
		Objectives: toObjectiveResponses(result.Objectives),
	}
	for _, progress := range result.Achievements {
		resp.Achievements = append(resp.Achievements, achievementProgressChange{
			AchievementID: progress.AchievementID,
			Progress:      progress.Progress,
			Completed:     progress.Completed(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStatTotals(w http.ResponseWriter, r *http.Request) {
	if _, err := s.services.Profiles.Get(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	totals, err := s.services.Stats.Totals(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (s *Server) handleStatBonuses(w http.ResponseWriter, r *http.Request) {
	if _, err := s.services.Profiles.Get(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	bonuses, err := s.services.Stats.Bonuses(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatBonusResponses(bonuses))
}
