package api

import "net/http"

func (s *Server) handleListResearch(w http.ResponseWriter, r *http.Request) {
	states, err := s.services.Research.List(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]researchStateResponse, len(states))
	for i, state := range states {
		out[i] = toResearchStateResponse(state)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStartResearch(w http.ResponseWriter, r *http.Request) {
	state, err := s.services.Research.Start(r.Context(), r.PathValue("id"), r.PathValue("project"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toResearchStateResponse(state))
}

type advanceResearchRequest struct {
	Delta int `json:"delta"`
}

func (s *Server) handleAdvanceResearch(w http.ResponseWriter, r *http.Request) {
	var req advanceResearchRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Delta <= 0 {
		badRequest(w, "delta must be positive")
		return
	}

	result, err := s.services.Research.Advance(r.Context(), r.PathValue("id"), r.PathValue("project"), req.Delta)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, advanceResearchResponse{
		State:            toResearchStateResponse(result.State),
		PhasesCompleted:  result.PhasesCompleted,
		ProjectCompleted: result.ProjectCompleted,
	})
}
