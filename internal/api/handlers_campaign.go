package api

import "net/http"

func (s *Server) handleCampaignState(w http.ResponseWriter, r *http.Request) {
	state, phase, err := s.services.Campaign.Current(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toCampaignResponse(state.PhaseIndex, phase.ID, phase.Name))
}

func (s *Server) handleAdvanceCampaign(w http.ResponseWriter, r *http.Request) {
	state, phase, err := s.services.Campaign.Advance(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toCampaignResponse(state.PhaseIndex, phase.ID, phase.Name))
}

func (s *Server) toCampaignResponse(phaseIndex int, phaseID, phaseName string) campaignResponse {
	return campaignResponse{
		PhaseIndex: phaseIndex,
		PhaseID:    phaseID,
		PhaseName:  phaseName,
		FinalPhase: phaseIndex == len(s.content.Campaign().Phases)-1,
	}
}
