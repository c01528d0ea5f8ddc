package api

import "net/http"

func (s *Server) handleSkillTree(w http.ResponseWriter, r *http.Request) {
	tree, err := s.services.Skills.Tree(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]nodeStatusResponse, len(tree))
	for i, status := range tree {
		out[i] = toNodeStatusResponse(status)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUnlockSkill(w http.ResponseWriter, r *http.Request) {
	rank, err := s.services.Skills.Unlock(r.Context(), r.PathValue("id"), r.PathValue("node"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSkillRankResponse(rank))
}

func (s *Server) handleRaiseRank(w http.ResponseWriter, r *http.Request) {
	rank, err := s.services.Skills.RaiseRank(r.Context(), r.PathValue("id"), r.PathValue("node"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSkillRankResponse(rank))
}

func (s *Server) handleActiveSynergies(w http.ResponseWriter, r *http.Request) {
	synergies, err := s.services.Skills.ActiveSynergies(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]synergyResponse, len(synergies))
	for i, synergy := range synergies {
		out[i] = synergyResponse{
			ID:    synergy.ID,
			Name:  synergy.Name,
			Bonus: toEffectResponses(synergy.Bonus),
		}
	}
	writeJSON(w, http.StatusOK, out)
}
