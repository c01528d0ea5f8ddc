package api

import "net/http"

func (s *Server) handleListAchievements(w http.ResponseWriter, r *http.Request) {
	includeHidden := r.URL.Query().Get("include_hidden") == "true"
	statuses, err := s.services.Achievements.List(r.Context(), r.PathValue("id"), includeHidden)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]achievementStatusResponse, len(statuses))
	for i, status := range statuses {
		out[i] = toAchievementStatusResponse(status)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetAchievement(w http.ResponseWriter, r *http.Request) {
	status, err := s.services.Achievements.Get(r.Context(), r.PathValue("id"), r.PathValue("achievement"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAchievementStatusResponse(status))
}
