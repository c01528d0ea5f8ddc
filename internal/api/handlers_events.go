package api

import (
	"net/http"

	"github.com/verdantworks/growline/internal/storage"
)

type listEventsResponse struct {
	Events        []eventResponse `json:"events"`
	NextPageToken string          `json:"next_page_token,omitempty"`
}

// handleListEvents pages through a profile's journal. The filter query
// parameter accepts expressions like
//
//	type = "skill.unlocked" AND ts >= timestamp("2026-07-01T00:00:00Z")
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	result, err := s.services.Events.List(r.Context(), storage.ListEventsRequest{
		ProfileID: r.PathValue("id"),
		Filter:    query.Get("filter"),
		PageSize:  queryInt(r, "page_size", 0),
		PageToken: query.Get("page_token"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listEventsResponse{
		Events:        toEventResponses(result.Events),
		NextPageToken: result.NextPageToken,
	})
}
