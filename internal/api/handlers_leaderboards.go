package api

import (
	"net/http"
	"strconv"

	"github.com/verdantworks/growline/internal/progression/domain"
)

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	boards := s.content.Boards()
	out := make([]boardResponse, len(boards))
	for i, board := range boards {
		out[i] = boardResponse{
			ID:     board.ID,
			Name:   board.Name,
			Stat:   board.Stat,
			Order:  board.Order.String(),
			Season: board.Season,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	entries, err := s.services.Leaderboards.Standings(r.Context(), r.PathValue("board"), limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaderboardEntryResponses(entries))
}

func (s *Server) handleAroundMe(w http.ResponseWriter, r *http.Request) {
	window := queryInt(r, "window", 2)

	entries, err := s.services.Leaderboards.AroundMe(r.Context(), r.PathValue("board"), r.PathValue("id"), window)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaderboardEntryResponses(entries))
}

type submitScoreRequest struct {
	ProfileID string `json:"profile_id"`
	Score     int64  `json:"score"`
	// Grant is the signed submission authorization. Required when grant
	// verification is configured.
	Grant string `json:"grant"`
}

type submitScoreResponse struct {
	Entry    leaderboardEntryResponse `json:"entry"`
	Improved bool                     `json:"improved"`
}

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var req submitScoreRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.ProfileID == "" {
		badRequest(w, "profile_id is required")
		return
	}
	boardID := r.PathValue("board")

	if s.grants.Enabled() {
		expected := SubmissionGrantExpectation{ProfileID: req.ProfileID, BoardID: boardID}
		if _, err := ValidateSubmissionGrant(req.Grant, expected, s.grants); err != nil {
			writeError(w, r, err)
			return
		}
	}

	result, err := s.services.Leaderboards.SubmitScore(r.Context(), req.ProfileID, boardID, req.Score)
	if err != nil {
		writeError(w, r, err)
		return
	}
	entries := toLeaderboardEntryResponses([]domain.LeaderboardEntry{result.Entry})
	writeJSON(w, http.StatusOK, submitScoreResponse{
		Entry:    entries[0],
		Improved: result.Improved,
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
