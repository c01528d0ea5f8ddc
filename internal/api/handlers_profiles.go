package api

import (
	"net/http"

	"github.com/verdantworks/growline/internal/progression/domain"
)

type createProfileRequest struct {
	DisplayName string `json:"display_name"`
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	profile, err := s.services.Profiles.Create(r.Context(), domain.CreateProfileInput{DisplayName: req.DisplayName})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.toProfileResponse(profile))
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.services.Profiles.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]profileResponse, len(profiles))
	for i, profile := range profiles {
		out[i] = s.toProfileResponse(profile)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.services.Profiles.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toProfileResponse(profile))
}

type grantExperienceRequest struct {
	Amount int64  `json:"amount"`
	Source string `json:"source"`
}

func (s *Server) handleGrantExperience(w http.ResponseWriter, r *http.Request) {
	var req grantExperienceRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Amount <= 0 {
		badRequest(w, "amount must be positive")
		return
	}

	result, err := s.services.Profiles.GrantExperience(r.Context(), r.PathValue("id"), req.Amount, req.Source)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, grantResponse{
		Profile:               s.toProfileResponse(result.Profile),
		FromLevel:             result.FromLevel,
		ToLevel:               result.ToLevel,
		SkillPointsAwarded:    result.SkillPointsAwarded,
		ResearchPointsAwarded: result.ResearchPointsAwarded,
	})
}
