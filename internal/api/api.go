// Package api exposes the progression services over HTTP/JSON and a
// WebSocket event feed.
//
// Handlers are organized by domain (profiles, skills, research,
// achievements, objectives, campaign, leaderboards, events). Every mutating
// route goes through a service facade; handlers only decode input, call the
// facade, and encode output. Errors carry application codes that map to
// HTTP statuses and localized user messages.
package api

import (
	"net/http"

	"github.com/verdantworks/growline/internal/content"
	"github.com/verdantworks/growline/internal/progression/service"
)

// Services aggregates the facades the API serves.
type Services struct {
	Profiles     *service.Profiles
	Skills       *service.Skills
	Research     *service.Research
	Achievements *service.Achievements
	Objectives   *service.Objectives
	Campaign     *service.Campaign
	Leaderboards *service.Leaderboards
	Stats        *service.Stats
	Progress     *service.Progress
	Events       *service.Events
}

// Server routes progression API requests.
type Server struct {
	services Services
	content  *content.Index
	hub      *Hub
	// grants verifies leaderboard submission grants. A zero config
	// disables verification (development mode).
	grants SubmissionGrantConfig
}

// NewServer creates an API server over the given facades.
func NewServer(services Services, idx *content.Index, hub *Hub, grants SubmissionGrantConfig) *Server {
	return &Server{
		services: services,
		content:  idx,
		hub:      hub,
		grants:   grants,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/profiles", s.handleCreateProfile)
	mux.HandleFunc("GET /v1/profiles", s.handleListProfiles)
	mux.HandleFunc("GET /v1/profiles/{id}", s.handleGetProfile)
	mux.HandleFunc("POST /v1/profiles/{id}/experience", s.handleGrantExperience)

	mux.HandleFunc("GET /v1/profiles/{id}/skills", s.handleSkillTree)
	mux.HandleFunc("POST /v1/profiles/{id}/skills/{node}/unlock", s.handleUnlockSkill)
	mux.HandleFunc("POST /v1/profiles/{id}/skills/{node}/rank", s.handleRaiseRank)
	mux.HandleFunc("GET /v1/profiles/{id}/synergies", s.handleActiveSynergies)

	mux.HandleFunc("GET /v1/profiles/{id}/research", s.handleListResearch)
	mux.HandleFunc("POST /v1/profiles/{id}/research/{project}/start", s.handleStartResearch)
	mux.HandleFunc("POST /v1/profiles/{id}/research/{project}/advance", s.handleAdvanceResearch)

	mux.HandleFunc("GET /v1/profiles/{id}/achievements", s.handleListAchievements)
	mux.HandleFunc("GET /v1/profiles/{id}/achievements/{achievement}", s.handleGetAchievement)

	mux.HandleFunc("GET /v1/profiles/{id}/objectives", s.handleListObjectives)
	mux.HandleFunc("POST /v1/profiles/{id}/objectives", s.handleAssignObjective)

	mux.HandleFunc("GET /v1/profiles/{id}/stats", s.handleStatTotals)
	mux.HandleFunc("POST /v1/profiles/{id}/stats", s.handleRecordStat)
	mux.HandleFunc("GET /v1/profiles/{id}/bonuses", s.handleStatBonuses)

	mux.HandleFunc("GET /v1/profiles/{id}/campaign", s.handleCampaignState)
	mux.HandleFunc("POST /v1/profiles/{id}/campaign/advance", s.handleAdvanceCampaign)

	mux.HandleFunc("GET /v1/boards", s.handleListBoards)
	mux.HandleFunc("GET /v1/boards/{board}/standings", s.handleStandings)
	mux.HandleFunc("GET /v1/boards/{board}/around/{id}", s.handleAroundMe)
	mux.HandleFunc("POST /v1/boards/{board}/scores", s.handleSubmitScore)

	mux.HandleFunc("GET /v1/profiles/{id}/events", s.handleListEvents)

	if s.hub != nil {
		mux.HandleFunc("GET /v1/feed", s.hub.ServeWS)
	}

	return mux
}
