// Package errors provides structured error handling with i18n support.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeNotFound represents a missing persistence record.
	CodeNotFound Code = "NOT_FOUND"

	// CodeBadRequest represents a malformed client request.
	CodeBadRequest Code = "BAD_REQUEST"

	// Profile errors
	CodeProfileNameEmpty Code = "PROFILE_NAME_EMPTY"
	CodeProfileNotFound  Code = "PROFILE_NOT_FOUND"

	// Skill errors
	CodeSkillUnknownNode        Code = "SKILL_UNKNOWN_NODE"
	CodeSkillPrereqUnmet        Code = "SKILL_PREREQ_UNMET"
	CodeSkillMaxLevelReached    Code = "SKILL_MAX_LEVEL_REACHED"
	CodeSkillInsufficientPoints Code = "SKILL_INSUFFICIENT_POINTS"
	CodeSkillConditionFailed    Code = "SKILL_CONDITION_FAILED"

	// Research errors
	CodeResearchUnknownProject     Code = "RESEARCH_UNKNOWN_PROJECT"
	CodeResearchPrereqUnmet        Code = "RESEARCH_PREREQ_UNMET"
	CodeResearchAlreadyActive      Code = "RESEARCH_ALREADY_ACTIVE"
	CodeResearchAlreadyCompleted   Code = "RESEARCH_ALREADY_COMPLETED"
	CodeResearchNotActive          Code = "RESEARCH_NOT_ACTIVE"
	CodeResearchInsufficientPoints Code = "RESEARCH_INSUFFICIENT_POINTS"

	// Achievement errors
	CodeAchievementUnknown Code = "ACHIEVEMENT_UNKNOWN"

	// Objective errors
	CodeObjectiveUnknown Code = "OBJECTIVE_UNKNOWN"
	CodeObjectiveExpired Code = "OBJECTIVE_EXPIRED"

	// Campaign errors
	CodeCampaignFinalPhase Code = "CAMPAIGN_FINAL_PHASE"
	CodeCampaignGateUnmet  Code = "CAMPAIGN_GATE_UNMET"

	// Leaderboard errors
	CodeLeaderboardUnknownBoard  Code = "LEADERBOARD_UNKNOWN_BOARD"
	CodeLeaderboardGrantInvalid  Code = "LEADERBOARD_GRANT_INVALID"
	CodeLeaderboardGrantExpired  Code = "LEADERBOARD_GRANT_EXPIRED"
	CodeLeaderboardGrantMismatch Code = "LEADERBOARD_GRANT_MISMATCH"

	// Content errors
	CodeContentInvalid Code = "CONTENT_INVALID"
)

// HTTPStatus maps the error code to an HTTP status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound, CodeProfileNotFound, CodeSkillUnknownNode, CodeResearchUnknownProject,
		CodeAchievementUnknown, CodeObjectiveUnknown, CodeLeaderboardUnknownBoard:
		return http.StatusNotFound
	case CodeBadRequest, CodeProfileNameEmpty, CodeContentInvalid:
		return http.StatusBadRequest
	case CodeSkillPrereqUnmet, CodeSkillMaxLevelReached, CodeSkillInsufficientPoints,
		CodeSkillConditionFailed, CodeResearchPrereqUnmet, CodeResearchAlreadyActive,
		CodeResearchAlreadyCompleted, CodeResearchNotActive, CodeResearchInsufficientPoints,
		CodeObjectiveExpired, CodeCampaignFinalPhase, CodeCampaignGateUnmet:
		return http.StatusConflict
	case CodeLeaderboardGrantInvalid, CodeLeaderboardGrantExpired, CodeLeaderboardGrantMismatch:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
