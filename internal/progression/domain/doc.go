// Package domain defines the core business entities and logic for player progression.
//
// The model is centered on a few concepts:
//
// # Profile
//
// A Profile is one player's progression root. It tracks level, experience,
// and the spendable point balances (skill points, research points) that the
// rest of the systems consume.
//
// # Definitions and state
//
// Content definitions (SkillNode, ResearchProject, Achievement,
// ObjectiveTemplate, CampaignPhase, Board) are immutable records loaded from
// content packs. Player state records (SkillRank, ResearchState,
// AchievementProgress, Objective, LeaderboardEntry) reference definitions by
// ID and are mutated by the service layer.
//
// # Invariants
//
// Progress values clamp to [0, target]. A definition ID unlocks at most once
// per profile. Levels and ranks never decrease, and point balances never go
// negative.
package domain
