package engine

import (
	"fmt"

	lua "github.com/Shopify/go-lua"
)

// ScriptView is the read-only profile snapshot exposed to unlock scripts as
// the global `player` table.
type ScriptView struct {
	Level          int
	SkillPoints    int
	ResearchPoints int
	// Ranks maps skill node IDs to current rank levels.
	Ranks map[string]int
	// Stats maps gameplay stat names to lifetime totals.
	Stats map[string]int64
}

// EvalUnlockScript runs a Lua chunk that must return a boolean. The chunk
// sees a read-only `player` table:
//
//	player.level, player.skill_points, player.research_points,
//	player.ranks["node_id"], player.stats["stat_name"]
//
// A script error or a non-boolean result fails closed (returns an error).
func EvalUnlockScript(script string, view ScriptView) (bool, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	pushView(state, view)
	state.SetGlobal("player")

	if err := lua.LoadString(state, script); err != nil {
		return false, fmt.Errorf("load unlock script: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return false, fmt.Errorf("run unlock script: %w", err)
	}

	if !state.IsBoolean(-1) {
		state.Pop(1)
		return false, fmt.Errorf("unlock script must return a boolean")
	}
	result := state.ToBoolean(-1)
	state.Pop(1)
	return result, nil
}

func pushView(state *lua.State, view ScriptView) {
	state.NewTable()

	state.PushInteger(view.Level)
	state.SetField(-2, "level")
	state.PushInteger(view.SkillPoints)
	state.SetField(-2, "skill_points")
	state.PushInteger(view.ResearchPoints)
	state.SetField(-2, "research_points")

	state.NewTable()
	for nodeID, rank := range view.Ranks {
		state.PushInteger(rank)
		state.SetField(-2, nodeID)
	}
	state.SetField(-2, "ranks")

	state.NewTable()
	for stat, total := range view.Stats {
		state.PushInteger(int(total))
		state.SetField(-2, stat)
	}
	state.SetField(-2, "stats")
}
