package engine

import (
	"strings"
	"testing"
)

func TestEvalUnlockScriptReadsPlayerView(t *testing.T) {
	view := ScriptView{
		Level:       12,
		SkillPoints: 3,
		Ranks:       map[string]int{"germination": 2},
		Stats:       map[string]int64{"plants_harvested": 40},
	}

	tests := []struct {
		name   string
		script string
		want   bool
	}{
		{
			name:   "level gate",
			script: "return player.level >= 10",
			want:   true,
		},
		{
			name:   "rank gate",
			script: `return player.ranks["germination"] >= 3`,
			want:   false,
		},
		{
			name:   "stat and level",
			script: `return player.stats["plants_harvested"] > 25 and player.level >= 5`,
			want:   true,
		},
		{
			name:   "missing rank defaults to nil",
			script: `return (player.ranks["unknown"] or 0) >= 1`,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvalUnlockScript(tt.script, view)
			if err != nil {
				t.Fatalf("eval: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEvalUnlockScriptRejectsNonBoolean(t *testing.T) {
	_, err := EvalUnlockScript("return 42", ScriptView{})
	if err == nil {
		t.Fatal("expected error for non-boolean result")
	}
	if !strings.Contains(err.Error(), "boolean") {
		t.Fatalf("expected boolean error, got %v", err)
	}
}

func TestEvalUnlockScriptFailsClosedOnSyntaxError(t *testing.T) {
	if _, err := EvalUnlockScript("return player.level >=", ScriptView{}); err == nil {
		t.Fatal("expected error for invalid script")
	}
}

func TestEvalUnlockScriptFailsClosedOnRuntimeError(t *testing.T) {
	if _, err := EvalUnlockScript(`error("boom")`, ScriptView{}); err == nil {
		t.Fatal("expected error for runtime failure")
	}
}
