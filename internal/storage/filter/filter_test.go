package filter

import (
	"reflect"
	"testing"
)

func TestParseEventFilter_TypeEquals(t *testing.T) {
	cond, err := ParseEventFilter(`type = "skill.unlocked"`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "event_type = ?" {
		t.Errorf("expected 'event_type = ?', got %q", cond.Clause)
	}
	if len(cond.Params) != 1 {
		t.Fatalf("expected 1 param, got %d", len(cond.Params))
	}
	if cond.Params[0] != "skill.unlocked" {
		t.Errorf("expected 'skill.unlocked', got %v", cond.Params[0])
	}
}

func TestParseEventFilter_Empty(t *testing.T) {
	cond, err := ParseEventFilter(" ")
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "" || cond.Params != nil {
		t.Fatalf("expected empty condition, got %+v", cond)
	}
}

func TestParseEventFilter_AndOr(t *testing.T) {
	cond, err := ParseEventFilter(`type = "profile.level_up" AND entity_type = "profile"`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "(event_type = ? AND entity_type = ?)" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
	if !reflect.DeepEqual(cond.Params, []any{"profile.level_up", "profile"}) {
		t.Fatalf("Params = %v", cond.Params)
	}

	cond, err = ParseEventFilter(`entity_type = "skill" OR entity_type = "research"`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "(entity_type = ? OR entity_type = ?)" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
}

func TestParseEventFilter_NumericAndTimestamp(t *testing.T) {
	cond, err := ParseEventFilter(`seq > 100`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "seq > ?" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
	if cond.Params[0] != int64(100) {
		t.Fatalf("Params = %v", cond.Params)
	}

	cond, err = ParseEventFilter(`ts >= timestamp("2026-01-01T00:00:00Z")`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "timestamp_ms >= ?" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
	want := int64(1767225600000)
	if cond.Params[0] != want {
		t.Fatalf("timestamp param = %v, want %d", cond.Params[0], want)
	}
}

func TestParseEventFilter_InvalidField(t *testing.T) {
	if _, err := ParseEventFilter(`owner = "x"`); err == nil {
		t.Fatal("expected error for undeclared field")
	}
}

func TestParseEventFilter_InvalidSyntax(t *testing.T) {
	if _, err := ParseEventFilter(`type = `); err == nil {
		t.Fatal("expected error for malformed filter")
	}
}
