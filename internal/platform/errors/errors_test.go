package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	first := New(CodeSkillPrereqUnmet, "missing prerequisite")
	second := New(CodeSkillPrereqUnmet, "different message")
	other := New(CodeSkillMaxLevelReached, "max level")

	if !stderrors.Is(first, second) {
		t.Fatal("expected errors with the same code to match")
	}
	if stderrors.Is(first, other) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	wrapped := Wrap(CodeUnknown, "store profile", cause)

	if !stderrors.Is(wrapped, cause) {
		t.Fatal("expected wrapped cause to be reachable")
	}
	if wrapped.Error() != "store profile" {
		t.Fatalf("expected internal message, got %q", wrapped.Error())
	}
}

func TestCodeOfUnwrapsChains(t *testing.T) {
	inner := New(CodeProfileNotFound, "no such profile")
	outer := fmt.Errorf("lookup: %w", inner)

	if got := CodeOf(outer); got != CodeProfileNotFound {
		t.Fatalf("expected PROFILE_NOT_FOUND, got %s", got)
	}
	if got := CodeOf(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("expected UNKNOWN for plain error, got %s", got)
	}
	if got := CodeOf(nil); got != CodeUnknown {
		t.Fatalf("expected UNKNOWN for nil, got %s", got)
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeProfileNotFound, http.StatusNotFound},
		{CodeProfileNameEmpty, http.StatusBadRequest},
		{CodeSkillPrereqUnmet, http.StatusConflict},
		{CodeLeaderboardGrantExpired, http.StatusUnauthorized},
		{CodeUnknown, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.code.HTTPStatus(); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.code, tt.want, got)
		}
	}
}

func TestUserMessageRendersMetadata(t *testing.T) {
	err := WithMetadata(CodeSkillInsufficientPoints, "not enough points", map[string]string{
		"required":  "5",
		"available": "2",
	})

	message := UserMessage(err, "en-US")
	if !strings.Contains(message, "5") || !strings.Contains(message, "2") {
		t.Fatalf("expected point counts in message, got %q", message)
	}
}

func TestUserMessageHidesInternalDetails(t *testing.T) {
	message := UserMessage(stderrors.New("sqlite disk I/O error"), "en-US")
	if strings.Contains(message, "sqlite") {
		t.Fatalf("expected internal detail to be hidden, got %q", message)
	}
}
