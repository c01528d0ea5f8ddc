package domain

import (
	"errors"
	"strings"
	"time"
)

// ScoreOrder describes how board scores rank.
type ScoreOrder int

const (
	// ScoreOrderUnspecified represents an invalid order value.
	ScoreOrderUnspecified ScoreOrder = iota
	// ScoreOrderDescending ranks higher scores first (the common case).
	ScoreOrderDescending
	// ScoreOrderAscending ranks lower scores first (e.g. fastest harvest).
	ScoreOrderAscending
)

var scoreOrderNames = map[ScoreOrder]string{
	ScoreOrderDescending: "descending",
	ScoreOrderAscending:  "ascending",
}

// String returns the lowercase order name, or "unspecified".
func (o ScoreOrder) String() string {
	if name, ok := scoreOrderNames[o]; ok {
		return name
	}
	return "unspecified"
}

// ParseScoreOrder maps an order name to its enum value.
func ParseScoreOrder(name string) (ScoreOrder, error) {
	for order, orderName := range scoreOrderNames {
		if orderName == name {
			return order, nil
		}
	}
	return ScoreOrderUnspecified, ErrInvalidScoreOrder
}

var (
	// ErrInvalidScoreOrder indicates an unknown score order name.
	ErrInvalidScoreOrder = errors.New("invalid score order")
	// ErrEmptyBoardID indicates a missing board identifier.
	ErrEmptyBoardID = errors.New("board id is required")
)

// Board is a leaderboard definition.
type Board struct {
	ID    string
	Name  string
	Stat  string
	Order ScoreOrder
	// Season labels the current competitive season; entries reset when it
	// changes.
	Season string
}

// Validate checks board definition invariants.
func (b Board) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return ErrEmptyBoardID
	}
	if b.Order == ScoreOrderUnspecified {
		return ErrInvalidScoreOrder
	}
	return nil
}

// Improves reports whether candidate beats current under the board's order.
func (b Board) Improves(candidate, current int64) bool {
	if b.Order == ScoreOrderAscending {
		return candidate < current
	}
	return candidate > current
}

// LeaderboardEntry is one profile's standing on a board.
type LeaderboardEntry struct {
	BoardID   string
	Season    string
	ProfileID string
	Score     int64
	// Rank is dense (ties share a rank). Assigned on read, not stored.
	Rank      int
	UpdatedAt time.Time
}
