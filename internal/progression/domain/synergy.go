package domain

import "errors"

// ErrNoSynergyMembers indicates a synergy definition without members.
var ErrNoSynergyMembers = errors.New("synergy requires at least one member")

// SynergyMember names one skill node and the rank it must reach.
type SynergyMember struct {
	NodeID  string
	MinRank int
}

// Synergy is a named set of skill nodes that, once every member reaches its
// rank threshold, activates a bonus across the profile.
type Synergy struct {
	ID      string
	Name    string
	Members []SynergyMember
	Bonus   []Effect
}

// Validate checks synergy definition invariants.
func (s Synergy) Validate() error {
	if len(s.Members) == 0 {
		return ErrNoSynergyMembers
	}
	for _, member := range s.Members {
		if member.MinRank <= 0 {
			return errors.New("synergy member rank threshold must be positive")
		}
	}
	return nil
}

// Active reports whether every member threshold is met by the given ranks
// (node ID to current level).
func (s Synergy) Active(ranks map[string]int) bool {
	for _, member := range s.Members {
		if ranks[member.NodeID] < member.MinRank {
			return false
		}
	}
	return true
}
